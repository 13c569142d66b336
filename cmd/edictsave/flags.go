package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/savegame"
)

var (
	saveDir     string
	catalogPath string
	maxClients  int
	maxEntities int
	logLevel    string
	logFormat   string
	debug       bool
	jsonOut     bool
)

func engineFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "max-clients",
			Usage:       "client slots of the scratch session used for level saves",
			Value:       savegame.DefaultMaxClients,
			Destination: &maxClients,
		},
		&cli.IntFlag{
			Name:        "max-entities",
			Usage:       "entity capacity (0 uses the capacity recorded in game saves)",
			Destination: &maxEntities,
		},
	}
}

func saveDirFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "save-dir",
			Aliases:     []string{"d"},
			Usage:       "directory holding save files",
			Sources:     cli.EnvVars(envSaveDir),
			Destination: &saveDir,
		},
		&cli.StringFlag{
			Name:        "catalog",
			Usage:       "path to the catalog database",
			Destination: &catalogPath,
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "print JSON instead of text",
			Destination: &jsonOut,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}
