package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/savegame"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "edictsave",
		Usage: "Inspect, verify and catalog edict save files",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: withSetup(
			inspectCmd(),
			verifyCmd(),
			sampleCmd(),
			indexCmd(),
			listCmd(),
			archiveCmd(),
			unarchiveCmd(),
			serveCmd(),
			versionCmd(),
		),
	}
}

// withSetup gives every command the logging flags and the hook that applies the
// config file and installs the logger.
func withSetup(cmds ...*cli.Command) []*cli.Command {
	for _, c := range cmds {
		c.Flags = append(c.Flags, loggingFlags()...)
		c.Before = setup
	}
	return cmds
}

func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return ctx, err
	}
	applyConfig(cmd, cfg)

	format, err := logger.ParseFormat(logFormat)
	if err != nil {
		return ctx, err
	}
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}
	log := logger.ForFormat(format, cmd.Root().ErrWriter, level)
	return logger.WithContext(ctx, log), nil
}

func engineOptions(ctx context.Context) savegame.Options {
	return savegame.Options{
		Logger:      logger.FromContext(ctx),
		MaxClients:  maxClients,
		MaxEntities: maxEntities,
	}
}

func requireArgs(cmd *cli.Command, n int, usage string) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < n {
		return nil, fmt.Errorf("usage: %s %s", cmd.FullName(), usage)
	}
	return args, nil
}
