package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/catalog"
	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

func openCatalog(ctx context.Context) (*catalog.Catalog, string, error) {
	dir := resolveSaveDir(saveDir)
	path, err := resolveCatalogPath(catalogPath, dir)
	if err != nil {
		return nil, "", err
	}
	c, err := catalog.Open(path, logger.FromContext(ctx))
	if err != nil {
		return nil, "", err
	}
	return c, dir, nil
}

func indexCmd() *cli.Command {
	return &cli.Command{
		Name:  "index",
		Usage: "Scan the save directory into the catalog",
		Flags: append(append(engineFlags(), saveDirFlags()...), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			c, dir, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			entries, err := c.Index(ctx, dir, engineOptions(ctx))
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.Root().Writer, entries)
			}
			printEntries(cmd, entries)
			return nil
		},
	}
}

func listCmd() *cli.Command {
	var scope string
	return &cli.Command{
		Name:  "list",
		Usage: "List catalogued saves",
		Flags: append(append(saveDirFlags(), outputFlags()...),
			&cli.StringFlag{
				Name:        "scope",
				Usage:       "only list game or level saves",
				Destination: &scope,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			var filter savefmt.Scope
			switch scope {
			case "":
			case "game", "level":
				_ = filter.UnmarshalText([]byte(scope))
			default:
				return fmt.Errorf("--scope must be game or level, got %q", scope)
			}

			c, _, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = c.Close() }()

			entries, err := c.List(ctx, filter)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.Root().Writer, entries)
			}
			printEntries(cmd, entries)
			return nil
		},
	}
}

func printEntries(cmd *cli.Command, entries []catalog.Entry) {
	tw := tabwriter.NewWriter(cmd.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSCOPE\tMAP\tSIZE\tMODIFIED\tPATH")
	for _, e := range entries {
		m := e.Map
		if e.Error != "" {
			m = "error: " + e.Error
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Scope, m, humanize.Bytes(uint64(e.Size)), humanize.RelTime(e.ModTime, time.Now(), "ago", "from now"), e.Path)
	}
	_ = tw.Flush()
}
