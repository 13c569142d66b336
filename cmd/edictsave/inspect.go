package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/savegame"
)

func inspectCmd() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode save files and print a summary",
		ArgsUsage: "<save>...",
		Flags:     append(engineFlags(), outputFlags()...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths, err := requireArgs(cmd, 1, "<save>...")
			if err != nil {
				return err
			}
			out := cmd.Root().Writer
			opts := engineOptions(ctx)
			for _, path := range paths {
				sum, err := savegame.Inspect(path, opts)
				if err != nil {
					return err
				}
				if jsonOut {
					if err := writeJSON(out, sum); err != nil {
						return err
					}
					continue
				}
				printSummary(out, path, sum)
			}
			return nil
		},
	}
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}

func printSummary(w io.Writer, path string, sum *savegame.Summary) {
	fmt.Fprintf(w, "%s: %s save, %s\n", path, sum.Scope, humanize.Bytes(uint64(sum.Size)))
	switch {
	case sum.Game != nil:
		g := sum.Game
		fmt.Fprintf(w, "  build:      %s\n", g.Identity)
		fmt.Fprintf(w, "  clients:    %d\n", g.MaxClients)
		fmt.Fprintf(w, "  entities:   %d\n", g.MaxEntities)
		fmt.Fprintf(w, "  autosaved:  %t\n", g.Autosaved)
		if g.HelpMessage != "" {
			fmt.Fprintf(w, "  help:       %q\n", g.HelpMessage)
		}
		for _, c := range g.Clients {
			fmt.Fprintf(w, "  client %d: %-16s health %d/%d weapon %q score %d\n",
				c.Index, c.NetName, c.Health, c.MaxHealth, c.Weapon, c.Score)
		}
	case sum.Level != nil:
		l := sum.Level
		fmt.Fprintf(w, "  map:        %s (%s)\n", l.MapName, l.LevelName)
		fmt.Fprintf(w, "  time:       %.1fs (frame %d)\n", l.Time, l.FrameNum)
		fmt.Fprintf(w, "  entities:   %d in use of %d\n", len(l.Entities), l.NumEntities)
		for _, e := range l.Entities {
			fmt.Fprintf(w, "  %4d %-26s", e.Index, e.ClassName)
			if e.TargetName != "" {
				fmt.Fprintf(w, " targetname=%s", e.TargetName)
			}
			if e.Think != "" {
				fmt.Fprintf(w, " think=%s@%.1f", e.Think, e.NextThink)
			}
			if e.Move != "" {
				fmt.Fprintf(w, " move=%s", e.Move)
			}
			fmt.Fprintln(w)
		}
	}
}
