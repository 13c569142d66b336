package main

import (
	"context"
	"fmt"

	"github.com/samcharles93/edictsave/internal/version"

	"github.com/urfave/cli/v3"
)

func versionCmd() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := cmd.Root().Writer
			info := version.Resolve()
			fmt.Fprintf(w, "version:    %s\n", info.Version)
			if info.Commit != "" {
				fmt.Fprintf(w, "commit:     %s\n", info.Commit)
			}
			if info.BuildTime != "" {
				fmt.Fprintf(w, "build time: %s\n", info.BuildTime)
			}
			fmt.Fprintf(w, "save build: %s\n", version.Identity())
			return nil
		},
	}
}
