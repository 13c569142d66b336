package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/savegame"
)

func verifyCmd() *cli.Command {
	return &cli.Command{
		Name:      "verify",
		Usage:     "Check that save files re-encode to identical bytes",
		ArgsUsage: "<save>...",
		Flags:     engineFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			paths, err := requireArgs(cmd, 1, "<save>...")
			if err != nil {
				return err
			}
			log := logger.FromContext(ctx)
			opts := engineOptions(ctx)
			failed := 0
			for _, path := range paths {
				scope, err := savegame.Verify(path, opts)
				if err != nil {
					log.Error("verify failed", "path", path, "error", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.Root().Writer, "ok %s (%s)\n", path, scope)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d saves failed verification", failed, len(paths))
			}
			return nil
		},
	}
}
