package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/archive"
	"github.com/samcharles93/edictsave/internal/logger"
)

func archiveCmd() *cli.Command {
	var out string
	return &cli.Command{
		Name:      "archive",
		Usage:     "Pack the save files of a slot directory into a zstd archive",
		ArgsUsage: "<slot-dir>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "archive path (default <slot-dir>.edz)",
				Destination: &out,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 1, "<slot-dir>")
			if err != nil {
				return err
			}
			path, err := resolveArchiveOut(args[0], out)
			if err != nil {
				return err
			}
			m, err := archive.PackFile(path, args[0])
			if err != nil {
				return err
			}
			var total int64
			for _, f := range m.Files {
				total += f.Size
			}
			logger.FromContext(ctx).Info("packed slot", "slot", args[0], "archive", path, "files", len(m.Files))
			fmt.Fprintf(cmd.Root().Writer, "%s: %d files, %s\n", path, len(m.Files), humanize.Bytes(uint64(total)))
			return nil
		},
	}
}

func unarchiveCmd() *cli.Command {
	return &cli.Command{
		Name:      "unarchive",
		Usage:     "Restore a slot archive, checking sizes and digests",
		ArgsUsage: "<archive> <dir>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			args, err := requireArgs(cmd, 2, "<archive> <dir>")
			if err != nil {
				return err
			}
			m, err := archive.UnpackFile(args[0], args[1])
			if err != nil {
				return err
			}
			for _, f := range m.Files {
				fmt.Fprintf(cmd.Root().Writer, "restored %s (%s)\n", f.Name, humanize.Bytes(uint64(f.Size)))
			}
			return nil
		},
	}
}
