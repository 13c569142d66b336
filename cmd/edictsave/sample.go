package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/game"
	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/savegame"
)

func sampleCmd() *cli.Command {
	var autosave bool
	return &cli.Command{
		Name:      "sample",
		Usage:     "Write a sample game save and level save",
		ArgsUsage: "[dir]",
		Flags: append(append(engineFlags(), saveDirFlags()...),
			&cli.BoolFlag{
				Name:        "autosave",
				Usage:       "mark the game save as an autosave",
				Destination: &autosave,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.Args().First()
			if dir == "" {
				dir = resolveSaveDir(saveDir)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			capacity := maxEntities
			if capacity == 0 {
				capacity = savegame.DefaultMaxEntities
			}
			sess, err := game.NewSample(maxClients, capacity)
			if err != nil {
				return err
			}

			log := logger.FromContext(ctx)
			eng := savegame.New(sess, savegame.NewArena(log), engineOptions(ctx))
			levelPath := filepath.Join(dir, game.SampleMap+".sav")
			if err := eng.WriteLevelState(levelPath); err != nil {
				return err
			}
			gamePath := filepath.Join(dir, "game.ssv")
			if err := eng.WriteGameState(gamePath, autosave); err != nil {
				return err
			}
			log.Info("wrote sample saves", "dir", dir, "clients", maxClients, "entities", capacity)
			fmt.Fprintln(cmd.Root().Writer, gamePath)
			fmt.Fprintln(cmd.Root().Writer, levelPath)
			return nil
		},
	}
}
