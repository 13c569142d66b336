package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/edictsave/internal/api"
	"github.com/samcharles93/edictsave/internal/logger"
)

func serveCmd() *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		cacheSize   int
		noIndex     bool
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the save catalog over HTTP",
		Flags: append(append(engineFlags(), saveDirFlags()...),
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.IntFlag{
				Name:        "cache-size",
				Usage:       "number of inspected saves kept in memory",
				Value:       api.DefaultCacheSize,
				Destination: &cacheSize,
			},
			&cli.BoolFlag{
				Name:        "no-index",
				Usage:       "skip the initial scan of the save directory",
				Destination: &noIndex,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			cfg, err := LoadConfig()
			if err != nil {
				return err
			}
			applyServeConfig(cmd, cfg, &addr)

			cat, dir, err := openCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = cat.Close() }()

			opts := engineOptions(ctx)
			if !noIndex {
				if _, err := cat.Index(ctx, dir, opts); err != nil {
					log.Warn("initial index failed", "dir", dir, "error", err)
				}
			}

			server, err := api.NewServer(api.Config{
				Catalog:   cat,
				SaveDir:   dir,
				Options:   opts,
				CacheSize: cacheSize,
				Logger:    log,
			})
			if err != nil {
				return err
			}
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)
			log.Info("starting server", "address", addr, "save_dir", dir)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
