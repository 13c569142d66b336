// Package api serves the save catalog and save inspection over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/edictsave/internal/catalog"
	"github.com/samcharles93/edictsave/internal/logger"
	"github.com/samcharles93/edictsave/internal/savegame"
	"github.com/samcharles93/edictsave/internal/version"
	"github.com/samcharles93/edictsave/pkg/savefmt"
)

type Config struct {
	Catalog   *catalog.Catalog
	SaveDir   string
	Options   savegame.Options
	CacheSize int
	Logger    logger.Logger
}

type Server struct {
	catalog   *catalog.Catalog
	summaries *SummaryStore
	saveDir   string
	opts      savegame.Options
	log       logger.Logger
}

func NewServer(cfg Config) (*Server, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("api: catalog not configured")
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	store, err := NewSummaryStore(cfg.CacheSize, cfg.Options)
	if err != nil {
		return nil, err
	}
	return &Server{
		catalog:   cfg.Catalog,
		summaries: store,
		saveDir:   cfg.SaveDir,
		opts:      cfg.Options,
		log:       cfg.Logger,
	}, nil
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.GET("/v1/saves", s.handleListSaves)
	e.GET("/v1/saves/:id", s.handleGetSave)
	e.POST("/v1/index", s.handleIndex)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: version.Resolve().Version,
		Format:  savefmt.FormatVersion,
	})
}

func (s *Server) handleListSaves(c *echo.Context) error {
	scope, err := parseScope(c.QueryParam("scope"))
	if isInvalidRequest(err) {
		return writeBadRequest(c, err.Error())
	}
	entries, err := s.catalog.List(c.Request().Context(), scope)
	if err != nil {
		return writeServerError(c, err)
	}
	if entries == nil {
		entries = []catalog.Entry{}
	}
	return c.JSON(http.StatusOK, SaveList{Object: "list", Data: entries})
}

func (s *Server) handleGetSave(c *echo.Context) error {
	id := c.Param("id")
	entry, err := s.catalog.Get(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return writeNotFound(c, fmt.Sprintf("save %q not found", id))
	}
	if err != nil {
		return writeServerError(c, err)
	}

	out := SaveDetail{Object: "save", Save: entry}
	sum, err := s.summaries.Get(entry)
	if err != nil {
		s.log.Warn("inspect failed", "id", id, "path", entry.Path, "error", err)
		out.Error = err.Error()
	} else {
		out.Summary = sum
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleIndex(c *echo.Context) error {
	if s.saveDir == "" {
		return writeBadRequest(c, "no save directory configured")
	}

	s.summaries.Lock()
	entries, err := s.catalog.Index(c.Request().Context(), s.saveDir, s.opts)
	s.summaries.Unlock()
	if err != nil {
		return writeServerError(c, err)
	}
	s.summaries.Purge()
	if entries == nil {
		entries = []catalog.Entry{}
	}
	return c.JSON(http.StatusOK, IndexResponse{
		Object:  "index",
		Dir:     s.saveDir,
		Indexed: len(entries),
		Data:    entries,
	})
}
