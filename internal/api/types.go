package api

import (
	"github.com/samcharles93/edictsave/internal/catalog"
	"github.com/samcharles93/edictsave/internal/savegame"
)

type ErrorBody struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Format  string `json:"format"`
}

type SaveList struct {
	Object string          `json:"object"`
	Data   []catalog.Entry `json:"data"`
}

type SaveDetail struct {
	Object  string            `json:"object"`
	Save    catalog.Entry     `json:"save"`
	Summary *savegame.Summary `json:"summary,omitempty"`
	Error   string            `json:"error,omitempty"`
}

type IndexResponse struct {
	Object  string          `json:"object"`
	Dir     string          `json:"dir"`
	Indexed int             `json:"indexed"`
	Data    []catalog.Entry `json:"data"`
}
