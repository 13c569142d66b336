package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/edictsave/pkg/savefmt"
)

func writeBadRequest(c *echo.Context, msg string) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", msg)
}

func writeNotFound(c *echo.Context, msg string) error {
	return writeError(c, http.StatusNotFound, "not_found_error", msg)
}

func writeServerError(c *echo.Context, err error) error {
	return writeError(c, http.StatusInternalServerError, "server_error", err.Error())
}

func writeError(c *echo.Context, status int, errType, msg string) error {
	return c.JSON(status, map[string]any{
		"error": ErrorBody{
			Message: msg,
			Type:    errType,
		},
	})
}

// parseScope maps the scope query parameter; empty means every scope.
func parseScope(s string) (savefmt.Scope, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return savefmt.ScopeUnknown, nil
	case "game":
		return savefmt.ScopeGame, nil
	case "level":
		return savefmt.ScopeLevel, nil
	default:
		return savefmt.ScopeUnknown, newInvalidRequest("scope must be game or level, got " + s)
	}
}

func isInvalidRequest(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}
