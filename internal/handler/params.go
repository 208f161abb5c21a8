package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// parseLimitQuery reads an optional positive ?limit= value.
func parseLimitQuery(c echo.Context, fallback int) int {
	raw := c.QueryParam("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
