package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"recap/backend/internal/service"
)

type errorResponse struct {
	Error        string         `json:"error"`
	Details      map[string]any `json:"details,omitempty"`
	ErrorDetails *errorDetails  `json:"errorDetails,omitempty"`
}

type errorDetails struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// writeServiceError maps service failures onto the wire contract. Backend
// generation failures keep their diagnostic payloads; store failures stay
// generic with the detail logged server-side.
func writeServiceError(c echo.Context, err error) error {
	var genErr *service.GenerationError
	var emptyErr *service.EmptyOutputError

	switch {
	case errors.As(err, &genErr):
		return c.JSON(http.StatusInternalServerError, errorResponse{
			Error:        "Failed to generate summary",
			ErrorDetails: &errorDetails{Message: genErr.Message, Code: genErr.Code},
		})
	case errors.As(err, &emptyErr):
		return c.JSON(http.StatusBadGateway, errorResponse{
			Error:   "Model returned empty response",
			Details: map[string]any{"model": emptyErr.Model, "raw": emptyErr.Raw},
		})
	case errors.Is(err, service.ErrMisconfigured):
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Server misconfiguration"})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrBusy):
		return c.JSON(http.StatusConflict, errorResponse{Error: "a generate run is already in flight"})
	case errors.Is(err, service.ErrFetch):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "failed to fetch content"})
	default:
		c.Logger().Error(err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// Error returns a JSON error response with the given status and message
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
