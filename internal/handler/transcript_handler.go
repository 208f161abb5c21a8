package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recap/backend/internal/service"
)

type TranscriptHandler struct {
	service service.TranscriptService
}

// Request/Response types

type extractTranscriptRequest struct {
	URL string `json:"url"`
}

type extractTranscriptResponse struct {
	Title      string `json:"title"`
	Transcript string `json:"transcript"`
}

func NewTranscriptHandler(service service.TranscriptService) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

func (h *TranscriptHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/transcripts/extract", h.Extract)
}

// Extract imports a transcript from a web page URL.
// @Summary Extract a transcript from a URL
// @Tags transcripts
// @Accept json
// @Produce json
// @Param request body extractTranscriptRequest true "Extract request"
// @Success 200 {object} extractTranscriptResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /transcripts/extract [post]
func (h *TranscriptHandler) Extract(c echo.Context) error {
	var req extractTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if req.URL == "" {
		return Error(c, http.StatusBadRequest, "url is required")
	}

	result, err := h.service.Extract(c.Request().Context(), req.URL)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, extractTranscriptResponse{
		Title:      result.Title,
		Transcript: result.Transcript,
	})
}
