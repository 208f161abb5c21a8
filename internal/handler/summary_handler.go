package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recap/backend/internal/model"
	"recap/backend/internal/repository"
	"recap/backend/internal/service"
)

type SummaryHandler struct {
	service service.SummaryService
}

// Request/Response types

type createSummaryRequest struct {
	Transcript       string  `json:"transcript"`
	CustomPrompt     string  `json:"customPrompt"`
	GeneratedSummary string  `json:"generatedSummary"`
	EditedSummary    *string `json:"editedSummary"`
	ModelUsed        *string `json:"modelUsed"`
}

type updateSummaryRequest struct {
	EditedSummary *string `json:"editedSummary"`
}

type summaryListResponse struct {
	Summaries []model.SummaryRecord `json:"summaries"`
}

type summaryResponse struct {
	Summary model.SummaryRecord `json:"summary"`
}

type createSummaryResponse struct {
	OK      bool                `json:"ok"`
	ID      string              `json:"id"`
	Summary model.SummaryRecord `json:"summary"`
}

type updateSummaryResponse struct {
	OK      bool                `json:"ok"`
	Summary model.SummaryRecord `json:"summary"`
}

func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/summaries", h.List)
	g.POST("/summaries", h.Create)
	g.GET("/summaries/:id", h.Get)
	g.PATCH("/summaries/:id", h.UpdateEdited)
	g.DELETE("/summaries/:id", h.Delete)
}

// List returns recent history records, newest first.
// @Summary List summaries
// @Tags summaries
// @Produce json
// @Param limit query int false "Max records (capped at 100)"
// @Success 200 {object} summaryListResponse
// @Failure 500 {object} errorResponse
// @Router /summaries [get]
func (h *SummaryHandler) List(c echo.Context) error {
	limit := parseLimitQuery(c, repository.DefaultListLimit)

	records, err := h.service.List(c.Request().Context(), limit)
	if err != nil {
		return writeServiceError(c, err)
	}
	if records == nil {
		records = []model.SummaryRecord{}
	}
	return c.JSON(http.StatusOK, summaryListResponse{Summaries: records})
}

// Create persists a new history record.
// @Summary Save a summary
// @Tags summaries
// @Accept json
// @Produce json
// @Param request body createSummaryRequest true "Summary record"
// @Success 201 {object} createSummaryResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /summaries [post]
func (h *SummaryHandler) Create(c echo.Context) error {
	var req createSummaryRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	if req.Transcript == "" || req.GeneratedSummary == "" {
		return Error(c, http.StatusBadRequest, "transcript and generatedSummary are required")
	}

	rec, err := h.service.Create(c.Request().Context(), service.CreateSummaryInput{
		Transcript:       req.Transcript,
		CustomPrompt:     req.CustomPrompt,
		GeneratedSummary: req.GeneratedSummary,
		EditedSummary:    req.EditedSummary,
		ModelUsed:        req.ModelUsed,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusCreated, createSummaryResponse{OK: true, ID: rec.ID, Summary: rec})
}

// Get returns one record by id.
// @Summary Get a summary
// @Tags summaries
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} summaryResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /summaries/{id} [get]
func (h *SummaryHandler) Get(c echo.Context) error {
	rec, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, summaryResponse{Summary: rec})
}

// UpdateEdited saves the user's edited working copy. The generated summary
// is never overwritten.
// @Summary Save an edited summary
// @Tags summaries
// @Accept json
// @Produce json
// @Param id path string true "Record id"
// @Param request body updateSummaryRequest true "Edited summary"
// @Success 200 {object} updateSummaryResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /summaries/{id} [patch]
func (h *SummaryHandler) UpdateEdited(c echo.Context) error {
	var req updateSummaryRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}
	if req.EditedSummary == nil {
		return Error(c, http.StatusBadRequest, "editedSummary is required")
	}

	rec, err := h.service.SaveEdited(c.Request().Context(), c.Param("id"), *req.EditedSummary)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, updateSummaryResponse{OK: true, Summary: rec})
}

// Delete removes one record by id.
// @Summary Delete a summary
// @Tags summaries
// @Produce json
// @Param id path string true "Record id"
// @Success 200 {object} okResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /summaries/{id} [delete]
func (h *SummaryHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
