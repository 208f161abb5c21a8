package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"recap/backend/internal/model"
	"recap/backend/internal/service"
)

type GenerateHandler struct {
	generator service.GenerationService
	workflow  service.WorkflowService
}

// Request/Response types

type generateRequest struct {
	Transcript   string `json:"transcript"`
	CustomPrompt string `json:"customPrompt"`
}

type generateResponse struct {
	Summary   string `json:"summary"`
	ModelUsed string `json:"modelUsed"`
}

type workspaceGenerateResponse struct {
	Summary   string               `json:"summary"`
	ModelUsed string               `json:"modelUsed"`
	RunID     string               `json:"runId"`
	Saved     bool                 `json:"saved"`
	ID        string               `json:"id,omitempty"`
	Record    *model.SummaryRecord `json:"record,omitempty"`
	Warning   string               `json:"warning,omitempty"`
}

func NewGenerateHandler(generator service.GenerationService, workflow service.WorkflowService) *GenerateHandler {
	return &GenerateHandler{generator: generator, workflow: workflow}
}

func (h *GenerateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/generate", h.Generate)
	g.POST("/workspace/generate", h.WorkspaceGenerate)
}

// Generate produces a summary without persisting anything.
// @Summary Generate a summary
// @Description Generate an AI summary of a transcript following the custom instruction prompt.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generateRequest true "Generate request"
// @Success 200 {object} generateResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Failure 502 {object} errorResponse "Model returned empty output"
// @Router /generate [post]
func (h *GenerateHandler) Generate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	if strings.TrimSpace(req.Transcript) == "" || strings.TrimSpace(req.CustomPrompt) == "" {
		return Error(c, http.StatusBadRequest, "Transcript and custom prompt are required")
	}

	result, err := h.generator.Generate(c.Request().Context(), req.Transcript, req.CustomPrompt)
	if err != nil {
		return writeServiceError(c, err)
	}

	return c.JSON(http.StatusOK, generateResponse{
		Summary:   result.Summary,
		ModelUsed: result.ModelUsed,
	})
}

// WorkspaceGenerate runs the full generate-then-persist workflow. A failed
// save does not fail the request; the summary is returned with a warning.
// @Summary Generate and save a summary
// @Description Generate a summary and persist it to history. Persistence is best-effort: a save failure is reported as a warning, not an error.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body generateRequest true "Generate request"
// @Success 200 {object} workspaceGenerateResponse
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse "A run is already in flight"
// @Failure 500 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /workspace/generate [post]
func (h *GenerateHandler) WorkspaceGenerate(c echo.Context) error {
	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	if strings.TrimSpace(req.Transcript) == "" || strings.TrimSpace(req.CustomPrompt) == "" {
		return Error(c, http.StatusBadRequest, "Transcript and custom prompt are required")
	}

	result, err := h.workflow.Run(c.Request().Context(), req.Transcript, req.CustomPrompt)
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := workspaceGenerateResponse{
		Summary:   result.Summary,
		ModelUsed: result.ModelUsed,
		RunID:     result.RunID,
		Saved:     result.Record != nil,
		Record:    result.Record,
		Warning:   result.SaveWarning,
	}
	if result.Record != nil {
		resp.ID = result.Record.ID
	}
	return c.JSON(http.StatusOK, resp)
}
