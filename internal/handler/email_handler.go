package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recap/backend/internal/service"
)

type EmailHandler struct {
	service service.EmailService
}

// Request/Response types

type sendEmailRequest struct {
	Recipients []string `json:"recipients"`
	Summary    string   `json:"summary"`
	Subject    string   `json:"subject"`
}

type sendEmailResponse struct {
	Success bool `json:"success"`
}

func NewEmailHandler(service service.EmailService) *EmailHandler {
	return &EmailHandler{service: service}
}

func (h *EmailHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/send-email", h.Send)
}

// Send shares a summary with recipients by email.
// @Summary Email a summary
// @Tags email
// @Accept json
// @Produce json
// @Param request body sendEmailRequest true "Send request"
// @Success 200 {object} sendEmailResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /send-email [post]
func (h *EmailHandler) Send(c echo.Context) error {
	var req sendEmailRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid request")
	}

	if len(req.Recipients) == 0 {
		return Error(c, http.StatusBadRequest, "At least one recipient is required")
	}

	if err := h.service.Send(c.Request().Context(), req.Recipients, req.Summary, req.Subject); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, sendEmailResponse{Success: true})
}
