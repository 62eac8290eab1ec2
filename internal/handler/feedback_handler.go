package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type feedbackService interface {
	Submit(ctx context.Context, actor models.Actor, req models.SubmitFeedbackRequest) (*models.ProgrammeFeedback, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeFeedback, error)
}

// FeedbackHandler exposes programme feedback endpoints.
type FeedbackHandler struct {
	service feedbackService
}

// NewFeedbackHandler builds a new handler.
func NewFeedbackHandler(service feedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Submit godoc
// @Summary Submit programme feedback
// @Tags Feedback
// @Accept json
// @Produce json
// @Param payload body models.SubmitFeedbackRequest true "Feedback payload"
// @Success 201 {object} response.Envelope
// @Router /feedback [post]
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req models.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid feedback payload"))
		return
	}
	feedback, err := h.service.Submit(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, feedback)
}

// ListByProgramme godoc
// @Summary List feedback for a programme
// @Tags Feedback
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/feedback [get]
func (h *FeedbackHandler) ListByProgramme(c *gin.Context) {
	items, err := h.service.ListByProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
