package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type reminderService interface {
	Schedule(ctx context.Context, actor models.Actor, req models.ScheduleReminderRequest) (*models.ProgrammeReminder, error)
	Process(ctx context.Context) (*models.ProcessResult, error)
	Cancel(ctx context.Context, actor models.Actor, id string) error
	List(ctx context.Context) []models.ProgrammeReminder
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeReminder
}

// ReminderHandler exposes reminder scheduling endpoints.
type ReminderHandler struct {
	service reminderService
}

// NewReminderHandler builds a new handler.
func NewReminderHandler(service reminderService) *ReminderHandler {
	return &ReminderHandler{service: service}
}

// List godoc
// @Summary List reminders
// @Tags Reminders
// @Produce json
// @Param programme_id query string false "Programme ID filter"
// @Success 200 {object} response.Envelope
// @Router /reminders [get]
func (h *ReminderHandler) List(c *gin.Context) {
	var items []models.ProgrammeReminder
	if programmeID := c.Query("programme_id"); programmeID != "" {
		items = h.service.ListByProgramme(c.Request.Context(), programmeID)
	} else {
		items = h.service.List(c.Request.Context())
	}
	response.JSON(c, http.StatusOK, items)
}

// Schedule godoc
// @Summary Schedule a programme reminder
// @Tags Reminders
// @Accept json
// @Produce json
// @Param payload body models.ScheduleReminderRequest true "Reminder payload"
// @Success 201 {object} response.Envelope
// @Router /reminders [post]
func (h *ReminderHandler) Schedule(c *gin.Context) {
	var req models.ScheduleReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid reminder payload"))
		return
	}
	reminder, err := h.service.Schedule(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, reminder)
}

// Process godoc
// @Summary Run one reminder processing pass
// @Tags Reminders
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reminders/process [post]
func (h *ReminderHandler) Process(c *gin.Context) {
	result, err := h.service.Process(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Cancel godoc
// @Summary Cancel a scheduled reminder
// @Tags Reminders
// @Param id path string true "Reminder ID"
// @Success 204
// @Router /reminders/{id} [delete]
func (h *ReminderHandler) Cancel(c *gin.Context) {
	if err := h.service.Cancel(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
