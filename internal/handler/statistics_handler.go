package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type statisticsService interface {
	Overview(ctx context.Context) models.ProgrammeStatistics
	ProgrammeAttendanceSummary(ctx context.Context, programmeID string) (*models.AttendanceSummary, error)
	FeedbackSummary(ctx context.Context, programmeID string) (*models.FeedbackSummary, error)
}

// StatisticsHandler exposes aggregate programme statistics.
type StatisticsHandler struct {
	service statisticsService
}

// NewStatisticsHandler builds a new handler.
func NewStatisticsHandler(service statisticsService) *StatisticsHandler {
	return &StatisticsHandler{service: service}
}

// Overview godoc
// @Summary Programme statistics overview
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics [get]
func (h *StatisticsHandler) Overview(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.Overview(c.Request.Context()))
}

// AttendanceSummary godoc
// @Summary Attendance summary for a programme
// @Tags Statistics
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/statistics/attendance [get]
func (h *StatisticsHandler) AttendanceSummary(c *gin.Context) {
	summary, err := h.service.ProgrammeAttendanceSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}

// FeedbackSummary godoc
// @Summary Feedback summary for a programme
// @Tags Statistics
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/statistics/feedback [get]
func (h *StatisticsHandler) FeedbackSummary(c *gin.Context) {
	summary, err := h.service.FeedbackSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
