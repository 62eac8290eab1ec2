package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type attendanceService interface {
	Record(ctx context.Context, actor models.Actor, req models.RecordAttendanceRequest) (*models.ProgrammeAttendance, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeAttendance, error)
}

// AttendanceHandler exposes attendance check-in endpoints.
type AttendanceHandler struct {
	service attendanceService
}

// NewAttendanceHandler builds a new handler.
func NewAttendanceHandler(service attendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Record godoc
// @Summary Record attendance for a member
// @Tags Attendance
// @Accept json
// @Produce json
// @Param payload body models.RecordAttendanceRequest true "Attendance payload"
// @Success 201 {object} response.Envelope
// @Router /attendance [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req models.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid attendance payload"))
		return
	}
	record, err := h.service.Record(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// ListByProgramme godoc
// @Summary List attendance for a programme
// @Tags Attendance
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/attendance [get]
func (h *AttendanceHandler) ListByProgramme(c *gin.Context) {
	items, err := h.service.ListByProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
