package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/service"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type kpiService interface {
	Create(ctx context.Context, actor models.Actor, req models.CreateKPIRequest) (*models.ProgrammeKPI, error)
	UpdateProgress(ctx context.Context, actor models.Actor, id string, req models.UpdateKPIProgressRequest) (*models.ProgrammeKPI, error)
	ListByProgramme(ctx context.Context, programmeID string) ([]service.KPIProgress, error)
}

// KPIHandler exposes programme KPI endpoints.
type KPIHandler struct {
	service kpiService
}

// NewKPIHandler builds a new handler.
func NewKPIHandler(service kpiService) *KPIHandler {
	return &KPIHandler{service: service}
}

// Create godoc
// @Summary Define a KPI for a programme
// @Tags KPIs
// @Accept json
// @Produce json
// @Param payload body models.CreateKPIRequest true "KPI payload"
// @Success 201 {object} response.Envelope
// @Router /kpis [post]
func (h *KPIHandler) Create(c *gin.Context) {
	var req models.CreateKPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid kpi payload"))
		return
	}
	kpi, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, kpi)
}

// UpdateProgress godoc
// @Summary Record KPI progress
// @Tags KPIs
// @Accept json
// @Produce json
// @Param id path string true "KPI ID"
// @Param payload body models.UpdateKPIProgressRequest true "Progress payload"
// @Success 200 {object} response.Envelope
// @Router /kpis/{id} [patch]
func (h *KPIHandler) UpdateProgress(c *gin.Context) {
	var req models.UpdateKPIProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid kpi progress payload"))
		return
	}
	kpi, err := h.service.UpdateProgress(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, kpi)
}

// ListByProgramme godoc
// @Summary List KPIs for a programme
// @Tags KPIs
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/kpis [get]
func (h *KPIHandler) ListByProgramme(c *gin.Context) {
	items, err := h.service.ListByProgramme(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, items)
}
