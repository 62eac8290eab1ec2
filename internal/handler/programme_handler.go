package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type programmeService interface {
	List(ctx context.Context, filter models.ProgrammeFilter) []models.Programme
	Get(ctx context.Context, id string) (*models.Programme, error)
	Create(ctx context.Context, actor models.Actor, req models.CreateProgrammeRequest) (*models.Programme, error)
	CreateFromTemplate(ctx context.Context, actor models.Actor, req models.CreateFromTemplateRequest) (*models.Programme, error)
	Update(ctx context.Context, actor models.Actor, id string, req models.UpdateProgrammeRequest) (*models.Programme, error)
	UpdateStatus(ctx context.Context, actor models.Actor, id string, req models.UpdateProgrammeStatusRequest) (*models.Programme, error)
	AssignTag(ctx context.Context, actor models.Actor, programmeID, tagID string) error
	UnassignTag(ctx context.Context, actor models.Actor, programmeID, tagID string) error
	ListTags(ctx context.Context, programmeID string) ([]models.ProgrammeTag, error)
}

// ProgrammeHandler exposes programme endpoints.
type ProgrammeHandler struct {
	service programmeService
}

// NewProgrammeHandler builds a new handler.
func NewProgrammeHandler(service programmeService) *ProgrammeHandler {
	return &ProgrammeHandler{service: service}
}

// List godoc
// @Summary List programmes
// @Tags Programmes
// @Produce json
// @Param status query string false "Programme status"
// @Param category query string false "Category"
// @Param type query string false "Programme type"
// @Param tag query string false "Tag ID"
// @Param search query string false "Name or description search"
// @Success 200 {object} response.Envelope
// @Router /programmes [get]
func (h *ProgrammeHandler) List(c *gin.Context) {
	filter := models.ProgrammeFilter{
		Status:   models.ProgrammeStatus(c.Query("status")),
		Category: c.Query("category"),
		Type:     c.Query("type"),
		TagID:    c.Query("tag"),
		Search:   c.Query("search"),
	}
	items := h.service.List(c.Request.Context(), filter)
	response.JSON(c, http.StatusOK, items, map[string]interface{}{"total": len(items)})
}

// Get godoc
// @Summary Get programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id} [get]
func (h *ProgrammeHandler) Get(c *gin.Context) {
	programme, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme)
}

// Create godoc
// @Summary Create programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param payload body models.CreateProgrammeRequest true "Programme payload"
// @Success 201 {object} response.Envelope
// @Router /programmes [post]
func (h *ProgrammeHandler) Create(c *gin.Context) {
	var req models.CreateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid programme payload"))
		return
	}
	programme, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, programme)
}

// CreateFromTemplate godoc
// @Summary Create programme from a template
// @Tags Programmes
// @Accept json
// @Produce json
// @Param payload body models.CreateFromTemplateRequest true "Template instantiation payload"
// @Success 201 {object} response.Envelope
// @Router /programmes/from-template [post]
func (h *ProgrammeHandler) CreateFromTemplate(c *gin.Context) {
	var req models.CreateFromTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid template payload"))
		return
	}
	programme, err := h.service.CreateFromTemplate(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, programme)
}

// Update godoc
// @Summary Update programme
// @Tags Programmes
// @Accept json
// @Produce json
// @Param id path string true "Programme ID"
// @Param payload body models.UpdateProgrammeRequest true "Partial programme payload"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id} [put]
func (h *ProgrammeHandler) Update(c *gin.Context) {
	var req models.UpdateProgrammeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid programme payload"))
		return
	}
	programme, err := h.service.Update(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme)
}

// UpdateStatus godoc
// @Summary Change programme status
// @Tags Programmes
// @Accept json
// @Produce json
// @Param id path string true "Programme ID"
// @Param payload body models.UpdateProgrammeStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/status [patch]
func (h *ProgrammeHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateProgrammeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid status payload"))
		return
	}
	programme, err := h.service.UpdateStatus(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, programme)
}

// ListTags godoc
// @Summary List tags attached to a programme
// @Tags Programmes
// @Produce json
// @Param id path string true "Programme ID"
// @Success 200 {object} response.Envelope
// @Router /programmes/{id}/tags [get]
func (h *ProgrammeHandler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, tags)
}

// AssignTag godoc
// @Summary Attach a tag to a programme
// @Tags Programmes
// @Param id path string true "Programme ID"
// @Param tagId path string true "Tag ID"
// @Success 204
// @Router /programmes/{id}/tags/{tagId} [put]
func (h *ProgrammeHandler) AssignTag(c *gin.Context) {
	if err := h.service.AssignTag(c.Request.Context(), actorFromContext(c), c.Param("id"), c.Param("tagId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UnassignTag godoc
// @Summary Detach a tag from a programme
// @Tags Programmes
// @Param id path string true "Programme ID"
// @Param tagId path string true "Tag ID"
// @Success 204
// @Router /programmes/{id}/tags/{tagId} [delete]
func (h *ProgrammeHandler) UnassignTag(c *gin.Context) {
	if err := h.service.UnassignTag(c.Request.Context(), actorFromContext(c), c.Param("id"), c.Param("tagId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
