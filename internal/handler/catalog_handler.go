package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type catalogService interface {
	ListTemplates(ctx context.Context) []models.ProgrammeTemplate
	ListCategories(ctx context.Context) []models.ProgrammeCategory
	ListTags(ctx context.Context) []models.ProgrammeTag
	CreateTemplate(ctx context.Context, actor models.Actor, req models.CreateTemplateRequest) (*models.ProgrammeTemplate, error)
	CreateCategory(ctx context.Context, actor models.Actor, req models.CreateCategoryRequest) (*models.ProgrammeCategory, error)
	CreateTag(ctx context.Context, actor models.Actor, req models.CreateTagRequest) (*models.ProgrammeTag, error)
}

// CatalogHandler exposes templates, categories and tags.
type CatalogHandler struct {
	service catalogService
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(service catalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// ListTemplates godoc
// @Summary List programme templates
// @Tags Catalogue
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /templates [get]
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListTemplates(c.Request.Context()))
}

// CreateTemplate godoc
// @Summary Create programme template
// @Tags Catalogue
// @Accept json
// @Produce json
// @Param payload body models.CreateTemplateRequest true "Template payload"
// @Success 201 {object} response.Envelope
// @Router /templates [post]
func (h *CatalogHandler) CreateTemplate(c *gin.Context) {
	var req models.CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid template payload"))
		return
	}
	item, err := h.service.CreateTemplate(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ListCategories godoc
// @Summary List programme categories
// @Tags Catalogue
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /categories [get]
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListCategories(c.Request.Context()))
}

// CreateCategory godoc
// @Summary Create programme category
// @Tags Catalogue
// @Accept json
// @Produce json
// @Param payload body models.CreateCategoryRequest true "Category payload"
// @Success 201 {object} response.Envelope
// @Router /categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid category payload"))
		return
	}
	item, err := h.service.CreateCategory(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// ListTags godoc
// @Summary List programme tags
// @Tags Catalogue
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tags [get]
func (h *CatalogHandler) ListTags(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.ListTags(c.Request.Context()))
}

// CreateTag godoc
// @Summary Create programme tag
// @Tags Catalogue
// @Accept json
// @Produce json
// @Param payload body models.CreateTagRequest true "Tag payload"
// @Success 201 {object} response.Envelope
// @Router /tags [post]
func (h *CatalogHandler) CreateTag(c *gin.Context) {
	var req models.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid tag payload"))
		return
	}
	item, err := h.service.CreateTag(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}
