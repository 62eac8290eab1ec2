package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/response"
)

type resourceService interface {
	List(ctx context.Context) []models.ProgrammeResource
	Create(ctx context.Context, actor models.Actor, req models.CreateResourceRequest) (*models.ProgrammeResource, error)
	Book(ctx context.Context, actor models.Actor, resourceID string, req models.BookResourceRequest) (*models.ResourceBooking, error)
}

// ResourceHandler exposes bookable resources.
type ResourceHandler struct {
	service resourceService
}

// NewResourceHandler builds a new handler.
func NewResourceHandler(service resourceService) *ResourceHandler {
	return &ResourceHandler{service: service}
}

// List godoc
// @Summary List resources
// @Tags Resources
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()))
}

// Create godoc
// @Summary Register a resource
// @Tags Resources
// @Accept json
// @Produce json
// @Param payload body models.CreateResourceRequest true "Resource payload"
// @Success 201 {object} response.Envelope
// @Router /resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req models.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid resource payload"))
		return
	}
	resource, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, resource)
}

// Book godoc
// @Summary Book a resource for a programme
// @Tags Resources
// @Accept json
// @Produce json
// @Param id path string true "Resource ID"
// @Param payload body models.BookResourceRequest true "Booking payload"
// @Success 201 {object} response.Envelope
// @Router /resources/{id}/bookings [post]
func (h *ResourceHandler) Book(c *gin.Context) {
	var req models.BookResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err, "invalid booking payload"))
		return
	}
	booking, err := h.service.Book(c.Request.Context(), actorFromContext(c), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, booking)
}
