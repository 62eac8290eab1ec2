package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

type resourceStore interface {
	List(ctx context.Context) []models.ProgrammeResource
	Mutate(ctx context.Context, fn func([]models.ProgrammeResource) ([]models.ProgrammeResource, error)) ([]models.ProgrammeResource, error)
}

// ResourceService manages bookable resources.
type ResourceService struct {
	resources  resourceStore
	programmes programmeStore
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
}

// NewResourceService constructs a ResourceService.
func NewResourceService(resources resourceStore, programmes programmeStore, validate *validator.Validate, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResourceService{
		resources:  resources,
		programmes: programmes,
		validator:  ensureValidator(validate),
		logger:     logger,
		ids:        models.NewID,
	}
}

// List returns every resource with its bookings.
func (s *ResourceService) List(ctx context.Context) []models.ProgrammeResource {
	return s.resources.List(ctx)
}

// Create registers a resource.
func (s *ResourceService) Create(ctx context.Context, actor models.Actor, req models.CreateResourceRequest) (*models.ProgrammeResource, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid resource payload")
	}
	resource := models.ProgrammeResource{
		ID:       s.ids(models.PrefixResource),
		Name:     req.Name,
		Type:     req.Type,
		Quantity: req.Quantity,
		Bookings: []models.ResourceBooking{},
	}
	if _, err := s.resources.Mutate(ctx, func(items []models.ProgrammeResource) ([]models.ProgrammeResource, error) {
		return append(items, resource), nil
	}); err != nil {
		return nil, err
	}
	return &resource, nil
}

// Book reserves quantity units of a resource for a programme. The booking is
// rejected when overlapping bookings would exceed the resource quantity.
func (s *ResourceService) Book(ctx context.Context, actor models.Actor, resourceID string, req models.BookResourceRequest) (*models.ResourceBooking, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid booking payload")
	}
	if _, ok := s.programmes.FindByID(ctx, req.ProgrammeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}

	booking := models.ResourceBooking{
		ID:          s.ids(models.PrefixBooking),
		ProgrammeID: req.ProgrammeID,
		From:        req.From.UTC(),
		To:          req.To.UTC(),
		Quantity:    req.Quantity,
		BookedBy:    actor.UserID,
	}
	_, err := s.resources.Mutate(ctx, func(items []models.ProgrammeResource) ([]models.ProgrammeResource, error) {
		for i := range items {
			if items[i].ID != resourceID {
				continue
			}
			inUse := 0
			for _, existing := range items[i].Bookings {
				if existing.Overlaps(booking.From, booking.To) {
					inUse += existing.Quantity
				}
			}
			if inUse+booking.Quantity > items[i].Quantity {
				return nil, appErrors.Clone(appErrors.ErrCapacity,
					fmt.Sprintf("only %d of %d units available in that window", items[i].Quantity-inUse, items[i].Quantity))
			}
			items[i].Bookings = append(items[i].Bookings, booking)
			return items, nil
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.programmes.Mutate(ctx, func(items []models.Programme) ([]models.Programme, error) {
		for i := range items {
			if items[i].ID != req.ProgrammeID {
				continue
			}
			for _, id := range items[i].ResourceIDs {
				if id == resourceID {
					return items, nil
				}
			}
			items[i].ResourceIDs = append(items[i].ResourceIDs, resourceID)
		}
		return items, nil
	}); err != nil {
		s.logger.Warn("failed to link resource to programme", zap.String("resource_id", resourceID), zap.Error(err))
	}
	return &booking, nil
}
