package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/repository"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

// CatalogService manages templates, categories and tags.
type CatalogService struct {
	catalog   *repository.CatalogRepository
	validator *validator.Validate
	logger    *zap.Logger
	ids       models.IDGenerator
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(catalog *repository.CatalogRepository, validate *validator.Validate, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{catalog: catalog, validator: ensureValidator(validate), logger: logger, ids: models.NewID}
}

// ListTemplates returns every programme template.
func (s *CatalogService) ListTemplates(ctx context.Context) []models.ProgrammeTemplate {
	return s.catalog.Templates.List(ctx)
}

// ListCategories returns every programme category.
func (s *CatalogService) ListCategories(ctx context.Context) []models.ProgrammeCategory {
	return s.catalog.Categories.List(ctx)
}

// ListTags returns every programme tag.
func (s *CatalogService) ListTags(ctx context.Context) []models.ProgrammeTag {
	return s.catalog.Tags.List(ctx)
}

// CreateTemplate stores a new template.
func (s *CatalogService) CreateTemplate(ctx context.Context, actor models.Actor, req models.CreateTemplateRequest) (*models.ProgrammeTemplate, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid template payload")
	}
	template := models.ProgrammeTemplate{
		ID:              s.ids(models.PrefixTemplate),
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Type:            req.Type,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		Capacity:        req.Capacity,
		Tags:            nonNil(req.Tags),
	}
	if _, err := s.catalog.Templates.Mutate(ctx, func(items []models.ProgrammeTemplate) ([]models.ProgrammeTemplate, error) {
		return append(items, template), nil
	}); err != nil {
		return nil, err
	}
	return &template, nil
}

// CreateCategory stores a new category; names are unique ignoring case.
func (s *CatalogService) CreateCategory(ctx context.Context, actor models.Actor, req models.CreateCategoryRequest) (*models.ProgrammeCategory, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid category payload")
	}
	category := models.ProgrammeCategory{
		ID:          s.ids(models.PrefixCategory),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Color:       req.Color,
	}
	if _, err := s.catalog.Categories.Mutate(ctx, func(items []models.ProgrammeCategory) ([]models.ProgrammeCategory, error) {
		for _, existing := range items {
			if strings.EqualFold(existing.Name, category.Name) {
				return nil, appErrors.Clone(appErrors.ErrConflict, "category already exists")
			}
		}
		return append(items, category), nil
	}); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateTag stores a new tag; names are unique ignoring case.
func (s *CatalogService) CreateTag(ctx context.Context, actor models.Actor, req models.CreateTagRequest) (*models.ProgrammeTag, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid tag payload")
	}
	tag := models.ProgrammeTag{ID: s.ids(models.PrefixTag), Name: strings.TrimSpace(req.Name), Color: req.Color}
	if _, err := s.catalog.Tags.Mutate(ctx, func(items []models.ProgrammeTag) ([]models.ProgrammeTag, error) {
		for _, existing := range items {
			if strings.EqualFold(existing.Name, tag.Name) {
				return nil, appErrors.Clone(appErrors.ErrConflict, "tag already exists")
			}
		}
		return append(items, tag), nil
	}); err != nil {
		return nil, err
	}
	return &tag, nil
}
