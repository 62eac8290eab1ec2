package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

type programmeStore interface {
	List(ctx context.Context) []models.Programme
	FindByID(ctx context.Context, id string) (*models.Programme, bool)
	Mutate(ctx context.Context, fn func([]models.Programme) ([]models.Programme, error)) ([]models.Programme, error)
}

type templateLister interface {
	List(ctx context.Context) []models.ProgrammeTemplate
}

type tagLister interface {
	List(ctx context.Context) []models.ProgrammeTag
}

type tagLinkStore interface {
	List(ctx context.Context) []models.ProgrammeTagLink
	Mutate(ctx context.Context, fn func([]models.ProgrammeTagLink) ([]models.ProgrammeTagLink, error)) ([]models.ProgrammeTagLink, error)
}

// ProgrammeServiceParams groups constructor dependencies.
type ProgrammeServiceParams struct {
	Programmes programmeStore
	Templates  templateLister
	Tags       tagLister
	TagLinks   tagLinkStore
	Validator  *validator.Validate
	Logger     *zap.Logger
	IDs        models.IDGenerator
}

// ProgrammeService manages programme records and their tag links.
type ProgrammeService struct {
	programmes programmeStore
	templates  templateLister
	tags       tagLister
	tagLinks   tagLinkStore
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
	now        func() time.Time
}

// NewProgrammeService constructs a ProgrammeService.
func NewProgrammeService(params ProgrammeServiceParams) *ProgrammeService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := params.IDs
	if ids == nil {
		ids = models.NewID
	}
	return &ProgrammeService{
		programmes: params.Programmes,
		templates:  params.Templates,
		tags:       params.Tags,
		tagLinks:   params.TagLinks,
		validator:  ensureValidator(params.Validator),
		logger:     logger,
		ids:        ids,
		now:        time.Now,
	}
}

// List returns programmes matching filter ordered by start date.
func (s *ProgrammeService) List(ctx context.Context, filter models.ProgrammeFilter) []models.Programme {
	var tagged map[string]struct{}
	if filter.TagID != "" {
		tagged = make(map[string]struct{})
		for _, link := range s.tagLinks.List(ctx) {
			if link.TagID == filter.TagID {
				tagged[link.ProgrammeID] = struct{}{}
			}
		}
	}
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := []models.Programme{}
	for _, programme := range s.programmes.List(ctx) {
		if filter.Status != "" && programme.Status != filter.Status {
			continue
		}
		if filter.Category != "" && !strings.EqualFold(programme.Category, filter.Category) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(programme.Type, filter.Type) {
			continue
		}
		if tagged != nil {
			if _, ok := tagged[programme.ID]; !ok {
				continue
			}
		}
		if search != "" && !strings.Contains(strings.ToLower(programme.Name+" "+programme.Description), search) {
			continue
		}
		result = append(result, programme)
	}
	sort.SliceStable(result, func(i, j int) bool { return result[i].StartDate.Before(result[j].StartDate) })
	return result
}

// Get returns a programme by id.
func (s *ProgrammeService) Get(ctx context.Context, id string) (*models.Programme, error) {
	programme, ok := s.programmes.FindByID(ctx, id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	return programme, nil
}

// Create validates and stores a new programme.
func (s *ProgrammeService) Create(ctx context.Context, actor models.Actor, req models.CreateProgrammeRequest) (*models.Programme, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid programme payload")
	}
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	status := req.Status
	if status == "" {
		status = models.ProgrammeStatusUpcoming
	}
	programme := models.Programme{
		ID:          s.ids(models.PrefixProgramme),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Type:        req.Type,
		StartDate:   req.StartDate.UTC(),
		EndDate:     utcPtr(req.EndDate),
		Status:      status,
		Capacity:    req.Capacity,
		Attendees:   []string{},
		Category:    req.Category,
		Location:    req.Location,
		Coordinator: req.Coordinator,
		Tags:        nonNil(req.Tags),
		ResourceIDs: nonNil(req.ResourceIDs),
		Recurrence:  req.Recurrence,
		CreatedBy:   actor.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := s.programmes.Mutate(ctx, func(items []models.Programme) ([]models.Programme, error) {
		return append(items, programme), nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create programme")
	}
	s.logger.Info("programme created", zap.String("programme_id", programme.ID), zap.String("actor", actor.UserID))
	return &programme, nil
}

// CreateFromTemplate instantiates a programme from a stored template.
func (s *ProgrammeService) CreateFromTemplate(ctx context.Context, actor models.Actor, req models.CreateFromTemplateRequest) (*models.Programme, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid template payload")
	}
	var template *models.ProgrammeTemplate
	for _, candidate := range s.templates.List(ctx) {
		if candidate.ID == req.TemplateID {
			t := candidate
			template = &t
			break
		}
	}
	if template == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "template not found")
	}

	name := req.Name
	if name == "" {
		name = template.Name
	}
	end := req.EndDate
	if end == nil && template.DurationMinutes > 0 {
		computed := req.StartDate.Add(time.Duration(template.DurationMinutes) * time.Minute)
		end = &computed
	}
	return s.Create(ctx, actor, models.CreateProgrammeRequest{
		Name:        name,
		Description: template.Description,
		Type:        template.Type,
		StartDate:   req.StartDate,
		EndDate:     end,
		Capacity:    template.Capacity,
		Category:    template.Category,
		Location:    req.Location,
		Tags:        append([]string(nil), template.Tags...),
	})
}

// Update applies the non-nil fields of req.
func (s *ProgrammeService) Update(ctx context.Context, actor models.Actor, id string, req models.UpdateProgrammeRequest) (*models.Programme, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid programme payload")
	}
	return s.mutateOne(ctx, id, func(programme *models.Programme) error {
		if req.Name != nil {
			programme.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			programme.Description = *req.Description
		}
		if req.Type != nil {
			programme.Type = *req.Type
		}
		if req.StartDate != nil {
			programme.StartDate = req.StartDate.UTC()
		}
		if req.EndDate != nil {
			programme.EndDate = utcPtr(req.EndDate)
		}
		if req.Capacity != nil {
			if *req.Capacity < programme.CurrentAttendees {
				return appErrors.Clone(appErrors.ErrValidation, "capacity is below the current attendee count")
			}
			programme.Capacity = req.Capacity
		}
		if req.Category != nil {
			programme.Category = *req.Category
		}
		if req.Location != nil {
			programme.Location = *req.Location
		}
		if req.Coordinator != nil {
			programme.Coordinator = *req.Coordinator
		}
		if req.Tags != nil {
			programme.Tags = req.Tags
		}
		if req.ResourceIDs != nil {
			programme.ResourceIDs = req.ResourceIDs
		}
		if req.Recurrence != nil {
			programme.Recurrence = req.Recurrence
		}
		return validateDateRange(programme.StartDate, programme.EndDate)
	})
}

// UpdateStatus moves a programme to another soft status. Programmes are
// never deleted.
func (s *ProgrammeService) UpdateStatus(ctx context.Context, actor models.Actor, id string, req models.UpdateProgrammeStatusRequest) (*models.Programme, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid status payload")
	}
	programme, err := s.mutateOne(ctx, id, func(programme *models.Programme) error {
		if programme.Status == models.ProgrammeStatusCancelled && req.Status != models.ProgrammeStatusCancelled {
			return appErrors.Clone(appErrors.ErrConflict, "cancelled programmes cannot be reopened")
		}
		programme.Status = req.Status
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("programme status changed",
		zap.String("programme_id", id),
		zap.String("status", string(req.Status)),
		zap.String("actor", actor.UserID),
	)
	return programme, nil
}

// AssignTag links a tag to a programme. Assigning twice is a no-op.
func (s *ProgrammeService) AssignTag(ctx context.Context, actor models.Actor, programmeID, tagID string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	if _, ok := s.findTag(ctx, tagID); !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "tag not found")
	}
	_, err := s.tagLinks.Mutate(ctx, func(links []models.ProgrammeTagLink) ([]models.ProgrammeTagLink, error) {
		for _, link := range links {
			if link.ProgrammeID == programmeID && link.TagID == tagID {
				return links, nil
			}
		}
		return append(links, models.ProgrammeTagLink{ProgrammeID: programmeID, TagID: tagID}), nil
	})
	return err
}

// UnassignTag removes a programme/tag link if present.
func (s *ProgrammeService) UnassignTag(ctx context.Context, actor models.Actor, programmeID, tagID string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	_, err := s.tagLinks.Mutate(ctx, func(links []models.ProgrammeTagLink) ([]models.ProgrammeTagLink, error) {
		kept := links[:0:0]
		for _, link := range links {
			if link.ProgrammeID == programmeID && link.TagID == tagID {
				continue
			}
			kept = append(kept, link)
		}
		return kept, nil
	})
	return err
}

// ListTags returns the tags linked to a programme.
func (s *ProgrammeService) ListTags(ctx context.Context, programmeID string) ([]models.ProgrammeTag, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	linked := make(map[string]struct{})
	for _, link := range s.tagLinks.List(ctx) {
		if link.ProgrammeID == programmeID {
			linked[link.TagID] = struct{}{}
		}
	}
	result := []models.ProgrammeTag{}
	for _, tag := range s.tags.List(ctx) {
		if _, ok := linked[tag.ID]; ok {
			result = append(result, tag)
		}
	}
	return result, nil
}

func (s *ProgrammeService) findTag(ctx context.Context, id string) (models.ProgrammeTag, bool) {
	for _, tag := range s.tags.List(ctx) {
		if tag.ID == id {
			return tag, true
		}
	}
	return models.ProgrammeTag{}, false
}

func (s *ProgrammeService) mutateOne(ctx context.Context, id string, fn func(*models.Programme) error) (*models.Programme, error) {
	var updated models.Programme
	_, err := s.programmes.Mutate(ctx, func(items []models.Programme) ([]models.Programme, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if err := fn(&items[i]); err != nil {
				return nil, err
			}
			items[i].UpdatedAt = s.now().UTC()
			updated = items[i]
			return items, nil
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func validateDateRange(start time.Time, end *time.Time) error {
	if end != nil && end.Before(start) {
		return appErrors.Clone(appErrors.ErrValidation, "end_date must not be before start_date")
	}
	return nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
