package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

type kpiStore interface {
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeKPI
	Mutate(ctx context.Context, fn func([]models.ProgrammeKPI) ([]models.ProgrammeKPI, error)) ([]models.ProgrammeKPI, error)
}

// KPIProgress pairs a KPI with its completion percentage.
type KPIProgress struct {
	models.ProgrammeKPI
	Progress float64 `json:"progress"`
}

// KPIService tracks programme targets.
type KPIService struct {
	kpis       kpiStore
	programmes programmeFinder
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
	now        func() time.Time
}

// NewKPIService constructs a KPIService.
func NewKPIService(kpis kpiStore, programmes programmeFinder, validate *validator.Validate, logger *zap.Logger) *KPIService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KPIService{
		kpis:       kpis,
		programmes: programmes,
		validator:  ensureValidator(validate),
		logger:     logger,
		ids:        models.NewID,
		now:        time.Now,
	}
}

// Create defines a KPI for a programme.
func (s *KPIService) Create(ctx context.Context, actor models.Actor, req models.CreateKPIRequest) (*models.ProgrammeKPI, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid kpi payload")
	}
	if _, ok := s.programmes.FindByID(ctx, req.ProgrammeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	kpi := models.ProgrammeKPI{
		ID:          s.ids(models.PrefixKPI),
		ProgrammeID: req.ProgrammeID,
		Name:        req.Name,
		Target:      req.Target,
		Unit:        req.Unit,
		UpdatedAt:   s.now().UTC(),
	}
	if _, err := s.kpis.Mutate(ctx, func(items []models.ProgrammeKPI) ([]models.ProgrammeKPI, error) {
		return append(items, kpi), nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create kpi")
	}
	return &kpi, nil
}

// UpdateProgress records the measured value of a KPI.
func (s *KPIService) UpdateProgress(ctx context.Context, actor models.Actor, id string, req models.UpdateKPIProgressRequest) (*models.ProgrammeKPI, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid kpi progress payload")
	}
	var updated models.ProgrammeKPI
	_, err := s.kpis.Mutate(ctx, func(items []models.ProgrammeKPI) ([]models.ProgrammeKPI, error) {
		for i := range items {
			if items[i].ID == id {
				items[i].Actual = req.Actual
				items[i].UpdatedAt = s.now().UTC()
				updated = items[i]
				return items, nil
			}
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "kpi not found")
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("kpi progress updated", zap.String("kpi_id", id), zap.Float64("actual", req.Actual))
	return &updated, nil
}

// ListByProgramme returns KPIs with their progress.
func (s *KPIService) ListByProgramme(ctx context.Context, programmeID string) ([]KPIProgress, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	items := s.kpis.ListByProgramme(ctx, programmeID)
	result := make([]KPIProgress, 0, len(items))
	for _, kpi := range items {
		result = append(result, KPIProgress{ProgrammeKPI: kpi, Progress: round2(kpi.Progress())})
	}
	return result, nil
}
