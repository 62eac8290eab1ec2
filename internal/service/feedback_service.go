package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

type feedbackStore interface {
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeFeedback
	Mutate(ctx context.Context, fn func([]models.ProgrammeFeedback) ([]models.ProgrammeFeedback, error)) ([]models.ProgrammeFeedback, error)
}

// FeedbackService accepts member ratings. Feedback is append-only.
type FeedbackService struct {
	feedback   feedbackStore
	programmes programmeFinder
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
	now        func() time.Time
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(feedback feedbackStore, programmes programmeFinder, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedbackService{
		feedback:   feedback,
		programmes: programmes,
		validator:  ensureValidator(validate),
		logger:     logger,
		ids:        models.NewID,
		now:        time.Now,
	}
}

// Submit appends a rating between 1 and 5. Members may only rate as themselves.
func (s *FeedbackService) Submit(ctx context.Context, actor models.Actor, req models.SubmitFeedbackRequest) (*models.ProgrammeFeedback, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if req.MemberID == "" {
		req.MemberID = actor.UserID
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid feedback payload")
	}
	if !actor.CanManage() && req.MemberID != actor.UserID {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "members can only submit their own feedback")
	}
	if _, ok := s.programmes.FindByID(ctx, req.ProgrammeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}

	item := models.ProgrammeFeedback{
		ID:          s.ids(models.PrefixFeedback),
		ProgrammeID: req.ProgrammeID,
		MemberID:    req.MemberID,
		Rating:      req.Rating,
		Comments:    req.Comments,
		SubmittedAt: s.now().UTC(),
	}
	if _, err := s.feedback.Mutate(ctx, func(items []models.ProgrammeFeedback) ([]models.ProgrammeFeedback, error) {
		return append(items, item), nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store feedback")
	}
	return &item, nil
}

// ListByProgramme returns feedback for a programme.
func (s *FeedbackService) ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeFeedback, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	return s.feedback.ListByProgramme(ctx, programmeID), nil
}
