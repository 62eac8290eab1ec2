package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/repository"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
	"github.com/JayR61/congregation-connect/pkg/jobs"
)

// RecentlySentWindow bounds which sent reminders a processing pass reports.
const RecentlySentWindow = 60 * time.Second

// JobTypeReminderNotification tags queued reminder deliveries.
const JobTypeReminderNotification = "reminder.notify"

const failureProgrammeMissing = "programme not found"

type reminderStore interface {
	List(ctx context.Context) []models.ProgrammeReminder
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeReminder
	Mutate(ctx context.Context, fn func([]models.ProgrammeReminder) ([]models.ProgrammeReminder, error)) ([]models.ProgrammeReminder, error)
}

type programmeLister interface {
	List(ctx context.Context) []models.Programme
}

type reminderDispatcher interface {
	Enqueue(job jobs.Job) error
}

type reminderMetrics interface {
	RecordReminderTransition(status models.ReminderStatus, count int)
}

// ReminderNotification is the payload handed to the delivery queue.
type ReminderNotification struct {
	Reminder  models.ProgrammeReminder
	Programme models.Programme
}

// ReminderServiceParams groups constructor dependencies.
type ReminderServiceParams struct {
	Reminders  reminderStore
	Programmes programmeLister
	Dispatcher reminderDispatcher
	Metrics    reminderMetrics
	Validator  *validator.Validate
	Logger     *zap.Logger
	IDs        models.IDGenerator
}

// ReminderService schedules reminders and moves them through
// scheduled -> sent | failed.
type ReminderService struct {
	reminders  reminderStore
	programmes programmeLister
	dispatcher reminderDispatcher
	metrics    reminderMetrics
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
	now        func() time.Time
}

// NewReminderService constructs a ReminderService.
func NewReminderService(params ReminderServiceParams) *ReminderService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ids := params.IDs
	if ids == nil {
		ids = models.NewID
	}
	return &ReminderService{
		reminders:  params.Reminders,
		programmes: params.Programmes,
		dispatcher: params.Dispatcher,
		metrics:    params.Metrics,
		validator:  ensureValidator(params.Validator),
		logger:     logger,
		ids:        ids,
		now:        time.Now,
	}
}

// Schedule validates the request and appends a scheduled reminder.
func (s *ReminderService) Schedule(ctx context.Context, actor models.Actor, req models.ScheduleReminderRequest) (*models.ProgrammeReminder, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid reminder payload")
	}
	if req.Schedule != models.ScheduleCustom && req.CustomTime != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "custom_time is only allowed with the custom schedule")
	}

	reminder := models.ProgrammeReminder{
		ID:          s.ids(models.PrefixReminder),
		ProgrammeID: req.ProgrammeID,
		Schedule:    req.Schedule,
		Message:     req.Message,
		Recipients:  req.Recipients,
		Status:      models.ReminderScheduled,
		CreatedBy:   actor.UserID,
		CreatedAt:   s.now().UTC(),
	}
	if req.CustomTime != nil {
		custom := req.CustomTime.UTC()
		reminder.CustomTime = &custom
	}

	if _, err := s.reminders.Mutate(ctx, func(items []models.ProgrammeReminder) ([]models.ProgrammeReminder, error) {
		return append(items, reminder), nil
	}); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to schedule reminder")
	}

	s.logger.Info("reminder scheduled",
		zap.String("reminder_id", reminder.ID),
		zap.String("programme_id", reminder.ProgrammeID),
		zap.String("schedule", string(reminder.Schedule)),
		zap.String("actor", actor.UserID),
	)
	return &reminder, nil
}

// Process evaluates every scheduled reminder once. Reminders pointing at a
// missing programme fail terminally; due reminders are marked sent. Reminders
// that already left the scheduled state are never touched.
func (s *ReminderService) Process(ctx context.Context) (*models.ProcessResult, error) {
	now := s.now().UTC()
	programmes := repository.IndexByID(s.programmes.List(ctx))

	var (
		transitioned []ReminderNotification
		failed       []models.ProgrammeReminder
	)
	updated, err := s.reminders.Mutate(ctx, func(items []models.ProgrammeReminder) ([]models.ProgrammeReminder, error) {
		transitioned, failed = nil, nil
		for i := range items {
			reminder := &items[i]
			if reminder.Status != models.ReminderScheduled {
				continue
			}
			programme, ok := programmes[reminder.ProgrammeID]
			if !ok {
				reminder.Status = models.ReminderFailed
				reminder.FailureReason = failureProgrammeMissing
				failed = append(failed, *reminder)
				continue
			}
			if !IsReminderDue(*reminder, programme, now) {
				continue
			}
			sentAt := now
			reminder.Status = models.ReminderSent
			reminder.SentAt = &sentAt
			transitioned = append(transitioned, ReminderNotification{Reminder: *reminder, Programme: programme})
		}
		return items, nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to process reminders")
	}

	for _, reminder := range failed {
		s.logger.Warn("reminder failed",
			zap.String("reminder_id", reminder.ID),
			zap.String("programme_id", reminder.ProgrammeID),
			zap.String("reason", reminder.FailureReason),
		)
	}
	s.dispatch(transitioned)
	if s.metrics != nil {
		s.metrics.RecordReminderTransition(models.ReminderSent, len(transitioned))
		s.metrics.RecordReminderTransition(models.ReminderFailed, len(failed))
	}

	if failed == nil {
		failed = []models.ProgrammeReminder{}
	}
	return &models.ProcessResult{
		Reminders: updated,
		Sent:      RecentlySent(updated, now),
		Failed:    failed,
	}, nil
}

// Cancel removes a reminder that has not been sent yet.
func (s *ReminderService) Cancel(ctx context.Context, actor models.Actor, id string) error {
	if err := requireManager(actor); err != nil {
		return err
	}
	_, err := s.reminders.Mutate(ctx, func(items []models.ProgrammeReminder) ([]models.ProgrammeReminder, error) {
		for i, reminder := range items {
			if reminder.ID != id {
				continue
			}
			if reminder.Status != models.ReminderScheduled {
				return nil, appErrors.Clone(appErrors.ErrConflict, "only scheduled reminders can be cancelled")
			}
			return append(items[:i:i], items[i+1:]...), nil
		}
		return nil, appErrors.Clone(appErrors.ErrNotFound, "reminder not found")
	})
	if err != nil {
		return err
	}
	s.logger.Info("reminder cancelled", zap.String("reminder_id", id), zap.String("actor", actor.UserID))
	return nil
}

// List returns every reminder.
func (s *ReminderService) List(ctx context.Context) []models.ProgrammeReminder {
	return s.reminders.List(ctx)
}

// ListByProgramme returns the reminders attached to a programme.
func (s *ReminderService) ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeReminder {
	return s.reminders.ListByProgramme(ctx, programmeID)
}

func (s *ReminderService) dispatch(notifications []ReminderNotification) {
	if s.dispatcher == nil {
		return
	}
	for _, notification := range notifications {
		job := jobs.Job{
			ID:      notification.Reminder.ID,
			Type:    JobTypeReminderNotification,
			Payload: notification,
		}
		if err := s.dispatcher.Enqueue(job); err != nil {
			s.logger.Warn("failed to enqueue reminder notification",
				zap.String("reminder_id", notification.Reminder.ID),
				zap.Error(err),
			)
		}
	}
}

// IsReminderDue applies the schedule rule: custom reminders fire once their
// time has passed, fixed schedules once the programme start is within the
// schedule offset of now.
func IsReminderDue(reminder models.ProgrammeReminder, programme models.Programme, now time.Time) bool {
	if reminder.Schedule == models.ScheduleCustom {
		return reminder.CustomTime != nil && !reminder.CustomTime.After(now)
	}
	offset, ok := reminder.Schedule.Offset()
	if !ok {
		return false
	}
	return !now.Add(offset).Before(programme.StartDate)
}

// RecentlySent returns reminders whose SentAt lies within RecentlySentWindow
// before now.
func RecentlySent(reminders []models.ProgrammeReminder, now time.Time) []models.ProgrammeReminder {
	cutoff := now.Add(-RecentlySentWindow)
	result := []models.ProgrammeReminder{}
	for _, reminder := range reminders {
		if reminder.Status != models.ReminderSent || reminder.SentAt == nil {
			continue
		}
		if reminder.SentAt.Before(cutoff) || reminder.SentAt.After(now) {
			continue
		}
		result = append(result, reminder)
	}
	return result
}
