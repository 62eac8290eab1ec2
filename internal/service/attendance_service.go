package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

type attendanceStore interface {
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeAttendance
	Mutate(ctx context.Context, fn func([]models.ProgrammeAttendance) ([]models.ProgrammeAttendance, error)) ([]models.ProgrammeAttendance, error)
}

// AttendanceService records programme check-ins.
type AttendanceService struct {
	attendance attendanceStore
	programmes programmeStore
	validator  *validator.Validate
	logger     *zap.Logger
	ids        models.IDGenerator
	now        func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(attendance attendanceStore, programmes programmeStore, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		attendance: attendance,
		programmes: programmes,
		validator:  ensureValidator(validate),
		logger:     logger,
		ids:        models.NewID,
		now:        time.Now,
	}
}

// Record appends a check-in. The first present (or late) check-in of a member
// raises the programme's CurrentAttendees, subject to its capacity.
func (s *AttendanceService) Record(ctx context.Context, actor models.Actor, req models.RecordAttendanceRequest) (*models.ProgrammeAttendance, error) {
	if err := requireManager(actor); err != nil {
		return nil, err
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid attendance payload")
	}
	date := s.now().UTC()
	if req.Date != nil {
		date = req.Date.UTC()
	}
	record := models.ProgrammeAttendance{
		ID:          s.ids(models.PrefixAttendance),
		ProgrammeID: req.ProgrammeID,
		MemberID:    req.MemberID,
		Date:        date,
		Status:      req.Status,
		IsPresent:   req.Status.CountsAsPresent(),
		Notes:       req.Notes,
		RecordedBy:  actor.UserID,
	}

	// The programme key is locked for the whole check-in so the capacity check,
	// the attendance append and the seat increment cannot interleave. Lock order
	// is programmes, then attendance.
	if _, err := s.programmes.Mutate(ctx, func(programmes []models.Programme) ([]models.Programme, error) {
		idx := -1
		for i := range programmes {
			if programmes[i].ID == record.ProgrammeID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
		}

		firstPresence := false
		if _, err := s.attendance.Mutate(ctx, func(items []models.ProgrammeAttendance) ([]models.ProgrammeAttendance, error) {
			firstPresence = record.IsPresent
			for _, existing := range items {
				if existing.ProgrammeID == record.ProgrammeID && existing.MemberID == record.MemberID && existing.IsPresent {
					firstPresence = false
					break
				}
			}
			if firstPresence && programmes[idx].IsFull() {
				return nil, appErrors.Clone(appErrors.ErrCapacity, "programme is at capacity")
			}
			return append(items, record), nil
		}); err != nil {
			return nil, err
		}

		if firstPresence {
			programmes[idx].CurrentAttendees++
		}
		return programmes, nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("attendance recorded",
		zap.String("programme_id", record.ProgrammeID),
		zap.String("member_id", record.MemberID),
		zap.String("status", string(record.Status)),
	)
	return &record, nil
}

// ListByProgramme returns the check-ins for a programme.
func (s *AttendanceService) ListByProgramme(ctx context.Context, programmeID string) ([]models.ProgrammeAttendance, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	return s.attendance.ListByProgramme(ctx, programmeID), nil
}
