package service

import (
	"github.com/go-playground/validator/v10"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

// NewValidator returns a validator with the domain enum rules registered.
func NewValidator() *validator.Validate {
	validate := validator.New()
	registerDomainValidations(validate)
	return validate
}

func registerDomainValidations(validate *validator.Validate) {
	_ = validate.RegisterValidation("programme_status", func(fl validator.FieldLevel) bool {
		switch models.ProgrammeStatus(fl.Field().String()) {
		case models.ProgrammeStatusUpcoming, models.ProgrammeStatusOngoing, models.ProgrammeStatusActive,
			models.ProgrammeStatusCompleted, models.ProgrammeStatusCancelled:
			return true
		default:
			return false
		}
	})
	_ = validate.RegisterValidation("attendance_status", func(fl validator.FieldLevel) bool {
		switch models.AttendanceStatus(fl.Field().String()) {
		case models.AttendancePresent, models.AttendanceAbsent, models.AttendanceLate, models.AttendanceExcused:
			return true
		default:
			return false
		}
	})
	_ = validate.RegisterValidation("reminder_schedule", func(fl validator.FieldLevel) bool {
		switch models.ReminderSchedule(fl.Field().String()) {
		case models.ScheduleDayBefore, models.ScheduleHourBefore, models.ScheduleWeekBefore, models.ScheduleCustom:
			return true
		default:
			return false
		}
	})
}

func ensureValidator(validate *validator.Validate) *validator.Validate {
	if validate == nil {
		return NewValidator()
	}
	registerDomainValidations(validate)
	return validate
}

func validationError(err error, message string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func requireManager(actor models.Actor) error {
	if actor.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	if !actor.CanManage() {
		return appErrors.Clone(appErrors.ErrForbidden, "only admins and leaders can change programmes")
	}
	return nil
}

func requireActor(actor models.Actor) error {
	if actor.UserID == "" {
		return appErrors.ErrUnauthorized
	}
	return nil
}
