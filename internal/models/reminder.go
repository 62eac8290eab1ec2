package models

import "time"

// ReminderSchedule selects when a reminder becomes due.
type ReminderSchedule string

const (
	ScheduleDayBefore  ReminderSchedule = "day_before"
	ScheduleHourBefore ReminderSchedule = "hour_before"
	ScheduleWeekBefore ReminderSchedule = "week_before"
	ScheduleCustom     ReminderSchedule = "custom"
)

// Offset returns how long before the programme start a fixed schedule fires.
func (s ReminderSchedule) Offset() (time.Duration, bool) {
	switch s {
	case ScheduleDayBefore:
		return 24 * time.Hour, true
	case ScheduleHourBefore:
		return time.Hour, true
	case ScheduleWeekBefore:
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// ReminderStatus is the reminder state machine: scheduled -> sent | failed.
type ReminderStatus string

const (
	ReminderScheduled ReminderStatus = "scheduled"
	ReminderSent      ReminderStatus = "sent"
	ReminderFailed    ReminderStatus = "failed"
)

// ProgrammeReminder is a pending or dispatched notification for a programme.
type ProgrammeReminder struct {
	ID            string           `json:"id"`
	ProgrammeID   string           `json:"programme_id"`
	Schedule      ReminderSchedule `json:"schedule"`
	CustomTime    *time.Time       `json:"custom_time,omitempty"`
	Message       string           `json:"message,omitempty"`
	Recipients    []string         `json:"recipients,omitempty"`
	Status        ReminderStatus   `json:"status"`
	SentAt        *time.Time       `json:"sent_at,omitempty"`
	FailureReason string           `json:"failure_reason,omitempty"`
	CreatedBy     string           `json:"created_by,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// ScheduleReminderRequest is the payload for scheduling a reminder.
type ScheduleReminderRequest struct {
	ProgrammeID string           `json:"programme_id" validate:"required"`
	Schedule    ReminderSchedule `json:"schedule" validate:"required,reminder_schedule"`
	CustomTime  *time.Time       `json:"custom_time" validate:"required_if=Schedule custom"`
	Message     string           `json:"message" validate:"max=1000"`
	Recipients  []string         `json:"recipients"`
}

// ProcessResult reports the outcome of one processing pass.
type ProcessResult struct {
	Reminders []ProgrammeReminder `json:"reminders"`
	Sent      []ProgrammeReminder `json:"sent"`
	Failed    []ProgrammeReminder `json:"failed"`
}
