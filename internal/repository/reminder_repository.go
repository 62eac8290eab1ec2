package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// ReminderRepository persists reminders under programme_reminders.
type ReminderRepository struct {
	*Collection[models.ProgrammeReminder]
}

// NewReminderRepository constructs the reminder store.
func NewReminderRepository(store *Store) *ReminderRepository {
	return &ReminderRepository{Collection: NewCollection[models.ProgrammeReminder](store, KeyReminders)}
}

// ListByProgramme returns reminders attached to programmeID.
func (r *ReminderRepository) ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeReminder {
	result := []models.ProgrammeReminder{}
	for _, reminder := range r.List(ctx) {
		if reminder.ProgrammeID == programmeID {
			result = append(result, reminder)
		}
	}
	return result
}
