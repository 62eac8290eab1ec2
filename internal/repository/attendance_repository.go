package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// AttendanceRepository persists check-ins under programme_attendance.
type AttendanceRepository struct {
	*Collection[models.ProgrammeAttendance]
}

// NewAttendanceRepository constructs the attendance store.
func NewAttendanceRepository(store *Store) *AttendanceRepository {
	return &AttendanceRepository{Collection: NewCollection[models.ProgrammeAttendance](store, KeyAttendance)}
}

// ListByProgramme returns the check-ins recorded for programmeID.
func (r *AttendanceRepository) ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeAttendance {
	result := []models.ProgrammeAttendance{}
	for _, record := range r.List(ctx) {
		if record.ProgrammeID == programmeID {
			result = append(result, record)
		}
	}
	return result
}
