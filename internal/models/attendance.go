package models

import "time"

// AttendanceStatus is the check-in outcome for a member.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// CountsAsPresent reports whether the status should set IsPresent.
func (s AttendanceStatus) CountsAsPresent() bool {
	return s == AttendancePresent || s == AttendanceLate
}

// ProgrammeAttendance is a single check-in record. Records are append-only.
type ProgrammeAttendance struct {
	ID          string           `json:"id"`
	ProgrammeID string           `json:"programme_id"`
	MemberID    string           `json:"member_id"`
	Date        time.Time        `json:"date"`
	Status      AttendanceStatus `json:"status"`
	IsPresent   bool             `json:"is_present"`
	Notes       string           `json:"notes,omitempty"`
	RecordedBy  string           `json:"recorded_by,omitempty"`
}

// RecordAttendanceRequest is the check-in payload.
type RecordAttendanceRequest struct {
	ProgrammeID string           `json:"programme_id" validate:"required"`
	MemberID    string           `json:"member_id" validate:"required"`
	Date        *time.Time       `json:"date"`
	Status      AttendanceStatus `json:"status" validate:"required,attendance_status"`
	Notes       string           `json:"notes" validate:"max=500"`
}

// AttendanceSummary aggregates check-ins for one programme.
type AttendanceSummary struct {
	ProgrammeID    string                   `json:"programme_id"`
	Total          int                      `json:"total"`
	Present        int                      `json:"present"`
	ByStatus       map[AttendanceStatus]int `json:"by_status"`
	AttendanceRate float64                  `json:"attendance_rate"`
}

// Member is the minimal member view printed on programme reports.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
