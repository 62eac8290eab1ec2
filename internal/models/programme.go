package models

import "time"

// ProgrammeStatus captures the soft lifecycle of a programme.
type ProgrammeStatus string

const (
	ProgrammeStatusUpcoming  ProgrammeStatus = "upcoming"
	ProgrammeStatusOngoing   ProgrammeStatus = "ongoing"
	ProgrammeStatusActive    ProgrammeStatus = "active"
	ProgrammeStatusCompleted ProgrammeStatus = "completed"
	ProgrammeStatusCancelled ProgrammeStatus = "cancelled"
)

// RecurrenceFrequency describes how often a programme repeats.
type RecurrenceFrequency string

const (
	RecurrenceNone    RecurrenceFrequency = "none"
	RecurrenceDaily   RecurrenceFrequency = "daily"
	RecurrenceWeekly  RecurrenceFrequency = "weekly"
	RecurrenceMonthly RecurrenceFrequency = "monthly"
)

// Recurrence holds optional repeat information.
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval,omitempty"`
	Until     *time.Time          `json:"until,omitempty"`
}

// Programme is a service, event, class or outreach run by the congregation.
type Programme struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description"`
	Type             string          `json:"type"`
	StartDate        time.Time       `json:"start_date"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	Status           ProgrammeStatus `json:"status"`
	Capacity         *int            `json:"capacity,omitempty"`
	Attendees        []string        `json:"attendees"`
	CurrentAttendees int             `json:"current_attendees"`
	Category         string          `json:"category,omitempty"`
	Location         string          `json:"location,omitempty"`
	Coordinator      string          `json:"coordinator,omitempty"`
	Tags             []string        `json:"tags"`
	ResourceIDs      []string        `json:"resource_ids"`
	Recurrence       *Recurrence     `json:"recurrence,omitempty"`
	CreatedBy        string          `json:"created_by,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// IsFull reports whether the programme capacity has been reached.
func (p Programme) IsFull() bool {
	return p.Capacity != nil && p.CurrentAttendees >= *p.Capacity
}

// ProgrammeFilter narrows programme listings.
type ProgrammeFilter struct {
	Status   ProgrammeStatus
	Category string
	Type     string
	TagID    string
	Search   string
}

// CreateProgrammeRequest is the payload for creating a programme.
type CreateProgrammeRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Description string          `json:"description" validate:"max=4000"`
	Type        string          `json:"type" validate:"required,max=64"`
	StartDate   time.Time       `json:"start_date" validate:"required"`
	EndDate     *time.Time      `json:"end_date"`
	Status      ProgrammeStatus `json:"status" validate:"omitempty,programme_status"`
	Capacity    *int            `json:"capacity" validate:"omitempty,min=1"`
	Category    string          `json:"category" validate:"max=64"`
	Location    string          `json:"location" validate:"max=200"`
	Coordinator string          `json:"coordinator" validate:"max=200"`
	Tags        []string        `json:"tags"`
	ResourceIDs []string        `json:"resource_ids"`
	Recurrence  *Recurrence     `json:"recurrence"`
}

// UpdateProgrammeRequest carries partial updates; nil fields are left untouched.
type UpdateProgrammeRequest struct {
	Name        *string     `json:"name" validate:"omitempty,max=200"`
	Description *string     `json:"description" validate:"omitempty,max=4000"`
	Type        *string     `json:"type" validate:"omitempty,max=64"`
	StartDate   *time.Time  `json:"start_date"`
	EndDate     *time.Time  `json:"end_date"`
	Capacity    *int        `json:"capacity" validate:"omitempty,min=1"`
	Category    *string     `json:"category" validate:"omitempty,max=64"`
	Location    *string     `json:"location" validate:"omitempty,max=200"`
	Coordinator *string     `json:"coordinator" validate:"omitempty,max=200"`
	Tags        []string    `json:"tags"`
	ResourceIDs []string    `json:"resource_ids"`
	Recurrence  *Recurrence `json:"recurrence"`
}

// UpdateProgrammeStatusRequest transitions a programme between soft states.
type UpdateProgrammeStatusRequest struct {
	Status ProgrammeStatus `json:"status" validate:"required,programme_status"`
}

// CreateFromTemplateRequest instantiates a programme from a template.
type CreateFromTemplateRequest struct {
	TemplateID string     `json:"template_id" validate:"required"`
	Name       string     `json:"name" validate:"omitempty,max=200"`
	StartDate  time.Time  `json:"start_date" validate:"required"`
	EndDate    *time.Time `json:"end_date"`
	Location   string     `json:"location" validate:"max=200"`
}
