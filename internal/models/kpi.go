package models

import "time"

// ProgrammeKPI tracks a measurable target for a programme.
type ProgrammeKPI struct {
	ID          string    `json:"id"`
	ProgrammeID string    `json:"programme_id"`
	Name        string    `json:"name"`
	Target      float64   `json:"target"`
	Actual      float64   `json:"actual"`
	Unit        string    `json:"unit"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Progress returns Actual as a percentage of Target, 0 when no target is set.
func (k ProgrammeKPI) Progress() float64 {
	if k.Target == 0 {
		return 0
	}
	return k.Actual / k.Target * 100
}

// CreateKPIRequest defines a KPI.
type CreateKPIRequest struct {
	ProgrammeID string  `json:"programme_id" validate:"required"`
	Name        string  `json:"name" validate:"required,max=120"`
	Target      float64 `json:"target" validate:"gt=0"`
	Unit        string  `json:"unit" validate:"max=32"`
}

// UpdateKPIProgressRequest sets the measured value.
type UpdateKPIProgressRequest struct {
	Actual float64 `json:"actual" validate:"gte=0"`
}
