package models

import "time"

// ResourceBooking reserves some quantity of a resource for a programme.
type ResourceBooking struct {
	ID          string    `json:"id"`
	ProgrammeID string    `json:"programme_id"`
	From        time.Time `json:"from"`
	To          time.Time `json:"to"`
	Quantity    int       `json:"quantity"`
	BookedBy    string    `json:"booked_by,omitempty"`
}

// Overlaps reports whether the booking shares any instant with [from, to).
func (b ResourceBooking) Overlaps(from, to time.Time) bool {
	return b.From.Before(to) && from.Before(b.To)
}

// ProgrammeResource is a room, vehicle or piece of equipment.
type ProgrammeResource struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	Quantity int               `json:"quantity"`
	Bookings []ResourceBooking `json:"bookings"`
}

// CreateResourceRequest registers a resource.
type CreateResourceRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Type     string `json:"type" validate:"required,max=64"`
	Quantity int    `json:"quantity" validate:"min=1"`
}

// BookResourceRequest reserves a resource window.
type BookResourceRequest struct {
	ProgrammeID string    `json:"programme_id" validate:"required"`
	From        time.Time `json:"from" validate:"required"`
	To          time.Time `json:"to" validate:"required,gtfield=From"`
	Quantity    int       `json:"quantity" validate:"min=1"`
}
