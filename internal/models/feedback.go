package models

import "time"

// ProgrammeFeedback is an append-only rating left by a member.
type ProgrammeFeedback struct {
	ID          string    `json:"id"`
	ProgrammeID string    `json:"programme_id"`
	MemberID    string    `json:"member_id"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmitFeedbackRequest is the feedback payload.
type SubmitFeedbackRequest struct {
	ProgrammeID string `json:"programme_id" validate:"required"`
	MemberID    string `json:"member_id" validate:"required"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comments    string `json:"comments" validate:"max=2000"`
}

// FeedbackSummary aggregates ratings for a programme.
type FeedbackSummary struct {
	ProgrammeID   string      `json:"programme_id"`
	Count         int         `json:"count"`
	AverageRating float64     `json:"average_rating"`
	Distribution  map[int]int `json:"distribution"`
}
