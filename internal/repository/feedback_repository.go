package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// FeedbackRepository persists feedback under programme_feedback.
type FeedbackRepository struct {
	*Collection[models.ProgrammeFeedback]
}

// NewFeedbackRepository constructs the feedback store.
func NewFeedbackRepository(store *Store) *FeedbackRepository {
	return &FeedbackRepository{Collection: NewCollection[models.ProgrammeFeedback](store, KeyFeedback)}
}

// ListByProgramme returns feedback left for programmeID.
func (r *FeedbackRepository) ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeFeedback {
	result := []models.ProgrammeFeedback{}
	for _, item := range r.List(ctx) {
		if item.ProgrammeID == programmeID {
			result = append(result, item)
		}
	}
	return result
}
