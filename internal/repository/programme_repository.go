package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// ProgrammeRepository persists programmes under church_programmes.
type ProgrammeRepository struct {
	*Collection[models.Programme]
}

// NewProgrammeRepository constructs the programme store.
func NewProgrammeRepository(store *Store) *ProgrammeRepository {
	return &ProgrammeRepository{Collection: NewCollection[models.Programme](store, KeyProgrammes)}
}

// FindByID returns the programme with id, if any.
func (r *ProgrammeRepository) FindByID(ctx context.Context, id string) (*models.Programme, bool) {
	for _, p := range r.List(ctx) {
		if p.ID == id {
			programme := p
			return &programme, true
		}
	}
	return nil, false
}

// IndexByID maps programme ids to programmes.
func IndexByID(programmes []models.Programme) map[string]models.Programme {
	index := make(map[string]models.Programme, len(programmes))
	for _, p := range programmes {
		index[p.ID] = p
	}
	return index
}
