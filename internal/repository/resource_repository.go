package repository

import "github.com/JayR61/congregation-connect/internal/models"

// ResourceRepository persists bookable resources under programme_resources.
type ResourceRepository struct {
	*Collection[models.ProgrammeResource]
}

// NewResourceRepository constructs the resource store.
func NewResourceRepository(store *Store) *ResourceRepository {
	return &ResourceRepository{Collection: NewCollection[models.ProgrammeResource](store, KeyResources)}
}
