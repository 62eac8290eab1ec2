package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// CatalogRepository groups the reference collections and the tag join table.
type CatalogRepository struct {
	Templates     *Collection[models.ProgrammeTemplate]
	Categories    *Collection[models.ProgrammeCategory]
	Tags          *Collection[models.ProgrammeTag]
	ProgrammeTags *Collection[models.ProgrammeTagLink]
}

// NewCatalogRepository constructs the catalogue stores.
func NewCatalogRepository(store *Store) *CatalogRepository {
	return &CatalogRepository{
		Templates:     NewCollection[models.ProgrammeTemplate](store, KeyTemplates),
		Categories:    NewCollection[models.ProgrammeCategory](store, KeyCategories),
		Tags:          NewCollection[models.ProgrammeTag](store, KeyTags),
		ProgrammeTags: NewCollection[models.ProgrammeTagLink](store, KeyProgrammeTags),
	}
}

// TagIDsForProgramme returns the tag ids linked to programmeID.
func (r *CatalogRepository) TagIDsForProgramme(ctx context.Context, programmeID string) []string {
	ids := []string{}
	for _, link := range r.ProgrammeTags.List(ctx) {
		if link.ProgrammeID == programmeID {
			ids = append(ids, link.TagID)
		}
	}
	return ids
}

// ProgrammeIDsForTag returns the programme ids linked to tagID.
func (r *CatalogRepository) ProgrammeIDsForTag(ctx context.Context, tagID string) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, link := range r.ProgrammeTags.List(ctx) {
		if link.TagID == tagID {
			ids[link.ProgrammeID] = struct{}{}
		}
	}
	return ids
}
