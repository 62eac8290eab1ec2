package repository

import (
	"context"

	"github.com/JayR61/congregation-connect/internal/models"
)

// KPIRepository persists KPIs under programme_kpis.
type KPIRepository struct {
	*Collection[models.ProgrammeKPI]
}

// NewKPIRepository constructs the KPI store.
func NewKPIRepository(store *Store) *KPIRepository {
	return &KPIRepository{Collection: NewCollection[models.ProgrammeKPI](store, KeyKPIs)}
}

// ListByProgramme returns KPIs tracked for programmeID.
func (r *KPIRepository) ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeKPI {
	result := []models.ProgrammeKPI{}
	for _, kpi := range r.List(ctx) {
		if kpi.ProgrammeID == programmeID {
			result = append(result, kpi)
		}
	}
	return result
}
