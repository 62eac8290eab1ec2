package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/pkg/kv"
)

func TestCollectionListDefaultsToEmpty(t *testing.T) {
	store := NewStore(kv.NewMemoryStore(), nil)
	repo := NewProgrammeRepository(store)

	items := repo.List(context.Background())
	require.NotNil(t, items)
	assert.Empty(t, items)
	assert.Equal(t, KeyProgrammes, repo.Key())
}

func TestCollectionSaveNilWritesEmptyArray(t *testing.T) {
	backend := kv.NewMemoryStore()
	repo := NewFeedbackRepository(NewStore(backend, nil))
	repo.Save(context.Background(), nil)

	raw, ok, err := backend.Read(context.Background(), KeyFeedback)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(raw))
}

func TestCollectionMutate(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository(NewStore(kv.NewMemoryStore(), nil))

	_, err := repo.Mutate(ctx, func(items []models.ProgrammeAttendance) ([]models.ProgrammeAttendance, error) {
		return append(items,
			models.ProgrammeAttendance{ID: "att-1", ProgrammeID: "prog-1"},
			models.ProgrammeAttendance{ID: "att-2", ProgrammeID: "prog-2"},
		), nil
	})
	require.NoError(t, err)

	_, err = repo.Mutate(ctx, func(items []models.ProgrammeAttendance) ([]models.ProgrammeAttendance, error) {
		return nil, errors.New("abort")
	})
	require.Error(t, err)

	assert.Len(t, repo.List(ctx), 2)
	byProgramme := repo.ListByProgramme(ctx, "prog-1")
	require.Len(t, byProgramme, 1)
	assert.Equal(t, "att-1", byProgramme[0].ID)
}

func TestProgrammeFindByID(t *testing.T) {
	ctx := context.Background()
	repo := NewProgrammeRepository(NewStore(kv.NewMemoryStore(), nil))
	repo.Save(ctx, []models.Programme{{ID: "prog-1", Name: "Choir"}, {ID: "prog-2", Name: "Alpha"}})

	found, ok := repo.FindByID(ctx, "prog-2")
	require.True(t, ok)
	assert.Equal(t, "Alpha", found.Name)

	_, ok = repo.FindByID(ctx, "prog-9")
	assert.False(t, ok)
}

func TestCatalogTagLinks(t *testing.T) {
	ctx := context.Background()
	repo := NewCatalogRepository(NewStore(kv.NewMemoryStore(), nil))
	repo.ProgrammeTags.Save(ctx, []models.ProgrammeTagLink{
		{ProgrammeID: "prog-1", TagID: "tag-a"},
		{ProgrammeID: "prog-1", TagID: "tag-b"},
		{ProgrammeID: "prog-2", TagID: "tag-a"},
	})

	assert.ElementsMatch(t, []string{"tag-a", "tag-b"}, repo.TagIDsForProgramme(ctx, "prog-1"))
	assert.Len(t, repo.ProgrammeIDsForTag(ctx, "tag-a"), 2)
	assert.Equal(t, KeyProgrammeTags, repo.ProgrammeTags.Key())
}

func TestStoresShareOneFileBackend(t *testing.T) {
	ctx := context.Background()
	backend, err := kv.NewFileStore(t.TempDir())
	require.NoError(t, err)
	store := NewStore(backend, nil)

	NewReminderRepository(store).Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-1", Status: models.ReminderScheduled}})
	NewKPIRepository(store).Save(ctx, []models.ProgrammeKPI{{ID: "kpi-1", ProgrammeID: "prog-1", Target: 10}})

	reopened := NewStore(backend, nil)
	assert.Len(t, NewReminderRepository(reopened).ListByProgramme(ctx, "prog-1"), 1)
	assert.Len(t, NewKPIRepository(reopened).ListByProgramme(ctx, "prog-1"), 1)
	assert.Empty(t, NewResourceRepository(reopened).List(ctx))
}
