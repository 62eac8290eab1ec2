package service

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/repository"
	"github.com/JayR61/congregation-connect/pkg/jobs"
	"github.com/JayR61/congregation-connect/pkg/kv"
)

var (
	adminActor  = models.Actor{UserID: "u-admin", Role: models.RoleAdmin, Name: "Pastor Ade"}
	leaderActor = models.Actor{UserID: "u-leader", Role: models.RoleLeader, Name: "Grace"}
	memberActor = models.Actor{UserID: "u-member", Role: models.RoleMember, Name: "Tom"}
)

type testRepos struct {
	store      *repository.Store
	programmes *repository.ProgrammeRepository
	attendance *repository.AttendanceRepository
	reminders  *repository.ReminderRepository
	feedback   *repository.FeedbackRepository
	kpis       *repository.KPIRepository
	resources  *repository.ResourceRepository
	catalog    *repository.CatalogRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	store := repository.NewStore(kv.NewMemoryStore(), nil)
	return testRepos{
		store:      store,
		programmes: repository.NewProgrammeRepository(store),
		attendance: repository.NewAttendanceRepository(store),
		reminders:  repository.NewReminderRepository(store),
		feedback:   repository.NewFeedbackRepository(store),
		kpis:       repository.NewKPIRepository(store),
		resources:  repository.NewResourceRepository(store),
		catalog:    repository.NewCatalogRepository(store),
	}
}

func sequentialIDs() models.IDGenerator {
	var mu sync.Mutex
	n := 0
	return func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type dispatcherStub struct {
	mu   sync.Mutex
	jobs []jobs.Job
	err  error
}

func (d *dispatcherStub) Enqueue(job jobs.Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

type reminderMetricsStub struct {
	counts map[models.ReminderStatus]int
}

func (m *reminderMetricsStub) RecordReminderTransition(status models.ReminderStatus, count int) {
	if m.counts == nil {
		m.counts = make(map[models.ReminderStatus]int)
	}
	m.counts[status] += count
}
