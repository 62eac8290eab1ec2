package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

var reminderNow = time.Date(2025, 4, 10, 18, 0, 0, 0, time.UTC)

func newReminderService(t *testing.T) (*ReminderService, testRepos, *dispatcherStub) {
	t.Helper()
	repos := newTestRepos(t)
	dispatcher := &dispatcherStub{}
	svc := NewReminderService(ReminderServiceParams{
		Reminders:  repos.reminders,
		Programmes: repos.programmes,
		Dispatcher: dispatcher,
		IDs:        sequentialIDs(),
	})
	svc.now = fixedClock(reminderNow)
	return svc, repos, dispatcher
}

func TestIsReminderDue(t *testing.T) {
	programme := models.Programme{ID: "prog-1", StartDate: reminderNow.Add(2 * time.Hour)}
	past := reminderNow.Add(-time.Minute)
	future := reminderNow.Add(time.Minute)

	cases := []struct {
		name     string
		reminder models.ProgrammeReminder
		start    time.Time
		due      bool
	}{
		{"day before inside window", models.ProgrammeReminder{Schedule: models.ScheduleDayBefore}, reminderNow.Add(23 * time.Hour), true},
		{"day before exactly on boundary", models.ProgrammeReminder{Schedule: models.ScheduleDayBefore}, reminderNow.Add(24 * time.Hour), true},
		{"day before too early", models.ProgrammeReminder{Schedule: models.ScheduleDayBefore}, reminderNow.Add(25 * time.Hour), false},
		{"hour before inside window", models.ProgrammeReminder{Schedule: models.ScheduleHourBefore}, reminderNow.Add(30 * time.Minute), true},
		{"hour before too early", models.ProgrammeReminder{Schedule: models.ScheduleHourBefore}, reminderNow.Add(2 * time.Hour), false},
		{"week before inside window", models.ProgrammeReminder{Schedule: models.ScheduleWeekBefore}, reminderNow.Add(6 * 24 * time.Hour), true},
		{"week before too early", models.ProgrammeReminder{Schedule: models.ScheduleWeekBefore}, reminderNow.Add(8 * 24 * time.Hour), false},
		{"programme already started", models.ProgrammeReminder{Schedule: models.ScheduleHourBefore}, reminderNow.Add(-time.Hour), true},
		{"custom in the past", models.ProgrammeReminder{Schedule: models.ScheduleCustom, CustomTime: &past}, programme.StartDate, true},
		{"custom now", models.ProgrammeReminder{Schedule: models.ScheduleCustom, CustomTime: &reminderNow}, programme.StartDate, true},
		{"custom in the future", models.ProgrammeReminder{Schedule: models.ScheduleCustom, CustomTime: &future}, programme.StartDate, false},
		{"custom without time", models.ProgrammeReminder{Schedule: models.ScheduleCustom}, programme.StartDate, false},
		{"unknown schedule", models.ProgrammeReminder{Schedule: "fortnight"}, reminderNow, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := programme
			p.StartDate = tc.start
			assert.Equal(t, tc.due, IsReminderDue(tc.reminder, p, reminderNow))
		})
	}
}

func TestProcessSendsDayBeforeReminder(t *testing.T) {
	ctx := context.Background()
	svc, repos, dispatcher := newReminderService(t)
	metrics := &reminderMetricsStub{}
	svc.metrics = metrics

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", Name: "Prayer Night", StartDate: reminderNow.Add(20 * time.Hour)}})
	repos.reminders.Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-1", Schedule: models.ScheduleDayBefore, Status: models.ReminderScheduled}})

	result, err := svc.Process(ctx)
	require.NoError(t, err)

	require.Len(t, result.Reminders, 1)
	assert.Equal(t, models.ReminderSent, result.Reminders[0].Status)
	require.NotNil(t, result.Reminders[0].SentAt)
	assert.True(t, result.Reminders[0].SentAt.Equal(reminderNow))
	require.Len(t, result.Sent, 1)
	assert.Equal(t, "rem-1", result.Sent[0].ID)
	assert.Empty(t, result.Failed)

	stored := repos.reminders.List(ctx)
	assert.Equal(t, models.ReminderSent, stored[0].Status)

	require.Len(t, dispatcher.jobs, 1)
	assert.Equal(t, JobTypeReminderNotification, dispatcher.jobs[0].Type)
	notification := dispatcher.jobs[0].Payload.(ReminderNotification)
	assert.Equal(t, "Prayer Night", notification.Programme.Name)
	assert.Equal(t, 1, metrics.counts[models.ReminderSent])
}

func TestProcessLeavesReminderScheduledUntilDue(t *testing.T) {
	ctx := context.Background()
	svc, repos, dispatcher := newReminderService(t)

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", StartDate: reminderNow.Add(48 * time.Hour)}})
	repos.reminders.Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-1", Schedule: models.ScheduleDayBefore, Status: models.ReminderScheduled}})

	result, err := svc.Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderScheduled, result.Reminders[0].Status)
	assert.Nil(t, result.Reminders[0].SentAt)
	assert.Empty(t, result.Sent)
	assert.Empty(t, dispatcher.jobs)
}

func TestProcessFailsReminderForMissingProgramme(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newReminderService(t)
	metrics := &reminderMetricsStub{}
	svc.metrics = metrics

	repos.reminders.Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-gone", Schedule: models.ScheduleHourBefore, Status: models.ReminderScheduled}})

	first, err := svc.Process(ctx)
	require.NoError(t, err)
	require.Len(t, first.Failed, 1)
	assert.Equal(t, models.ReminderFailed, first.Reminders[0].Status)
	assert.Equal(t, "programme not found", first.Reminders[0].FailureReason)
	assert.Empty(t, first.Sent)

	// The programme reappearing does not revive a failed reminder.
	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-gone", StartDate: reminderNow}})
	second, err := svc.Process(ctx)
	require.NoError(t, err)
	assert.Empty(t, second.Failed)
	assert.Empty(t, second.Sent)
	assert.Equal(t, models.ReminderFailed, second.Reminders[0].Status)
	assert.Nil(t, second.Reminders[0].SentAt)
	assert.Equal(t, 1, metrics.counts[models.ReminderFailed])
}

func TestProcessIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, repos, dispatcher := newReminderService(t)

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", StartDate: reminderNow.Add(30 * time.Minute)}})
	repos.reminders.Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-1", Schedule: models.ScheduleHourBefore, Status: models.ReminderScheduled}})

	_, err := svc.Process(ctx)
	require.NoError(t, err)

	svc.now = fixedClock(reminderNow.Add(10 * time.Second))
	second, err := svc.Process(ctx)
	require.NoError(t, err)

	assert.Equal(t, models.ReminderSent, second.Reminders[0].Status)
	assert.True(t, second.Reminders[0].SentAt.Equal(reminderNow), "sentAt must not move")
	assert.Len(t, second.Sent, 1, "still inside the recently sent window")
	assert.Len(t, dispatcher.jobs, 1, "notification is dispatched once")

	svc.now = fixedClock(reminderNow.Add(2 * time.Minute))
	third, err := svc.Process(ctx)
	require.NoError(t, err)
	assert.Empty(t, third.Sent)
	assert.True(t, third.Reminders[0].SentAt.Equal(reminderNow))
}

func TestProcessCustomReminders(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newReminderService(t)
	past := reminderNow.Add(-5 * time.Minute)
	future := reminderNow.Add(5 * time.Minute)

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", StartDate: reminderNow.Add(30 * 24 * time.Hour)}})
	repos.reminders.Save(ctx, []models.ProgrammeReminder{
		{ID: "rem-past", ProgrammeID: "prog-1", Schedule: models.ScheduleCustom, CustomTime: &past, Status: models.ReminderScheduled},
		{ID: "rem-future", ProgrammeID: "prog-1", Schedule: models.ScheduleCustom, CustomTime: &future, Status: models.ReminderScheduled},
	})

	result, err := svc.Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSent, result.Reminders[0].Status)
	assert.Equal(t, models.ReminderScheduled, result.Reminders[1].Status)
	require.Len(t, result.Sent, 1)
	assert.Equal(t, "rem-past", result.Sent[0].ID)
}

func TestProcessDispatchFailureKeepsSentStatus(t *testing.T) {
	ctx := context.Background()
	svc, repos, dispatcher := newReminderService(t)
	dispatcher.err = errors.New("queue stopped")

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", StartDate: reminderNow}})
	repos.reminders.Save(ctx, []models.ProgrammeReminder{{ID: "rem-1", ProgrammeID: "prog-1", Schedule: models.ScheduleHourBefore, Status: models.ReminderScheduled}})

	result, err := svc.Process(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.ReminderSent, result.Reminders[0].Status)
}

func TestRecentlySentWindow(t *testing.T) {
	inside := reminderNow.Add(-59 * time.Second)
	edge := reminderNow.Add(-60 * time.Second)
	outside := reminderNow.Add(-61 * time.Second)
	reminders := []models.ProgrammeReminder{
		{ID: "inside", Status: models.ReminderSent, SentAt: &inside},
		{ID: "edge", Status: models.ReminderSent, SentAt: &edge},
		{ID: "outside", Status: models.ReminderSent, SentAt: &outside},
		{ID: "scheduled", Status: models.ReminderScheduled},
	}

	sent := RecentlySent(reminders, reminderNow)
	ids := make([]string, 0, len(sent))
	for _, r := range sent {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"inside", "edge"}, ids)
}

func TestScheduleReminder(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newReminderService(t)

	reminder, err := svc.Schedule(ctx, leaderActor, models.ScheduleReminderRequest{
		ProgrammeID: "prog-1",
		Schedule:    models.ScheduleWeekBefore,
		Message:     "Bring a friend",
	})
	require.NoError(t, err)
	assert.Equal(t, "rem-1", reminder.ID)
	assert.Equal(t, models.ReminderScheduled, reminder.Status)
	assert.Equal(t, leaderActor.UserID, reminder.CreatedBy)
	assert.True(t, reminder.CreatedAt.Equal(reminderNow))

	stored := repos.reminders.ListByProgramme(ctx, "prog-1")
	require.Len(t, stored, 1)
	assert.Equal(t, *reminder, stored[0])
}

func TestScheduleReminderValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newReminderService(t)
	custom := reminderNow.Add(time.Hour)

	cases := []struct {
		name   string
		actor  models.Actor
		req    models.ScheduleReminderRequest
		target *appErrors.Error
	}{
		{"missing programme id", adminActor, models.ScheduleReminderRequest{Schedule: models.ScheduleDayBefore}, appErrors.ErrValidation},
		{"unknown schedule", adminActor, models.ScheduleReminderRequest{ProgrammeID: "p", Schedule: "monthly"}, appErrors.ErrValidation},
		{"custom without time", adminActor, models.ScheduleReminderRequest{ProgrammeID: "p", Schedule: models.ScheduleCustom}, appErrors.ErrValidation},
		{"time without custom", adminActor, models.ScheduleReminderRequest{ProgrammeID: "p", Schedule: models.ScheduleDayBefore, CustomTime: &custom}, appErrors.ErrValidation},
		{"member cannot schedule", memberActor, models.ScheduleReminderRequest{ProgrammeID: "p", Schedule: models.ScheduleDayBefore}, appErrors.ErrForbidden},
		{"anonymous", models.Actor{}, models.ScheduleReminderRequest{ProgrammeID: "p", Schedule: models.ScheduleDayBefore}, appErrors.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Schedule(ctx, tc.actor, tc.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.target)
		})
	}
}

func TestCancelReminder(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := newReminderService(t)
	sentAt := reminderNow
	repos.reminders.Save(ctx, []models.ProgrammeReminder{
		{ID: "rem-1", ProgrammeID: "prog-1", Status: models.ReminderScheduled},
		{ID: "rem-2", ProgrammeID: "prog-1", Status: models.ReminderSent, SentAt: &sentAt},
	})

	require.NoError(t, svc.Cancel(ctx, adminActor, "rem-1"))
	assert.ErrorIs(t, svc.Cancel(ctx, adminActor, "rem-2"), appErrors.ErrConflict)
	assert.ErrorIs(t, svc.Cancel(ctx, adminActor, "rem-9"), appErrors.ErrNotFound)

	remaining := svc.List(ctx)
	require.Len(t, remaining, 1)
	assert.Equal(t, "rem-2", remaining[0].ID)
}
