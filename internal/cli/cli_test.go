package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/internal/app"
	"github.com/JayR61/congregation-connect/internal/models"
	"github.com/JayR61/congregation-connect/internal/repository"
	"github.com/JayR61/congregation-connect/internal/service"
	"github.com/JayR61/congregation-connect/pkg/config"
	"github.com/JayR61/congregation-connect/pkg/kv"
)

type recordingNotifier struct {
	mu        sync.Mutex
	delivered []string
}

func (n *recordingNotifier) Notify(_ context.Context, notification service.ReminderNotification) error {
	time.Sleep(5 * time.Millisecond)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.delivered = append(n.delivered, notification.Reminder.ID)
	return nil
}

func (n *recordingNotifier) ids() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.delivered...)
}

// fileLoader returns a loader whose apps share one on-disk store.
func fileLoader(t *testing.T, opts ...app.Option) (Loader, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Env:       "test",
		Store:     config.StoreConfig{Driver: config.StoreDriverFile, FileDir: dir},
		JWT:       config.JWTConfig{Secret: "cli-secret", Issuer: "congregation-connect", Expiration: time.Hour},
		Reminders: config.RemindersConfig{NotifyWorkers: 1},
	}
	return func() (*app.App, error) {
		backend, err := kv.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		return app.NewWithBackend(cfg, nil, backend, opts...), nil
	}, dir
}

func seed(t *testing.T, load Loader, programmes []models.Programme, reminders []models.ProgrammeReminder) {
	t.Helper()
	a, err := load()
	require.NoError(t, err)
	defer a.Close()
	ctx := context.Background()
	repository.NewProgrammeRepository(a.Store).Save(ctx, programmes)
	repository.NewReminderRepository(a.Store).Save(ctx, reminders)
}

func run(t *testing.T, load Loader, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(load)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	load, _ := fileLoader(t)
	seed(t, load, []models.Programme{
		{ID: "prog-1", Name: "Sunday Service", Type: "service", StartDate: time.Now().UTC(), CurrentAttendees: 40},
		{ID: "prog-2", Name: "Youth Night", Type: "event", StartDate: time.Now().UTC(), CurrentAttendees: 12},
	}, nil)

	out, err := run(t, load, "stats")
	require.NoError(t, err)

	var stats models.ProgrammeStatistics
	require.NoError(t, json.Unmarshal([]byte(out), &stats))
	assert.Equal(t, 2, stats.TotalProgrammes)
	assert.Equal(t, 52, stats.TotalParticipants)
	assert.Len(t, stats.ParticipantsTrend, 6)
}

func TestExportICSCommand(t *testing.T) {
	load, dir := fileLoader(t)
	seed(t, load, []models.Programme{{ID: "prog-1", Name: "Carol Night", StartDate: time.Date(2025, 12, 20, 18, 0, 0, 0, time.UTC)}}, nil)

	out, err := run(t, load, "export", "ics", "prog-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, out, "DTSTART:20251220T180000Z")
	assert.Contains(t, out, "DTEND:20251220T190000Z")

	target := filepath.Join(dir, "carol.ics")
	_, err = run(t, load, "export", "ics", "prog-1", "--out", target)
	require.NoError(t, err)
	written, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, string(written), "SUMMARY:Carol Night")

	_, err = run(t, load, "export", "ics", "prog-9")
	assert.Error(t, err)
}

func TestRemindersProcessCommand(t *testing.T) {
	notifier := &recordingNotifier{}
	load, _ := fileLoader(t, app.WithNotifier(notifier))
	seed(t, load,
		[]models.Programme{{ID: "prog-1", Name: "Bible Study", StartDate: time.Now().Add(30 * time.Minute).UTC()}},
		[]models.ProgrammeReminder{
			{ID: "rem-1", ProgrammeID: "prog-1", Schedule: models.ScheduleHourBefore, Status: models.ReminderScheduled},
			{ID: "rem-2", ProgrammeID: "prog-gone", Schedule: models.ScheduleDayBefore, Status: models.ReminderScheduled},
		})

	out, err := run(t, load, "reminders", "process")
	require.NoError(t, err)
	assert.Contains(t, out, "sent: 1, failed: 1")
	assert.Contains(t, out, "rem-1")
	assert.Equal(t, []string{"rem-1"}, notifier.ids(), "delivery finishes before the command returns")

	out, err = run(t, load, "reminders", "process")
	require.NoError(t, err)
	assert.Contains(t, out, "failed: 0")
	assert.Equal(t, []string{"rem-1"}, notifier.ids())
}

func TestTokenCommand(t *testing.T) {
	load, _ := fileLoader(t)

	out, err := run(t, load, "token", "--user", "u-7", "--role", "leader", "--name", "Grace")
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	a, err := load()
	require.NoError(t, err)
	defer a.Close()
	claims, err := a.Auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", claims.UserID)
	assert.Equal(t, models.RoleLeader, claims.Role)

	_, err = run(t, load, "token", "--user", "u-8", "--role", "pastor")
	assert.Error(t, err)
	_, err = run(t, load, "token")
	assert.Error(t, err)
}
