package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

var statsNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func TestCalculateStatisticsAttendanceRate(t *testing.T) {
	empty := CalculateProgrammeStatistics(nil, nil, statsNow)
	assert.Equal(t, float64(0), empty.AttendanceRate)

	attendance := []models.ProgrammeAttendance{
		{IsPresent: true, Date: statsNow},
		{IsPresent: false, Date: statsNow},
		{IsPresent: true, Date: statsNow},
	}
	stats := CalculateProgrammeStatistics(nil, attendance, statsNow)
	assert.Equal(t, 66.67, stats.AttendanceRate)
}

func TestCalculateStatisticsTrendHasSixAscendingMonths(t *testing.T) {
	stats := CalculateProgrammeStatistics(nil, nil, statsNow)

	require.Len(t, stats.ParticipantsTrend, TrendMonths)
	labels := make([]string, 0, TrendMonths)
	for _, bucket := range stats.ParticipantsTrend {
		labels = append(labels, bucket.Month)
		assert.Zero(t, bucket.Count)
	}
	assert.Equal(t, []string{"Oct 2024", "Nov 2024", "Dec 2024", "Jan 2025", "Feb 2025", "Mar 2025"}, labels)
}

func TestCalculateStatisticsTrendCounts(t *testing.T) {
	attendance := []models.ProgrammeAttendance{
		{IsPresent: true, Date: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{IsPresent: true, Date: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)},
		{IsPresent: false, Date: time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)},
		{IsPresent: true, Date: time.Date(2025, 2, 28, 23, 59, 0, 0, time.UTC)},
		{IsPresent: true, Date: time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)},
		{IsPresent: true, Date: time.Date(2024, 9, 30, 23, 59, 0, 0, time.UTC)},
		{IsPresent: true, Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	trend := CalculateProgrammeStatistics(nil, attendance, statsNow).ParticipantsTrend
	counts := map[string]int{}
	for _, bucket := range trend {
		counts[bucket.Month] = bucket.Count
	}
	assert.Equal(t, 2, counts["Mar 2025"])
	assert.Equal(t, 1, counts["Feb 2025"])
	assert.Equal(t, 1, counts["Oct 2024"])
	assert.Equal(t, 0, counts["Jan 2025"])
}

func TestCalculateStatisticsTrendAcrossYearEnd(t *testing.T) {
	trend := CalculateProgrammeStatistics(nil, nil, time.Date(2025, 1, 31, 23, 0, 0, 0, time.UTC)).ParticipantsTrend
	assert.Equal(t, "Aug 2024", trend[0].Month)
	assert.Equal(t, "Jan 2025", trend[5].Month)
}

func TestCalculateStatisticsProgrammeCounts(t *testing.T) {
	past := statsNow.Add(-24 * time.Hour)
	future := statsNow.Add(24 * time.Hour)
	programmes := []models.Programme{
		{ID: "p1", Type: "service", Status: models.ProgrammeStatusActive, CurrentAttendees: 120},
		{ID: "p2", Type: "service", Status: models.ProgrammeStatusCompleted, EndDate: &past, CurrentAttendees: 80},
		{ID: "p3", Type: "outreach", Status: models.ProgrammeStatusUpcoming, EndDate: &future, CurrentAttendees: 15},
		{ID: "p4", Type: "class", Status: models.ProgrammeStatusOngoing, EndDate: &statsNow},
	}

	stats := CalculateProgrammeStatistics(programmes, nil, statsNow)
	assert.Equal(t, 4, stats.TotalProgrammes)
	assert.Equal(t, 3, stats.ActiveProgrammes)
	assert.Equal(t, 1, stats.CompletedProgrammes)
	assert.Equal(t, map[string]int{"service": 2, "outreach": 1, "class": 1}, stats.ProgrammesByType)
	assert.Equal(t, 1, stats.ProgrammesByStatus[models.ProgrammeStatusCompleted])
	assert.Equal(t, 215, stats.TotalParticipants)
}

func TestCalculateStatisticsDoesNotMutateInputs(t *testing.T) {
	attendance := []models.ProgrammeAttendance{{ID: "att-1", IsPresent: true, Date: statsNow.In(time.FixedZone("WAT", 3600))}}
	before := attendance[0]
	_ = CalculateProgrammeStatistics(nil, attendance, statsNow)
	assert.Equal(t, before, attendance[0])
}

func TestStatisticsServiceSummaries(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	svc := NewStatisticsService(repos.programmes, repos.attendance, repos.feedback, nil)
	svc.now = fixedClock(statsNow)

	repos.programmes.Save(ctx, []models.Programme{{ID: "prog-1", Type: "service", CurrentAttendees: 2}})
	repos.attendance.Save(ctx, []models.ProgrammeAttendance{
		{ProgrammeID: "prog-1", Status: models.AttendancePresent, IsPresent: true, Date: statsNow},
		{ProgrammeID: "prog-1", Status: models.AttendanceLate, IsPresent: true, Date: statsNow},
		{ProgrammeID: "prog-1", Status: models.AttendanceAbsent, Date: statsNow},
		{ProgrammeID: "prog-2", Status: models.AttendancePresent, IsPresent: true, Date: statsNow},
	})
	repos.feedback.Save(ctx, []models.ProgrammeFeedback{
		{ProgrammeID: "prog-1", Rating: 5},
		{ProgrammeID: "prog-1", Rating: 4},
		{ProgrammeID: "prog-1", Rating: 4},
	})

	overview := svc.Overview(ctx)
	assert.Equal(t, 75.0, overview.AttendanceRate)
	assert.Equal(t, 3, overview.ParticipantsTrend[5].Count)

	summary, err := svc.ProgrammeAttendanceSummary(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.Equal(t, 2, summary.Present)
	assert.Equal(t, 66.67, summary.AttendanceRate)
	assert.Equal(t, 1, summary.ByStatus[models.AttendanceLate])

	feedback, err := svc.FeedbackSummary(ctx, "prog-1")
	require.NoError(t, err)
	assert.Equal(t, 3, feedback.Count)
	assert.Equal(t, 4.33, feedback.AverageRating)
	assert.Equal(t, 2, feedback.Distribution[4])

	_, err = svc.FeedbackSummary(ctx, "prog-9")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
