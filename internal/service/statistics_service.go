package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
)

// TrendMonths is the number of monthly buckets in the participants trend.
const TrendMonths = 6

const trendLabelLayout = "Jan 2006"

type attendanceLister interface {
	List(ctx context.Context) []models.ProgrammeAttendance
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeAttendance
}

type feedbackLister interface {
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeFeedback
}

type programmeFinder interface {
	List(ctx context.Context) []models.Programme
	FindByID(ctx context.Context, id string) (*models.Programme, bool)
}

// StatisticsService loads the current store snapshot and aggregates it.
type StatisticsService struct {
	programmes programmeFinder
	attendance attendanceLister
	feedback   feedbackLister
	logger     *zap.Logger
	now        func() time.Time
}

// NewStatisticsService constructs a StatisticsService.
func NewStatisticsService(programmes programmeFinder, attendance attendanceLister, feedback feedbackLister, logger *zap.Logger) *StatisticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StatisticsService{programmes: programmes, attendance: attendance, feedback: feedback, logger: logger, now: time.Now}
}

// Overview computes statistics over every programme and attendance record.
func (s *StatisticsService) Overview(ctx context.Context) models.ProgrammeStatistics {
	return CalculateProgrammeStatistics(s.programmes.List(ctx), s.attendance.List(ctx), s.now())
}

// ProgrammeAttendanceSummary breaks down check-ins for one programme.
func (s *StatisticsService) ProgrammeAttendanceSummary(ctx context.Context, programmeID string) (*models.AttendanceSummary, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	records := s.attendance.ListByProgramme(ctx, programmeID)
	summary := &models.AttendanceSummary{
		ProgrammeID: programmeID,
		Total:       len(records),
		ByStatus:    make(map[models.AttendanceStatus]int),
	}
	for _, record := range records {
		summary.ByStatus[record.Status]++
		if record.IsPresent {
			summary.Present++
		}
	}
	summary.AttendanceRate = percentage(summary.Present, summary.Total)
	return summary, nil
}

// FeedbackSummary averages ratings for one programme.
func (s *StatisticsService) FeedbackSummary(ctx context.Context, programmeID string) (*models.FeedbackSummary, error) {
	if _, ok := s.programmes.FindByID(ctx, programmeID); !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	items := s.feedback.ListByProgramme(ctx, programmeID)
	summary := &models.FeedbackSummary{
		ProgrammeID:  programmeID,
		Count:        len(items),
		Distribution: make(map[int]int),
	}
	total := 0
	for _, item := range items {
		summary.Distribution[item.Rating]++
		total += item.Rating
	}
	if summary.Count > 0 {
		summary.AverageRating = round2(float64(total) / float64(summary.Count))
	}
	return summary, nil
}

// CalculateProgrammeStatistics aggregates programmes and attendance relative
// to now. It never mutates its inputs.
func CalculateProgrammeStatistics(programmes []models.Programme, attendance []models.ProgrammeAttendance, now time.Time) models.ProgrammeStatistics {
	now = now.UTC()
	stats := models.ProgrammeStatistics{
		TotalProgrammes:    len(programmes),
		ProgrammesByType:   make(map[string]int),
		ProgrammesByStatus: make(map[models.ProgrammeStatus]int),
	}

	for _, programme := range programmes {
		if programme.EndDate == nil || !programme.EndDate.Before(now) {
			stats.ActiveProgrammes++
		} else {
			stats.CompletedProgrammes++
		}
		stats.ProgrammesByType[programme.Type]++
		stats.ProgrammesByStatus[programme.Status]++
		stats.TotalParticipants += programme.CurrentAttendees
	}

	present := 0
	for _, record := range attendance {
		if record.IsPresent {
			present++
		}
	}
	stats.AttendanceRate = percentage(present, len(attendance))
	stats.ParticipantsTrend = participantsTrend(attendance, now)
	return stats
}

// participantsTrend counts present records per calendar month for the
// trailing TrendMonths months, oldest first, current month last.
func participantsTrend(attendance []models.ProgrammeAttendance, now time.Time) []models.MonthlyCount {
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	starts := make([]time.Time, TrendMonths)
	trend := make([]models.MonthlyCount, TrendMonths)
	for i := 0; i < TrendMonths; i++ {
		start := currentMonth.AddDate(0, i-(TrendMonths-1), 0)
		starts[i] = start
		trend[i] = models.MonthlyCount{Month: start.Format(trendLabelLayout)}
	}
	windowEnd := currentMonth.AddDate(0, 1, 0)

	for _, record := range attendance {
		if !record.IsPresent {
			continue
		}
		date := record.Date.UTC()
		if date.Before(starts[0]) || !date.Before(windowEnd) {
			continue
		}
		for i := TrendMonths - 1; i >= 0; i-- {
			if !date.Before(starts[i]) {
				trend[i].Count++
				break
			}
		}
	}
	return trend
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(part) / float64(total) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
