package service

import (
	"context"
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/JayR61/congregation-connect/internal/models"
	appErrors "github.com/JayR61/congregation-connect/pkg/errors"
	"github.com/JayR61/congregation-connect/pkg/export"
)

// DefaultEventDuration is applied when a programme has no end date.
const DefaultEventDuration = time.Hour

const (
	icsUIDDomain    = "congregation-connect"
	reportTimestamp = "2006-01-02 15:04"
)

var attendanceHeaders = []string{"Member", "Date", "Status", "Present", "Notes"}

// ExportService turns programmes into downloadable calendar, PDF and CSV documents.
type ExportService struct {
	programmes programmeFinder
	attendance attendanceLister
	reminders  reminderLister
	ics        *export.ICSExporter
	pdf        *export.PDFExporter
	csv        *export.CSVExporter
	sanitizer  *bluemonday.Policy
	logger     *zap.Logger
	now        func() time.Time
}

type reminderLister interface {
	ListByProgramme(ctx context.Context, programmeID string) []models.ProgrammeReminder
}

// NewExportService constructs an ExportService.
func NewExportService(programmes programmeFinder, attendance attendanceLister, reminders reminderLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &ExportService{
		programmes: programmes,
		attendance: attendance,
		reminders:  reminders,
		pdf:        export.NewPDFExporter(),
		csv:        export.NewCSVExporter(),
		sanitizer:  bluemonday.StrictPolicy(),
		logger:     logger,
		now:        time.Now,
	}
	svc.ics = export.NewICSExporter(func() time.Time { return svc.now() })
	return svc
}

// ExportToICS renders a single-event calendar for the programme and returns
// it as a text/calendar data URL. DTEND defaults to DTSTART plus one hour,
// which also replaces an end date earlier than the start.
func (s *ExportService) ExportToICS(programme models.Programme) (string, error) {
	return s.exportToICS(programme, nil)
}

// ProgrammeICS loads a programme and exports it, adding one alarm per fixed
// reminder schedule still pending.
func (s *ExportService) ProgrammeICS(ctx context.Context, programmeID string) (string, error) {
	programme, ok := s.programmes.FindByID(ctx, programmeID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	var alarms []time.Duration
	if s.reminders != nil {
		for _, reminder := range s.reminders.ListByProgramme(ctx, programmeID) {
			if reminder.Status != models.ReminderScheduled {
				continue
			}
			if offset, ok := reminder.Schedule.Offset(); ok {
				alarms = append(alarms, offset)
			}
		}
	}
	return s.exportToICS(*programme, alarms)
}

func (s *ExportService) exportToICS(programme models.Programme, alarms []time.Duration) (string, error) {
	start := programme.StartDate.UTC()
	end := start.Add(DefaultEventDuration)
	if programme.EndDate != nil {
		if programme.EndDate.Before(programme.StartDate) {
			s.logger.Warn("programme ends before it starts, exporting default duration",
				zap.String("programme_id", programme.ID),
				zap.Time("start_date", programme.StartDate),
				zap.Time("end_date", *programme.EndDate),
			)
		} else {
			end = programme.EndDate.UTC()
		}
	}
	payload, err := s.ics.Render("", export.CalendarEvent{
		UID:         programme.ID + "@" + icsUIDDomain,
		Start:       start,
		End:         end,
		Summary:     s.plainText(programme.Name),
		Description: s.plainText(programme.Description),
		Location:    s.plainText(programme.Location),
		Alarms:      alarms,
	})
	if err != nil {
		return "", validationError(err, "programme cannot be exported to a calendar")
	}
	return export.TextDataURL(export.MIMECalendar, payload), nil
}

// GenerateProgrammePDF renders a programme report as an application/pdf data
// URL. The layout is a generic summary: header facts, then one row per
// attendance record.
func (s *ExportService) GenerateProgrammePDF(programme models.Programme, members []models.Member, attendance []models.ProgrammeAttendance) (string, error) {
	names := make(map[string]string, len(members))
	for _, member := range members {
		names[member.ID] = member.Name
	}

	facts := [][2]string{
		{"Type", programme.Type},
		{"Status", string(programme.Status)},
		{"Starts", programme.StartDate.UTC().Format(reportTimestamp)},
	}
	if programme.EndDate != nil {
		facts = append(facts, [2]string{"Ends", programme.EndDate.UTC().Format(reportTimestamp)})
	}
	if programme.Location != "" {
		facts = append(facts, [2]string{"Location", s.plainText(programme.Location)})
	}
	facts = append(facts,
		[2]string{"Registered", fmt.Sprintf("%d", len(members))},
		[2]string{"Participants", fmt.Sprintf("%d", programme.CurrentAttendees)},
		[2]string{"Generated", s.now().UTC().Format(reportTimestamp)},
	)

	payload, err := s.pdf.Render(export.Report{
		Title: s.plainText(programme.Name),
		Facts: facts,
		Table: attendanceDataset(attendance, names),
	})
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render programme report")
	}
	return export.Base64DataURL(export.MIMEPDF, payload), nil
}

// ProgrammePDF loads a programme with its attendance and renders the report.
// Attendees without a profile are listed by id.
func (s *ExportService) ProgrammePDF(ctx context.Context, programmeID string) (string, error) {
	programme, ok := s.programmes.FindByID(ctx, programmeID)
	if !ok {
		return "", appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	members := make([]models.Member, 0, len(programme.Attendees))
	for _, id := range programme.Attendees {
		members = append(members, models.Member{ID: id, Name: id})
	}
	return s.GenerateProgrammePDF(*programme, members, s.attendance.ListByProgramme(ctx, programmeID))
}

// AttendanceCSV renders the attendance register of a programme as CSV.
func (s *ExportService) AttendanceCSV(ctx context.Context, programmeID string, opts export.CSVOptions) ([]byte, error) {
	programme, ok := s.programmes.FindByID(ctx, programmeID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "programme not found")
	}
	payload, err := s.csv.Render(attendanceDataset(s.attendance.ListByProgramme(ctx, programme.ID), nil), opts)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render attendance csv")
	}
	return payload, nil
}

// FileName builds a download name for a programme export.
func FileName(programme models.Programme, extension string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, programme.Name)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = programme.ID
	}
	return slug + "." + extension
}

func (s *ExportService) plainText(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(value)))
}

func attendanceDataset(attendance []models.ProgrammeAttendance, names map[string]string) export.Dataset {
	records := append([]models.ProgrammeAttendance(nil), attendance...)
	sort.SliceStable(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		member := record.MemberID
		if name, ok := names[record.MemberID]; ok && name != "" {
			member = name
		}
		present := "no"
		if record.IsPresent {
			present = "yes"
		}
		rows = append(rows, map[string]string{
			"Member":  member,
			"Date":    record.Date.UTC().Format(reportTimestamp),
			"Status":  string(record.Status),
			"Present": present,
			"Notes":   record.Notes,
		})
	}
	return export.Dataset{Headers: attendanceHeaders, Rows: rows}
}
