package export

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	ICSProductID = "-//Congregation Connect//Programmes//EN"
	icsTimestamp = "20060102T150405Z"
	// icsLineLimit is the content line length in octets, CRLF excluded.
	icsLineLimit = 75
)

// CalendarEvent is a single VEVENT.
type CalendarEvent struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Location    string
	// Alarms are display alarms relative to Start; positive values fire before it.
	Alarms []time.Duration
}

// ICSExporter renders events into iCalendar text.
type ICSExporter struct {
	now func() time.Time
}

// NewICSExporter builds an exporter stamping events with now.
func NewICSExporter(now func() time.Time) *ICSExporter {
	if now == nil {
		now = time.Now
	}
	return &ICSExporter{now: now}
}

// Render produces a VCALENDAR document; lines end with CRLF and are folded
// at 75 octets.
func (e *ICSExporter) Render(calendarName string, events ...CalendarEvent) ([]byte, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("ics requires at least one event")
	}
	stamp := e.now().UTC().Format(icsTimestamp)

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		b.WriteString(foldLine(fmt.Sprintf(format, args...)))
		b.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ICSProductID)
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")
	if calendarName != "" {
		line("X-WR-CALNAME:%s", escapeText(calendarName))
	}
	for _, event := range events {
		if event.UID == "" {
			return nil, fmt.Errorf("ics event requires a uid")
		}
		if event.End.Before(event.Start) {
			return nil, fmt.Errorf("ics event %s ends before it starts", event.UID)
		}
		line("BEGIN:VEVENT")
		line("UID:%s", event.UID)
		line("DTSTAMP:%s", stamp)
		line("DTSTART:%s", event.Start.UTC().Format(icsTimestamp))
		line("DTEND:%s", event.End.UTC().Format(icsTimestamp))
		line("SUMMARY:%s", escapeText(event.Summary))
		line("DESCRIPTION:%s", escapeText(event.Description))
		line("LOCATION:%s", escapeText(event.Location))
		for _, before := range event.Alarms {
			line("BEGIN:VALARM")
			line("ACTION:DISPLAY")
			line("DESCRIPTION:%s", escapeText("Reminder: "+event.Summary))
			line("TRIGGER:%s", triggerDuration(before))
			line("END:VALARM")
		}
		line("END:VEVENT")
	}
	line("END:VCALENDAR")
	return []byte(b.String()), nil
}

// foldLine splits a content line into 75-octet segments joined by CRLF and a
// single space, never cutting a UTF-8 sequence.
func foldLine(content string) string {
	if len(content) <= icsLineLimit {
		return content
	}
	var b strings.Builder
	width := icsLineLimit
	for len(content) > width {
		cut := width
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		b.WriteString(content[:cut])
		b.WriteString("\r\n ")
		content = content[cut:]
		width = icsLineLimit - 1
	}
	b.WriteString(content)
	return b.String()
}

// escapeText applies RFC 5545 TEXT escaping.
func escapeText(raw string) string {
	replacer := strings.NewReplacer(
		`\`, `\\`,
		";", `\;`,
		",", `\,`,
		"\r\n", `\n`,
		"\n", `\n`,
		"\r", `\n`,
	)
	return replacer.Replace(raw)
}

// triggerDuration formats an offset before the event start, e.g. -P1DT0H0M.
func triggerDuration(before time.Duration) string {
	sign := "-"
	if before < 0 {
		sign = ""
		before = -before
	}
	totalMinutes := int(before.Minutes())
	days := totalMinutes / (24 * 60)
	remaining := totalMinutes % (24 * 60)
	return fmt.Sprintf("%sP%dDT%dH%dM", sign, days, remaining/60, remaining%60)
}
