package export

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
}

func TestICSExporterRender(t *testing.T) {
	start := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	exporter := NewICSExporter(fixedNow)

	payload, err := exporter.Render("Sunday Service", CalendarEvent{
		UID:         "prog-1@congregation-connect",
		Start:       start,
		End:         start.Add(90 * time.Minute),
		Summary:     "Sunday Service",
		Description: "Worship, word; fellowship",
		Location:    "Main Hall",
		Alarms:      []time.Duration{24 * time.Hour},
	})
	require.NoError(t, err)
	body := string(payload)

	for _, field := range []string{
		"BEGIN:VCALENDAR\r\n",
		"PRODID:" + ICSProductID,
		"UID:prog-1@congregation-connect",
		"DTSTAMP:20250301T093000Z",
		"DTSTART:20250309T100000Z",
		"DTEND:20250309T113000Z",
		`DESCRIPTION:Worship\, word\; fellowship`,
		"LOCATION:Main Hall",
		"TRIGGER:-P1DT0H0M",
		"END:VCALENDAR\r\n",
	} {
		assert.Contains(t, body, field)
	}
	assert.Equal(t, 1, strings.Count(body, "BEGIN:VALARM"))
}

func TestICSExporterRejectsInvertedRange(t *testing.T) {
	start := fixedNow()
	_, err := NewICSExporter(fixedNow).Render("", CalendarEvent{UID: "x", Start: start, End: start.Add(-time.Minute)})
	require.Error(t, err)
}

func TestEscapeTextNewlines(t *testing.T) {
	assert.Equal(t, `line one\nline two`, escapeText("line one\r\nline two"))
	assert.Equal(t, `a\\b`, escapeText(`a\b`))
}

func TestTriggerDuration(t *testing.T) {
	assert.Equal(t, "-P7DT0H0M", triggerDuration(7*24*time.Hour))
	assert.Equal(t, "-P0DT1H0M", triggerDuration(time.Hour))
	assert.Equal(t, "P0DT0H30M", triggerDuration(-30*time.Minute))
}

func TestDataURLRoundTrip(t *testing.T) {
	text := TextDataURL(MIMECalendar, []byte("BEGIN:VCALENDAR\r\nSUMMARY:Choir + Band practice\r\n"))
	assert.True(t, strings.HasPrefix(text, "data:text/calendar;charset=utf8,"))
	assert.NotContains(t, text, "+")

	mime, decoded, ok := DecodeDataURL(text)
	require.True(t, ok)
	assert.Equal(t, MIMECalendar, mime)
	assert.Equal(t, "BEGIN:VCALENDAR\r\nSUMMARY:Choir + Band practice\r\n", string(decoded))

	binary := Base64DataURL(MIMEPDF, []byte{0x25, 0x50, 0x44, 0x46})
	mime, decoded, ok = DecodeDataURL(binary)
	require.True(t, ok)
	assert.Equal(t, MIMEPDF, mime)
	assert.Equal(t, "%PDF", string(decoded))

	_, _, ok = DecodeDataURL("https://example.com")
	assert.False(t, ok)
}

func TestCSVExporterRender(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Member", "Status"},
		Rows: []map[string]string{
			{"Member": "m-1", "Status": "present"},
			{"Member": "m-2, jr", "Status": "late"},
		},
	}, CSVOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Member,Status\nm-1,present\n\"m-2, jr\",late\n", string(payload))

	_, err = NewCSVExporter().Render(Dataset{}, CSVOptions{})
	require.Error(t, err)
}

func TestCSVExporterSpreadsheetOutput(t *testing.T) {
	payload, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"Member", "Notes"},
		Rows:    []map[string]string{{"Member": "Adéọlá", "Notes": "=HYPERLINK(\"http://x\")"}},
	}, CSVOptions{Spreadsheet: true})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	body := string(bytes.TrimPrefix(payload, []byte{0xEF, 0xBB, 0xBF}))
	assert.Equal(t, "Member,Notes\r\nAdéọlá,\"'=HYPERLINK(\"\"http://x\"\")\"\r\n", body)
}

func TestNeutralizeFormula(t *testing.T) {
	assert.Equal(t, "'+27 555", neutralizeFormula("+27 555"))
	assert.Equal(t, "'@sum", neutralizeFormula("@sum"))
	assert.Equal(t, "2025-05-01 08:00", neutralizeFormula("2025-05-01 08:00"))
	assert.Equal(t, "", neutralizeFormula(""))
}

func TestPDFExporterRender(t *testing.T) {
	payload, err := NewPDFExporter().Render(Report{
		Title: "Youth Camp",
		Facts: [][2]string{{"Start", "2025-03-09 10:00"}},
		Table: Dataset{Headers: []string{"Member", "Status"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF-")))

	_, err = NewPDFExporter().Render(Report{})
	require.Error(t, err)
}

func TestFoldLine(t *testing.T) {
	assert.Equal(t, "SUMMARY:short", foldLine("SUMMARY:short"))

	long := "DESCRIPTION:" + strings.Repeat("é hymn ", 30)
	folded := foldLine(long)
	segments := strings.Split(folded, "\r\n")
	require.Greater(t, len(segments), 1)
	for i, segment := range segments {
		assert.LessOrEqual(t, len(segment), 75)
		assert.True(t, utf8.ValidString(segment), "segment %d splits a rune", i)
		if i > 0 {
			assert.True(t, strings.HasPrefix(segment, " "))
		}
	}
	assert.Equal(t, long, strings.ReplaceAll(folded, "\r\n ", ""))
}

func TestICSExporterFoldsLongDescriptions(t *testing.T) {
	start := fixedNow()
	description := strings.Repeat("Bring your Bible and a friend. ", 10)
	payload, err := NewICSExporter(fixedNow).Render("", CalendarEvent{
		UID:         "prog-9@congregation-connect",
		Start:       start,
		End:         start.Add(time.Hour),
		Description: description,
	})
	require.NoError(t, err)

	for _, physical := range strings.Split(strings.TrimSuffix(string(payload), "\r\n"), "\r\n") {
		assert.LessOrEqual(t, len(physical), 75)
	}
	unfolded := strings.ReplaceAll(string(payload), "\r\n ", "")
	assert.Contains(t, unfolded, "DESCRIPTION:"+description)
}
