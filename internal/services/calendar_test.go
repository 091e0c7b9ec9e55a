package services

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
)

func TestUTCCompact(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "iso instant",
			in:   time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
			want: "20240305T130000Z",
		},
		{
			name: "offset instant is converted to utc",
			in:   time.Date(2024, 3, 5, 15, 0, 0, 0, time.FixedZone("EET", 2*60*60)),
			want: "20240305T130000Z",
		},
		{
			name: "single-digit components are padded",
			in:   time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			want: "20240102T030405Z",
		},
		{
			name: "zero time renders empty",
			in:   time.Time{},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UTCCompact(tt.in))
		})
	}
}

func TestLocalCompact(t *testing.T) {
	eet := time.FixedZone("EET", 2*60*60)

	// Same instant as 13:00Z, rendered as the observer's wall clock with no
	// zone designator.
	in := time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)
	assert.Equal(t, "20240305T150000", LocalCompact(in, eet))
	assert.Equal(t, "20240305T130000", LocalCompact(in, time.UTC))
	assert.Equal(t, "", LocalCompact(time.Time{}, eet))
}

func testCalendarService(loc *time.Location) *calendarService {
	return &calendarService{
		loc:    loc,
		now:    func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) },
		newUID: func() string { return "fixed-uid@courtbook" },
	}
}

func TestGoogleCalendarURL(t *testing.T) {
	svc := testCalendarService(time.UTC)
	desc := &domain.LessonDescriptor{
		StudentName:  "Ada Smith",
		Start:        time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
		LocationName: "Riverside Club",
		LocationAddress: "12 River Rd",
	}

	raw := svc.GoogleCalendarURL(desc, "Private lesson with Ada Smith", "Bring water\nCourt 3")
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", u.Host)
	assert.Equal(t, "/calendar/render", u.Path)

	q := u.Query()
	assert.Equal(t, "TEMPLATE", q.Get("action"))
	assert.Equal(t, "Private lesson with Ada Smith", q.Get("text"))
	assert.Equal(t, "20240305T130000Z/20240305T140000Z", q.Get("dates"))
	assert.Equal(t, "Bring water\nCourt 3", q.Get("details"))
	assert.Equal(t, "Riverside Club, 12 River Rd", q.Get("location"))

	t.Run("dates omitted without a usable start", func(t *testing.T) {
		raw := svc.GoogleCalendarURL(&domain.LessonDescriptor{LocationName: "TBD"}, "t", "d")
		u, err := url.Parse(raw)
		require.NoError(t, err)
		assert.False(t, u.Query().Has("dates"))
	})
}

func TestICSDocument(t *testing.T) {
	svc := testCalendarService(time.FixedZone("EET", 2*60*60))
	desc := &domain.LessonDescriptor{
		StudentName:  "Ada Smith",
		Start:        time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
		End:          time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
		LocationName: "Riverside Club",
	}

	body, err := svc.ICSDocument(desc, "Private lesson with Ada Smith", "Bring water\nCourt 3")
	require.NoError(t, err)
	text := string(body)

	// CRLF terminators on every content line.
	for _, line := range strings.Split(strings.TrimSuffix(text, "\r\n"), "\r\n") {
		assert.False(t, strings.HasSuffix(line, "\r"), "bare CR in line %q", line)
		assert.NotContains(t, line, "\n", "bare LF in line %q", line)
	}
	assert.True(t, strings.HasSuffix(text, "\r\n"))

	assert.Contains(t, text, "BEGIN:VCALENDAR\r\n")
	assert.Contains(t, text, "VERSION:2.0\r\n")
	assert.Contains(t, text, "PRODID:-//courtbook//EN\r\n")
	assert.Contains(t, text, "UID:fixed-uid@courtbook\r\n")
	assert.Contains(t, text, "DTSTAMP:20240301T100000Z\r\n")

	// Floating local wall-clock times, no zone designator.
	assert.Contains(t, text, "DTSTART:20240305T150000\r\n")
	assert.Contains(t, text, "DTEND:20240305T160000\r\n")

	// The embedded newline must be the literal two-character sequence.
	assert.Contains(t, text, `DESCRIPTION:Bring water\nCourt 3`)
	assert.Contains(t, text, "END:VEVENT\r\n")
}

func TestICSDocument_UniqueUIDs(t *testing.T) {
	svc := NewCalendarService(time.UTC)
	desc := &domain.LessonDescriptor{
		Start: time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC),
	}

	uid := func(body []byte) string {
		for _, line := range strings.Split(string(body), "\r\n") {
			if strings.HasPrefix(line, "UID:") {
				return line
			}
		}
		return ""
	}

	first, err := svc.ICSDocument(desc, "t", "")
	require.NoError(t, err)
	second, err := svc.ICSDocument(desc, "t", "")
	require.NoError(t, err)

	require.NotEmpty(t, uid(first))
	assert.NotEqual(t, uid(first), uid(second))
	assert.Contains(t, uid(first), "@courtbook")
}

func TestCancellationDeadline(t *testing.T) {
	svc := NewCalendarService(time.UTC)

	start := time.Date(2024, 3, 5, 13, 0, 0, 0, time.UTC)
	got := svc.CancellationDeadline(&domain.LessonDescriptor{Start: start})
	assert.Equal(t, start.Add(-24*time.Hour), got)

	assert.True(t, svc.CancellationDeadline(&domain.LessonDescriptor{}).IsZero())
	assert.True(t, svc.CancellationDeadline(nil).IsZero())
}
