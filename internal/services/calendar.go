package services

import (
	"bytes"
	"fmt"
	"net/url"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"courtbook/internal/domain"
)

const (
	googleCalendarBase = "https://calendar.google.com/calendar/render"
	icsProductID       = "-//courtbook//EN"
	icsUIDSuffix       = "@courtbook"
)

// compactLayout is the RFC 5545 basic date-time form.
const compactLayout = "20060102T150405"

// UTCCompact renders an instant as "YYYYMMDDTHHMMSSZ" on a UTC basis, the
// form web calendar links expect. The zero time renders as "", which callers
// treat as "omit this field".
func UTCCompact(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(compactLayout) + "Z"
}

// LocalCompact renders an instant as "YYYYMMDDTHHMMSS" using the wall clock
// of the given location and no zone designator. RFC 5545 calls this floating
// time; calendar apps show it unchanged wherever the file is opened.
func LocalCompact(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(compactLayout)
}

type calendarService struct {
	loc    *time.Location
	now    func() time.Time
	newUID func() string
}

// NewCalendarService creates a CalendarService that renders floating times
// in the given location.
func NewCalendarService(loc *time.Location) domain.CalendarService {
	if loc == nil {
		loc = time.Local
	}
	return &calendarService{
		loc: loc,
		now: time.Now,
		newUID: func() string {
			return uuid.New().String() + icsUIDSuffix
		},
	}
}

func (s *calendarService) GoogleCalendarURL(desc *domain.LessonDescriptor, title, details string) string {
	if desc == nil {
		return ""
	}
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", title)
	start := UTCCompact(desc.Start)
	end := UTCCompact(desc.End)
	if start != "" && end != "" {
		q.Set("dates", start+"/"+end)
	}
	q.Set("details", details)
	q.Set("location", desc.Location())
	return googleCalendarBase + "?" + q.Encode()
}

func (s *calendarService) ICSDocument(desc *domain.LessonDescriptor, title, details string) ([]byte, error) {
	if desc == nil {
		return nil, domain.ErrInvalidInput
	}
	event := ical.NewComponent(ical.CompEvent)
	event.Props.SetText(ical.PropUID, s.newUID())
	setCompactProp(event, ical.PropDateTimeStamp, UTCCompact(s.now()))
	setCompactProp(event, ical.PropDateTimeStart, LocalCompact(desc.Start, s.loc))
	setCompactProp(event, ical.PropDateTimeEnd, LocalCompact(desc.End, s.loc))
	event.Props.SetText(ical.PropSummary, title)
	if details != "" {
		event.Props.SetText(ical.PropDescription, details)
	}
	if loc := desc.Location(); loc != "" {
		event.Props.SetText(ical.PropLocation, loc)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)
	cal.Children = append(cal.Children, event)

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("encode calendar: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *calendarService) CancellationDeadline(desc *domain.LessonDescriptor) time.Time {
	if desc == nil || desc.Start.IsZero() {
		return time.Time{}
	}
	return desc.Start.Add(-domain.CancellationNotice)
}

// setCompactProp adds a date-time property with an already-formatted compact
// value, skipping it entirely when the value is empty. The value is written
// verbatim; compact forms contain nothing the encoder would need to escape.
func setCompactProp(c *ical.Component, name, value string) {
	if value == "" {
		return
	}
	p := ical.NewProp(name)
	p.Value = value
	c.Props.Add(p)
}
