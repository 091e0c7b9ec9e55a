package domain

import "time"

// CancellationNotice is how far ahead of the start a lesson can still be
// cancelled without charge. Fixed in this version; no configurable grace
// period.
const CancellationNotice = 24 * time.Hour

// CalendarService builds the interoperable calendar artifacts for a
// normalized lesson. Both artifacts describe the same wall-clock instant:
// the Google link carries it UTC-qualified, the RFC 5545 file carries it as
// floating local time. That asymmetry is what the two protocols expect.
type CalendarService interface {
	// GoogleCalendarURL returns a calendar.google.com render link
	// pre-filled with the lesson. Empty-string date fields are omitted when
	// the descriptor has no usable start or end.
	GoogleCalendarURL(desc *LessonDescriptor, title, details string) string
	// ICSDocument returns a VCALENDAR/VEVENT text block with a unique UID.
	ICSDocument(desc *LessonDescriptor, title, details string) ([]byte, error)
	// CancellationDeadline returns the last instant the lesson can be
	// cancelled without charge.
	CancellationDeadline(desc *LessonDescriptor) time.Time
}
