package domain

import (
	"context"
	"time"
)

// LessonRecord is a raw lesson payload exactly as the booking source supplied
// it. Several client generations disagree about field names and timestamp
// encodings, so the record stays schemaless until normalization.
type LessonRecord map[string]any

// LessonDescriptor is the canonical, fully-resolved view of a LessonRecord.
// Derived once by the lesson service; immutable thereafter.
// swagger:model LessonDescriptor
type LessonDescriptor struct {
	StudentName     string    `json:"student_name"`
	StudentLevel    string    `json:"student_level"`
	LessonType      string    `json:"lesson_type"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	LocationName    string    `json:"location_name"`
	LocationAddress string    `json:"location_address,omitempty"`
	HourlyFee       float64   `json:"hourly_fee"`
	CreditCovered   bool      `json:"credit_covered"`
}

// Location joins the location name with the optional address for display and
// calendar use.
func (d *LessonDescriptor) Location() string {
	if d.LocationAddress == "" {
		return d.LocationName
	}
	return d.LocationName + ", " + d.LocationAddress
}

// Lesson is a stored lesson: the raw payload plus the identity the
// repository assigned to it.
// swagger:model Lesson
type Lesson struct {
	ID        string       `json:"id"`
	CoachID   string       `json:"coach_id"`
	Payload   LessonRecord `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewLesson returns a new Lesson with the given fields. ID is typically set by the repository on create.
func NewLesson(coachID string, payload LessonRecord, createdAt, updatedAt time.Time) *Lesson {
	return &Lesson{
		CoachID:   coachID,
		Payload:   payload,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// LessonRepository defines storage operations for lessons. Payloads are
// stored verbatim; normalization happens on read in the service layer.
type LessonRepository interface {
	Create(ctx context.Context, lesson *Lesson) error
	GetByID(ctx context.Context, id string) (*Lesson, error)
	ListByCoachID(ctx context.Context, coachID string) ([]*Lesson, error)
}

// LessonConfirmation is everything the confirmation sheet needs for one
// lesson: the canonical descriptor plus the derived calendar values.
// swagger:model LessonConfirmation
type LessonConfirmation struct {
	LessonID             string            `json:"lesson_id"`
	Descriptor           *LessonDescriptor `json:"descriptor"`
	GoogleCalendarURL    string            `json:"google_calendar_url"`
	CancellationDeadline time.Time         `json:"cancellation_deadline"`
}

// LessonService turns raw lesson records into canonical descriptors and
// confirmation views.
type LessonService interface {
	// Normalize maps a raw record onto the canonical descriptor. A nil
	// record yields nil, meaning "nothing to render"; it is not an error.
	Normalize(record LessonRecord) *LessonDescriptor
	// Create stores a raw lesson payload for the coach. When the payload
	// carries a student email, a booking confirmation email is sent
	// best-effort; a mail failure does not fail the booking.
	Create(ctx context.Context, coachID string, payload LessonRecord) (*Lesson, error)
	// List returns all lessons owned by the coach.
	List(ctx context.Context, coachID string) ([]*Lesson, error)
	// Get returns one stored lesson, enforcing coach ownership.
	Get(ctx context.Context, lessonID, coachID string) (*Lesson, error)
	// Confirmation loads the lesson and builds its confirmation view.
	Confirmation(ctx context.Context, lessonID, coachID string) (*LessonConfirmation, error)
	// CalendarFile loads the lesson and renders its RFC 5545 document.
	CalendarFile(ctx context.Context, lessonID, coachID string) (filename string, body []byte, err error)
}
