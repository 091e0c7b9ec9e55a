package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"courtbook/internal/domain"
)

// Defaults applied when no naming variant of a field is populated.
const (
	defaultStudentName  = "Student"
	defaultLocationName = "TBD"
	defaultDurationMin  = 60
)

// Ordered probe lists, one per descriptor field. Precedence is the order
// written here; a record may satisfy different fields through different
// naming conventions.
var (
	studentNameProbes = []fieldProbe{
		key("student_name"),
		key("player_name"),
		nested("student", "full_name"),
		nested("student", "name"),
		nested("player", "full_name"),
		nested("player", "name"),
	}
	studentLevelProbes = []fieldProbe{
		key("student_level"),
		key("level"),
		key("skill_level"),
		nested("student", "level"),
	}
	lessonTypeProbes = []fieldProbe{
		key("lesson_type"),
		key("type"),
		key("format"),
	}
	startProbes = []fieldProbe{
		key("start_time"),
		key("start"),
		key("scheduled_at"),
	}
	endProbes = []fieldProbe{
		key("end_time"),
		key("end"),
		key("ends_at"),
	}
	durationProbes = []fieldProbe{
		key("duration_minutes"),
		key("duration"),
	}
	locationNameProbes = []fieldProbe{
		key("location_name"),
		key("location"),
		key("court"),
		nested("location", "name"),
	}
	locationAddressProbes = []fieldProbe{
		key("location_address"),
		key("address"),
		nested("location", "address"),
	}
	feeProbes = []fieldProbe{
		key("hourly_fee"),
		key("fee"),
		key("hourly_rate"),
		key("rate"),
		key("price"),
	}
	creditFlagProbes = []fieldProbe{
		key("credit_covered"),
		key("paid_with_credits"),
		key("use_credits"),
	}
	creditsUsedProbes = []fieldProbe{
		key("credits_used"),
		key("package_credits_used"),
	}
	paymentTypeProbes = []fieldProbe{
		key("payment_type"),
		key("payment_method"),
	}
	studentEmailProbes = []fieldProbe{
		key("student_email"),
		key("email"),
		nested("student", "email"),
		nested("player", "email"),
	}
)

// creditPaymentTypes are the payment_type sentinels that mean the lesson is
// already covered by pre-purchased package credit.
var creditPaymentTypes = map[string]struct{}{
	"credit":         {},
	"credits":        {},
	"package_credit": {},
}

type lessonService struct {
	lessonRepo domain.LessonRepository
	calendar   domain.CalendarService
	email      domain.EmailService
	loc        *time.Location
}

// NewLessonService creates a LessonService. loc is the observer's time zone,
// used to interpret naive timestamps and to render floating calendar times.
// email may be nil; booking confirmations are then skipped.
func NewLessonService(lessonRepo domain.LessonRepository, calendar domain.CalendarService, email domain.EmailService, loc *time.Location) domain.LessonService {
	if loc == nil {
		loc = time.Local
	}
	return &lessonService{
		lessonRepo: lessonRepo,
		calendar:   calendar,
		email:      email,
		loc:        loc,
	}
}

func (s *lessonService) Normalize(record domain.LessonRecord) *domain.LessonDescriptor {
	if record == nil {
		return nil
	}

	desc := &domain.LessonDescriptor{
		StudentName:  defaultStudentName,
		LessonType:   domain.LessonFormatPrivate,
		LocationName: defaultLocationName,
	}
	if name, ok := probeString(record, studentNameProbes); ok {
		desc.StudentName = name
	}
	if level, ok := probeString(record, studentLevelProbes); ok {
		desc.StudentLevel = level
	}
	if lessonType, ok := probeString(record, lessonTypeProbes); ok {
		desc.LessonType = strings.ToLower(lessonType)
	}
	if locName, ok := probeString(record, locationNameProbes); ok {
		desc.LocationName = locName
	}
	if addr, ok := probeString(record, locationAddressProbes); ok {
		desc.LocationAddress = addr
	}

	desc.Start = probeTime(record, startProbes, s.loc)
	desc.End = probeTime(record, endProbes, s.loc)
	if desc.End.IsZero() && !desc.Start.IsZero() {
		minutes := probeNumber(record, durationProbes)
		if minutes <= 0 {
			minutes = defaultDurationMin
		}
		desc.End = desc.Start.Add(time.Duration(minutes) * time.Minute)
	}

	desc.HourlyFee = probeNumber(record, feeProbes)
	desc.CreditCovered = s.creditCovered(record)
	return desc
}

// creditCovered is true when any of the alternative "paid by credit" signals
// fires: an explicit flag, a non-zero credits-used counter, or a credit
// payment type.
func (s *lessonService) creditCovered(record domain.LessonRecord) bool {
	for _, probe := range creditFlagProbes {
		if v, ok := probe(record); ok && truthy(v) {
			return true
		}
	}
	for _, probe := range creditsUsedProbes {
		if v, ok := probe(record); ok {
			if n, numOK := coerceNumber(v); numOK && n > 0 {
				return true
			}
		}
	}
	if pt, ok := probeString(record, paymentTypeProbes); ok {
		if _, isCredit := creditPaymentTypes[strings.ToLower(pt)]; isCredit {
			return true
		}
	}
	return false
}

func (s *lessonService) Create(ctx context.Context, coachID string, payload domain.LessonRecord) (*domain.Lesson, error) {
	if coachID == "" {
		return nil, fmt.Errorf("%w: coach id is required", domain.ErrInvalidInput)
	}
	now := time.Now().UTC()
	lesson := domain.NewLesson(coachID, payload, now, now)
	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("create lesson: %w", err)
	}
	s.sendConfirmationEmail(ctx, lesson)
	return lesson, nil
}

func (s *lessonService) Get(ctx context.Context, lessonID, coachID string) (*domain.Lesson, error) {
	return s.loadOwned(ctx, lessonID, coachID)
}

func (s *lessonService) List(ctx context.Context, coachID string) ([]*domain.Lesson, error) {
	lessons, err := s.lessonRepo.ListByCoachID(ctx, coachID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	return lessons, nil
}

// sendConfirmationEmail sends the booking confirmation when the payload
// carries a student email. Failures are logged, never propagated.
func (s *lessonService) sendConfirmationEmail(ctx context.Context, lesson *domain.Lesson) {
	if s.email == nil {
		return
	}
	addr, ok := probeString(lesson.Payload, studentEmailProbes)
	if !ok {
		return
	}
	desc := s.Normalize(lesson.Payload)
	if desc == nil {
		return
	}
	deadline := s.calendar.CancellationDeadline(desc)
	title, details := describeLesson(desc, deadline)
	data := &domain.BookingConfirmationEmailData{
		Email:                addr,
		StudentName:          desc.StudentName,
		LessonType:           desc.LessonType,
		StartsAt:             desc.Start.Format("Mon, 02 Jan 2006 15:04"),
		Location:             desc.Location(),
		GoogleCalendarURL:    s.calendar.GoogleCalendarURL(desc, title, details),
		CancellationDeadline: deadline,
	}
	if err := s.email.SendBookingConfirmation(ctx, data); err != nil {
		log.Printf("[EMAIL] booking confirmation for lesson %s failed: %v", lesson.ID, err)
	}
}

func (s *lessonService) Confirmation(ctx context.Context, lessonID, coachID string) (*domain.LessonConfirmation, error) {
	lesson, err := s.loadOwned(ctx, lessonID, coachID)
	if err != nil {
		return nil, err
	}
	desc := s.Normalize(lesson.Payload)
	if desc == nil {
		// Nothing to render; the caller shows an empty confirmation.
		return &domain.LessonConfirmation{LessonID: lesson.ID}, nil
	}
	title, details := describeLesson(desc, s.calendar.CancellationDeadline(desc))
	return &domain.LessonConfirmation{
		LessonID:             lesson.ID,
		Descriptor:           desc,
		GoogleCalendarURL:    s.calendar.GoogleCalendarURL(desc, title, details),
		CancellationDeadline: s.calendar.CancellationDeadline(desc),
	}, nil
}

func (s *lessonService) CalendarFile(ctx context.Context, lessonID, coachID string) (string, []byte, error) {
	lesson, err := s.loadOwned(ctx, lessonID, coachID)
	if err != nil {
		return "", nil, err
	}
	desc := s.Normalize(lesson.Payload)
	if desc == nil {
		return "", nil, domain.ErrNotFound
	}
	title, details := describeLesson(desc, s.calendar.CancellationDeadline(desc))
	body, err := s.calendar.ICSDocument(desc, title, details)
	if err != nil {
		return "", nil, fmt.Errorf("build ics document: %w", err)
	}
	return fmt.Sprintf("lesson-%s.ics", lesson.ID), body, nil
}

func (s *lessonService) loadOwned(ctx context.Context, lessonID, coachID string) (*domain.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get lesson: %w", err)
	}
	if lesson.CoachID != "" && coachID != "" && lesson.CoachID != coachID {
		return nil, domain.ErrForbidden
	}
	return lesson, nil
}

// describeLesson builds the calendar title and multi-line description shared
// by the Google link and the ICS file.
func describeLesson(desc *domain.LessonDescriptor, deadline time.Time) (title, details string) {
	title = fmt.Sprintf("%s lesson with %s", capitalize(desc.LessonType), desc.StudentName)

	lines := []string{fmt.Sprintf("Lesson type: %s", desc.LessonType)}
	if desc.StudentLevel != "" {
		lines = append(lines, fmt.Sprintf("Level: %s", desc.StudentLevel))
	}
	if desc.CreditCovered {
		lines = append(lines, "Payment: covered by package credit")
	} else if desc.HourlyFee > 0 {
		lines = append(lines, fmt.Sprintf("Rate: $%.2f/hr", desc.HourlyFee))
	}
	if !deadline.IsZero() {
		lines = append(lines, fmt.Sprintf("Free cancellation until %s", deadline.Format("Mon, 02 Jan 2006 15:04")))
	}
	return title, strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
