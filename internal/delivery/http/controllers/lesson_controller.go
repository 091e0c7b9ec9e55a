package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"courtbook/internal/delivery/http/helpers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
)

type LessonController struct {
	Logger  *slog.Logger
	Service domain.LessonService
}

func NewLessonController(logger *slog.Logger, svc domain.LessonService) *LessonController {
	return &LessonController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateLessonRequest is the request body for POST /lessons. The payload is
// stored verbatim; field names and timestamp encodings are reconciled on read.
type CreateLessonRequest struct {
	Payload domain.LessonRecord `json:"payload"`
}

// Validate implements helpers.Validator.
func (r *CreateLessonRequest) Validate() []string {
	if r.Payload == nil {
		return []string{"payload is required"}
	}
	return nil
}

// Create godoc
// @Summary Store a lesson booking
// @Description Stores the raw lesson payload for the authenticated coach. When the payload carries a student email, a booking confirmation email is sent.
// @Tags lessons
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateLessonRequest true "Raw lesson payload"
// @Success 201 {object} helpers.APIResponse "data contains the stored lesson"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons [post]
func (c *LessonController) Create(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateLessonRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	lesson, err := c.Service.Create(r.Context(), coachID, req.Payload)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, lesson)
}

// ListLessonsSuccessResponse is the success response envelope for GET /lessons (200).
type ListLessonsSuccessResponse struct {
	Data  []*domain.Lesson       `json:"data"`
	Error *helpers.APIError      `json:"error"`
	Meta  helpers.PaginationMeta `json:"meta"`
}

// lessonPage is the paginated data object for GET /lessons.
type lessonPage struct {
	Lessons []*domain.Lesson       `json:"lessons"`
	Meta    helpers.PaginationMeta `json:"meta"`
}

// List godoc
// @Summary List the coach's lessons
// @Description Returns the authenticated coach's stored lessons, paginated with page and page_size query parameters.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListLessonsSuccessResponse "data contains lessons and pagination meta"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons [get]
func (c *LessonController) List(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	lessons, err := c.Service.List(r.Context(), coachID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	params := helpers.ParsePagination(r)
	total := len(lessons)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	page := lessons[start:end]
	if page == nil {
		page = []*domain.Lesson{}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, lessonPage{
		Lessons: page,
		Meta:    helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// Get godoc
// @Summary Get a lesson
// @Description Returns one stored lesson with its raw payload. Only the owning coach may access it.
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} helpers.APIResponse "data contains the lesson"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons/{lessonID} [get]
func (c *LessonController) Get(w http.ResponseWriter, r *http.Request) {
	coachID, lessonID, ok := c.authedLesson(w, r)
	if !ok {
		return
	}

	lesson, err := c.Service.Get(r.Context(), lessonID, coachID)
	if err != nil {
		c.writeLessonError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, lesson)
}

// Confirmation godoc
// @Summary Get the confirmation view for a lesson
// @Description Returns the normalized lesson descriptor together with the Google Calendar link and the free-cancellation deadline (24 hours before the lesson starts).
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param lessonID path string true "Lesson ID"
// @Success 200 {object} helpers.APIResponse "data contains the lesson confirmation"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons/{lessonID}/confirmation [get]
func (c *LessonController) Confirmation(w http.ResponseWriter, r *http.Request) {
	coachID, lessonID, ok := c.authedLesson(w, r)
	if !ok {
		return
	}

	confirmation, err := c.Service.Confirmation(r.Context(), lessonID, coachID)
	if err != nil {
		c.writeLessonError(w, r, err)
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, confirmation)
}

// CalendarFile godoc
// @Summary Download the lesson as an ICS file
// @Description Renders the lesson as an RFC 5545 iCalendar document and serves it as a file download.
// @Tags lessons
// @Produce text/calendar
// @Security BearerAuth
// @Param lessonID path string true "Lesson ID"
// @Success 200 {string} string "the iCalendar document"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /lessons/{lessonID}/calendar.ics [get]
func (c *LessonController) CalendarFile(w http.ResponseWriter, r *http.Request) {
	coachID, lessonID, ok := c.authedLesson(w, r)
	if !ok {
		return
	}

	filename, body, err := c.Service.CalendarFile(r.Context(), lessonID, coachID)
	if err != nil {
		c.writeLessonError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// authedLesson extracts the coach identity and lessonID path value, writing
// the error response itself when either is missing.
func (c *LessonController) authedLesson(w http.ResponseWriter, r *http.Request) (coachID, lessonID string, ok bool) {
	lessonID = r.PathValue("lessonID")
	if lessonID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing lessonID")
		return "", "", false
	}
	coachID, authed := middleware.CoachIDFromContext(r.Context())
	if !authed {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return "", "", false
	}
	return coachID, lessonID, true
}

func (c *LessonController) writeLessonError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "lesson not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
