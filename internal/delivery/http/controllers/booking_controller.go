package controllers

import (
	"log/slog"
	"net/http"

	"courtbook/internal/delivery/http/helpers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
)

type BookingController struct {
	Logger    *slog.Logger
	Selection domain.SelectionService
	Groups    domain.GroupRepository
}

func NewBookingController(logger *slog.Logger, selection domain.SelectionService, groups domain.GroupRepository) *BookingController {
	return &BookingController{
		Logger:    logger,
		Selection: selection,
		Groups:    groups,
	}
}

// ValidateSelectionRequest is the request body for POST /bookings/validate.
// Player and group ids tolerate the string and float encodings older clients
// send; unusable ids are dropped, never rejected.
type ValidateSelectionRequest struct {
	PlayerIDs  []domain.PlayerID `json:"player_ids"`
	GroupIDs   []domain.GroupID  `json:"group_ids"`
	Invitees   []domain.Invitee  `json:"invitees"`
	LessonType string            `json:"lesson_type"`
}

// ValidateSelectionResponse is the response body for POST /bookings/validate.
// Warnings is only populated when the strict query flag is set.
type ValidateSelectionResponse struct {
	Result   domain.SelectionResult    `json:"result"`
	Warnings []domain.SelectionWarning `json:"warnings,omitempty"`
}

// Validate godoc
// @Summary Validate a booking participant selection
// @Description Expands the selected groups against the coach's catalog, deduplicates participants, counts complete invitees, and checks the total against the cardinality the lesson format requires (private lessons require exactly one participant). Malformed ids and incomplete invitees are dropped silently; pass strict=1 to get them reported as warnings.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param strict query int false "Set to 1 to include warnings for dropped input"
// @Param body body controllers.ValidateSelectionRequest true "Selection to validate"
// @Success 200 {object} helpers.APIResponse "data contains result and optional warnings"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/validate [post]
func (c *BookingController) Validate(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req ValidateSelectionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	catalog, err := c.Groups.ListByCoachID(r.Context(), coachID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	input := domain.SelectionInput{
		PlayerIDs:            req.PlayerIDs,
		GroupIDs:             req.GroupIDs,
		Groups:               catalog,
		Invitees:             req.Invitees,
		RequiredParticipants: domain.RequiredParticipantsFor(req.LessonType),
	}

	if r.URL.Query().Get("strict") == "1" {
		result, warnings := c.Selection.ValidateSelectionStrict(input)
		helpers.WriteJSONSuccess(w, http.StatusOK, ValidateSelectionResponse{Result: result, Warnings: warnings})
		return
	}

	result := c.Selection.ValidateSelection(input)
	helpers.WriteJSONSuccess(w, http.StatusOK, ValidateSelectionResponse{Result: result})
}
