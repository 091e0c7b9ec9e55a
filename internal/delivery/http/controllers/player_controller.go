package controllers

import (
	"log/slog"
	"net/http"

	"courtbook/internal/delivery/http/helpers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
)

type PlayerController struct {
	Logger *slog.Logger
	Repo   domain.PlayerRepository
}

func NewPlayerController(logger *slog.Logger, repo domain.PlayerRepository) *PlayerController {
	return &PlayerController{
		Logger: logger,
		Repo:   repo,
	}
}

// ListPlayersSuccessResponse is the success response envelope for GET /players (200).
type ListPlayersSuccessResponse struct {
	Data  []*domain.Player  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List the coach's players
// @Description Returns all players belonging to the authenticated coach, for populating the booking form.
// @Tags players
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListPlayersSuccessResponse "data is an array of players"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /players [get]
func (c *PlayerController) List(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	players, err := c.Repo.ListByCoachID(r.Context(), coachID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if players == nil {
		players = []*domain.Player{}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, players)
}
