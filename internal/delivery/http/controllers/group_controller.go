package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"courtbook/internal/delivery/http/helpers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
)

type GroupController struct {
	Logger *slog.Logger
	Repo   domain.GroupRepository
}

func NewGroupController(logger *slog.Logger, repo domain.GroupRepository) *GroupController {
	return &GroupController{
		Logger: logger,
		Repo:   repo,
	}
}

// ListGroupsSuccessResponse is the success response envelope for GET /groups (200).
type ListGroupsSuccessResponse struct {
	Data  []*domain.Group   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List the coach's groups
// @Description Returns all player groups owned by the authenticated coach, including their member player ids.
// @Tags groups
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListGroupsSuccessResponse "data is an array of groups"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [get]
func (c *GroupController) List(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	groups, err := c.Repo.ListByCoachID(r.Context(), coachID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if groups == nil {
		groups = []*domain.Group{}
	}

	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// CreateGroupRequest is the request body for POST /groups.
type CreateGroupRequest struct {
	Name      string            `json:"name"`
	PlayerIDs []domain.PlayerID `json:"player_ids"`
}

// Validate implements helpers.Validator.
func (r *CreateGroupRequest) Validate() []string {
	if strings.TrimSpace(r.Name) == "" {
		return []string{"name is required"}
	}
	return nil
}

// Create godoc
// @Summary Create a group
// @Description Creates a named player group for the authenticated coach. Player ids that do not parse as positive integers are dropped.
// @Tags groups
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body controllers.CreateGroupRequest true "Group data"
// @Success 201 {object} helpers.APIResponse "data contains the created group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /groups [post]
func (c *GroupController) Create(w http.ResponseWriter, r *http.Request) {
	coachID, ok := middleware.CoachIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	var req CreateGroupRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}

	playerIDs := make([]domain.PlayerID, 0, len(req.PlayerIDs))
	for _, id := range req.PlayerIDs {
		if id.Valid() {
			playerIDs = append(playerIDs, id)
		}
	}

	now := time.Now().UTC()
	group := domain.NewGroup(coachID, strings.TrimSpace(req.Name), playerIDs, now, now)
	if err := c.Repo.Create(r.Context(), group); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, group)
}
