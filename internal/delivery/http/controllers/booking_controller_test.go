package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"courtbook/internal/delivery/http/helpers"
	"courtbook/internal/delivery/http/middleware"
	"courtbook/internal/domain"
	"courtbook/internal/services"
)

type mockGroupRepo struct {
	groups []*domain.Group
	err    error
}

func (m *mockGroupRepo) Create(ctx context.Context, group *domain.Group) error {
	if m.err != nil {
		return m.err
	}
	group.ID = 99
	m.groups = append(m.groups, group)
	return nil
}

func (m *mockGroupRepo) GetByID(ctx context.Context, id domain.GroupID) (*domain.Group, error) {
	for _, g := range m.groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockGroupRepo) ListByCoachID(ctx context.Context, coachID string) ([]*domain.Group, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.groups, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authedRequest(method, target, body string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(middleware.SetCoachID(req.Context(), "c1"))
}

func TestBookingController_Validate_Unauthorized(t *testing.T) {
	ctrl := NewBookingController(testLogger(), services.NewSelectionService(), &mockGroupRepo{})

	req := httptest.NewRequest(http.MethodPost, "/bookings/validate", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	ctrl.Validate(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestBookingController_Validate_PrivateLesson(t *testing.T) {
	repo := &mockGroupRepo{groups: []*domain.Group{
		{ID: 11, CoachID: "c1", Name: "U10", PlayerIDs: []domain.PlayerID{1, 2}},
	}}
	ctrl := NewBookingController(testLogger(), services.NewSelectionService(), repo)

	tests := []struct {
		name      string
		body      string
		wantTotal int
		wantValid bool
	}{
		{
			name:      "one explicit player is valid",
			body:      `{"player_ids":[5],"lesson_type":"private"}`,
			wantTotal: 1,
			wantValid: true,
		},
		{
			name:      "two-member group is too many",
			body:      `{"group_ids":[11],"lesson_type":"private"}`,
			wantTotal: 2,
			wantValid: false,
		},
		{
			name:      "group format accepts the same group",
			body:      `{"group_ids":[11],"lesson_type":"group"}`,
			wantTotal: 2,
			wantValid: true,
		},
		{
			name:      "string ids from older clients are coerced",
			body:      `{"player_ids":["7"],"lesson_type":"private"}`,
			wantTotal: 1,
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := authedRequest(http.MethodPost, "/bookings/validate", tt.body)
			w := httptest.NewRecorder()
			ctrl.Validate(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
			}
			var resp struct {
				Data  ValidateSelectionResponse `json:"data"`
				Error *helpers.APIError         `json:"error"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Data.Result.Total != tt.wantTotal {
				t.Errorf("expected total %d, got %d", tt.wantTotal, resp.Data.Result.Total)
			}
			if resp.Data.Result.Valid != tt.wantValid {
				t.Errorf("expected valid %v, got %v", tt.wantValid, resp.Data.Result.Valid)
			}
			if len(resp.Data.Warnings) != 0 {
				t.Errorf("expected no warnings without strict flag, got %d", len(resp.Data.Warnings))
			}
		})
	}
}

func TestBookingController_Validate_Strict(t *testing.T) {
	ctrl := NewBookingController(testLogger(), services.NewSelectionService(), &mockGroupRepo{})

	body := `{"player_ids":[5,"abc"],"group_ids":[404],"lesson_type":"private"}`
	req := authedRequest(http.MethodPost, "/bookings/validate?strict=1", body)
	w := httptest.NewRecorder()
	ctrl.Validate(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	var resp struct {
		Data  ValidateSelectionResponse `json:"data"`
		Error *helpers.APIError         `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Data.Result.Valid {
		t.Errorf("expected valid result, got %+v", resp.Data.Result)
	}
	if len(resp.Data.Warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d: %+v", len(resp.Data.Warnings), resp.Data.Warnings)
	}
}

func TestBookingController_Validate_CatalogError(t *testing.T) {
	ctrl := NewBookingController(testLogger(), services.NewSelectionService(), &mockGroupRepo{err: errors.New("db down")})

	req := authedRequest(http.MethodPost, "/bookings/validate", `{"player_ids":[1]}`)
	w := httptest.NewRecorder()
	ctrl.Validate(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}
