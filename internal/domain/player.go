package domain

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// PlayerID identifies a registered player. Only positive values are valid;
// zero means "no usable identifier".
type PlayerID int64

// Valid reports whether the identifier may be admitted into a participant set.
func (id PlayerID) Valid() bool { return id > 0 }

// UnmarshalJSON accepts the identifier encodings the upstream API actually
// emits: JSON numbers, numeric strings, and null. Anything unusable decodes
// to zero instead of failing the whole payload; callers filter zeros out.
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	*id = CoercePlayerID(string(data))
	return nil
}

// CoercePlayerID converts a raw identifier token to a PlayerID. Quotes are
// stripped so both 7 and "7" coerce; non-numeric, non-finite, fractional,
// and non-positive values all come back as zero.
func CoercePlayerID(raw string) PlayerID {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f <= 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0
	}
	return PlayerID(f)
}

// CoercePlayerIDValue converts an already-decoded JSON value (float64,
// string, json number text, or integer) to a PlayerID, zero when unusable.
func CoercePlayerIDValue(v any) PlayerID {
	switch t := v.(type) {
	case nil:
		return 0
	case PlayerID:
		if t.Valid() {
			return t
		}
		return 0
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 || t != math.Trunc(t) {
			return 0
		}
		return PlayerID(t)
	case int:
		if t <= 0 {
			return 0
		}
		return PlayerID(t)
	case int64:
		if t <= 0 {
			return 0
		}
		return PlayerID(t)
	case string:
		return CoercePlayerID(t)
	default:
		return 0
	}
}

// Player represents a registered student of the coach.
// swagger:model Player
type Player struct {
	ID        PlayerID  `json:"id"`
	CoachID   string    `json:"coach_id"`
	FullName  string    `json:"full_name"`
	Level     string    `json:"level"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlayerRepository defines storage operations for players.
type PlayerRepository interface {
	GetByID(ctx context.Context, id PlayerID) (*Player, error)
	ListByIDs(ctx context.Context, ids []PlayerID) ([]*Player, error)
	ListByCoachID(ctx context.Context, coachID string) ([]*Player, error)
}
