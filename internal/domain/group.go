package domain

import (
	"context"
	"time"
)

// GroupID identifies a group. It tolerates the same loose encodings as
// PlayerID: numbers, numeric strings, and null, with unusable values
// decoding to zero.
type GroupID int64

// Valid reports whether the identifier refers to a real group.
func (id GroupID) Valid() bool { return id > 0 }

// UnmarshalJSON decodes with the same leniency as PlayerID.UnmarshalJSON.
func (id *GroupID) UnmarshalJSON(data []byte) error {
	*id = GroupID(CoercePlayerID(string(data)))
	return nil
}

// GroupMember is one entry of a group's member list. The upstream API is not
// consistent about which key carries the player identifier, so all three
// variants are decoded; precedence is player_id, then id, then user_id.
// A JSON null leaves the field nil, which means "not supplied" rather than
// "supplied but unusable".
type GroupMember struct {
	PlayerID *PlayerID `json:"player_id,omitempty"`
	ID       *PlayerID `json:"id,omitempty"`
	UserID   *PlayerID `json:"user_id,omitempty"`
}

// ResolvedID returns the identifier carried by the first supplied key, and
// false when no key is supplied or the first supplied one is unusable.
func (m GroupMember) ResolvedID() (PlayerID, bool) {
	for _, candidate := range []*PlayerID{m.PlayerID, m.ID, m.UserID} {
		if candidate == nil {
			continue
		}
		return *candidate, candidate.Valid()
	}
	return 0, false
}

// Group represents a named, reusable collection of players that can be
// selected as a single booking input. Member identity arrives in one of two
// shapes: an explicit player_ids list, or a list of member objects. When the
// explicit list is present and non-empty it is authoritative.
// swagger:model Group
type Group struct {
	ID        GroupID       `json:"id"`
	CoachID   string        `json:"coach_id,omitempty"`
	Name      string        `json:"name"`
	PlayerIDs []PlayerID    `json:"player_ids,omitempty"`
	Members   []GroupMember `json:"members,omitempty"`
	CreatedAt time.Time     `json:"created_at,omitzero"`
	UpdatedAt time.Time     `json:"updated_at,omitzero"`
}

// NewGroup returns a new Group with the given fields. ID is typically set by the repository on create.
func NewGroup(coachID, name string, playerIDs []PlayerID, createdAt, updatedAt time.Time) *Group {
	return &Group{
		CoachID:   coachID,
		Name:      name,
		PlayerIDs: playerIDs,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// GroupRepository defines storage operations for groups.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	GetByID(ctx context.Context, id GroupID) (*Group, error)
	ListByCoachID(ctx context.Context, coachID string) ([]*Group, error)
}
