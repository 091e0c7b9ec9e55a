package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"courtbook/internal/domain"
)

type groupRepository struct {
	DB *sql.DB
}

func NewGroupRepository(db *sql.DB) domain.GroupRepository {
	return &groupRepository{DB: db}
}

func (r *groupRepository) Create(ctx context.Context, g *domain.Group) error {
	query := `
		INSERT INTO groups (coach_id, name, player_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, g.CoachID, g.Name, pq.Array(playerIDsToInt64(g.PlayerIDs)), g.CreatedAt, g.UpdatedAt).Scan(&g.ID)
}

func (r *groupRepository) GetByID(ctx context.Context, id domain.GroupID) (*domain.Group, error) {
	query := `
		SELECT id, coach_id, name, player_ids, members, created_at, updated_at
		FROM groups
		WHERE id = $1
	`
	g, err := scanGroup(r.DB.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return g, nil
}

func (r *groupRepository) ListByCoachID(ctx context.Context, coachID string) ([]*domain.Group, error) {
	query := `
		SELECT id, coach_id, name, player_ids, members, created_at, updated_at
		FROM groups
		WHERE coach_id = $1
		ORDER BY name, id
	`
	rows, err := r.DB.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	groups := []*domain.Group{}
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanGroup reads one group row. player_ids is a bigint array; members is a
// jsonb column kept for groups imported from the legacy roster format, NULL
// for groups created here.
func scanGroup(row rowScanner) (*domain.Group, error) {
	g := &domain.Group{}
	var ids pq.Int64Array
	var membersRaw []byte
	if err := row.Scan(&g.ID, &g.CoachID, &g.Name, &ids, &membersRaw, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return nil, err
	}
	g.PlayerIDs = int64sToPlayerIDs(ids)
	if len(membersRaw) > 0 {
		if err := json.Unmarshal(membersRaw, &g.Members); err != nil {
			return nil, fmt.Errorf("decode group members: %w", err)
		}
	}
	return g, nil
}

func playerIDsToInt64(ids []domain.PlayerID) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func int64sToPlayerIDs(ids []int64) []domain.PlayerID {
	if len(ids) == 0 {
		return nil
	}
	out := make([]domain.PlayerID, len(ids))
	for i, id := range ids {
		out[i] = domain.PlayerID(id)
	}
	return out
}
