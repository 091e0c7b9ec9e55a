package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courtbook/internal/domain"
)

type playerRepository struct {
	DB *sql.DB
}

func NewPlayerRepository(db *sql.DB) domain.PlayerRepository {
	return &playerRepository{DB: db}
}

const playerColumns = `id, coach_id, full_name, level, email, phone, created_at, updated_at`

func (r *playerRepository) GetByID(ctx context.Context, id domain.PlayerID) (*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = $1`
	p, err := scanPlayer(r.DB.QueryRowContext(ctx, query, int64(id)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *playerRepository) ListByIDs(ctx context.Context, ids []domain.PlayerID) ([]*domain.Player, error) {
	if len(ids) == 0 {
		return []*domain.Player{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM players WHERE id = ANY($1) ORDER BY full_name, id`
	rows, err := r.DB.QueryContext(ctx, query, pq.Array(playerIDsToInt64(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func (r *playerRepository) ListByCoachID(ctx context.Context, coachID string) ([]*domain.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE coach_id = $1 ORDER BY full_name, id`
	rows, err := r.DB.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPlayers(rows)
}

func scanPlayer(row rowScanner) (*domain.Player, error) {
	p := &domain.Player{}
	err := row.Scan(&p.ID, &p.CoachID, &p.FullName, &p.Level, &p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func collectPlayers(rows *sql.Rows) ([]*domain.Player, error) {
	players := []*domain.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}
