package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"courtbook/internal/domain"
)

type coachRepository struct {
	DB *sql.DB
}

func NewCoachRepository(db *sql.DB) domain.CoachRepository {
	return &coachRepository{DB: db}
}

func (r *coachRepository) Create(ctx context.Context, c *domain.Coach) error {
	query := `
		INSERT INTO coaches (email, password_hash, salt, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, c.Email, c.PasswordHash, c.Salt, c.Name, c.CreatedAt, c.UpdatedAt).Scan(&c.ID)
	if err != nil {
		var perr *pq.Error
		if errors.As(err, &perr) && perr.Code == "23505" {
			return domain.ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *coachRepository) GetByEmail(ctx context.Context, email string) (*domain.Coach, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM coaches
		WHERE email = $1
	`
	c := &domain.Coach{}
	err := r.DB.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Salt, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *coachRepository) GetByID(ctx context.Context, id string) (*domain.Coach, error) {
	query := `
		SELECT id, email, password_hash, salt, name, created_at, updated_at
		FROM coaches
		WHERE id = $1
	`
	c := &domain.Coach{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Email, &c.PasswordHash, &c.Salt, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}
