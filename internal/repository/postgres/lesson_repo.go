package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"courtbook/internal/domain"
)

type lessonRepository struct {
	DB *sql.DB
}

func NewLessonRepository(db *sql.DB) domain.LessonRepository {
	return &lessonRepository{DB: db}
}

func (r *lessonRepository) Create(ctx context.Context, l *domain.Lesson) error {
	payload, err := json.Marshal(l.Payload)
	if err != nil {
		return fmt.Errorf("encode lesson payload: %w", err)
	}
	query := `
		INSERT INTO lessons (coach_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, l.CoachID, payload, l.CreatedAt, l.UpdatedAt).Scan(&l.ID)
}

func (r *lessonRepository) GetByID(ctx context.Context, id string) (*domain.Lesson, error) {
	query := `
		SELECT id, coach_id, payload, created_at, updated_at
		FROM lessons
		WHERE id = $1
	`
	l, err := scanLesson(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *lessonRepository) ListByCoachID(ctx context.Context, coachID string) ([]*domain.Lesson, error) {
	query := `
		SELECT id, coach_id, payload, created_at, updated_at
		FROM lessons
		WHERE coach_id = $1
		ORDER BY created_at DESC, id
	`
	rows, err := r.DB.QueryContext(ctx, query, coachID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lessons := []*domain.Lesson{}
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, l)
	}
	return lessons, rows.Err()
}

// scanLesson reads one lesson row. The payload column is jsonb holding the
// raw record exactly as the booking source supplied it; a NULL payload
// decodes to a nil record.
func scanLesson(row rowScanner) (*domain.Lesson, error) {
	l := &domain.Lesson{}
	var payload []byte
	if err := row.Scan(&l.ID, &l.CoachID, &payload, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &l.Payload); err != nil {
			return nil, fmt.Errorf("decode lesson payload: %w", err)
		}
	}
	return l, nil
}
