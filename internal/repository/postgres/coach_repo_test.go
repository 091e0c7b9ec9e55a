package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
)

func TestCoachRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO coaches \(email, password_hash, salt, name, created_at, updated_at\)`).
			WithArgs("c@example.com", "hash", "salt", "Sam", now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("coach-uuid-1"))

		coach := domain.NewCoach("c@example.com", "Sam", now, now)
		coach.PasswordHash = "hash"
		coach.Salt = "salt"
		require.NoError(t, NewCoachRepository(db).Create(ctx, coach))
		require.Equal(t, "coach-uuid-1", coach.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO coaches`).
			WillReturnError(&pq.Error{Code: "23505"})

		coach := domain.NewCoach("c@example.com", "Sam", now, now)
		err = NewCoachRepository(db).Create(ctx, coach)
		require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestCoachRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "email", "password_hash", "salt", "name", "created_at", "updated_at"}

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, name, created_at, updated_at`).
			WithArgs("c@example.com").
			WillReturnRows(sqlmock.NewRows(cols).AddRow("coach-1", "c@example.com", "hash", "salt", "Sam", now, now))

		coach, err := NewCoachRepository(db).GetByEmail(ctx, "c@example.com")
		require.NoError(t, err)
		require.Equal(t, "coach-1", coach.ID)
		require.Equal(t, "hash", coach.PasswordHash)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, salt, name, created_at, updated_at`).
			WithArgs("missing@example.com").
			WillReturnRows(sqlmock.NewRows(cols))

		_, err = NewCoachRepository(db).GetByEmail(ctx, "missing@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
