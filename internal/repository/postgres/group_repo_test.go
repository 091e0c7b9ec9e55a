package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"courtbook/internal/domain"
)

func TestGroupRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		group   *domain.Group
		mock    func(mock sqlmock.Sqlmock)
		wantID  domain.GroupID
		wantErr bool
	}{
		{
			name:  "success",
			group: domain.NewGroup("coach-1", "Juniors", []domain.PlayerID{1, 2, 3}, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO groups \(coach_id, name, player_ids, created_at, updated_at\)`).
					WithArgs("coach-1", "Juniors", pq.Array([]int64{1, 2, 3}), now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
			},
			wantID:  11,
			wantErr: false,
		},
		{
			name:  "db error",
			group: domain.NewGroup("coach-1", "Juniors", nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO groups`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewGroupRepository(db)
			err = repo.Create(ctx, tt.group)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.wantID, tt.group.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGroupRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "coach_id", "name", "player_ids", "members", "created_at", "updated_at"}

	t.Run("explicit player ids", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, coach_id, name, player_ids, members, created_at, updated_at`).
			WithArgs(int64(11)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(11), "coach-1", "Juniors", []byte(`{1,2,3}`), nil, now, now))

		g, err := NewGroupRepository(db).GetByID(ctx, 11)
		require.NoError(t, err)
		require.Equal(t, domain.GroupID(11), g.ID)
		require.Equal(t, []domain.PlayerID{1, 2, 3}, g.PlayerIDs)
		require.Empty(t, g.Members)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("legacy member objects", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		members := []byte(`[{"player_id":3},{"id":4},{"user_id":"5"}]`)
		mock.ExpectQuery(`SELECT id, coach_id, name, player_ids, members, created_at, updated_at`).
			WithArgs(int64(12)).
			WillReturnRows(sqlmock.NewRows(cols).
				AddRow(int64(12), "coach-1", "Legacy", []byte(`{}`), members, now, now))

		g, err := NewGroupRepository(db).GetByID(ctx, 12)
		require.NoError(t, err)
		require.Empty(t, g.PlayerIDs)
		require.Len(t, g.Members, 3)

		id, ok := g.Members[0].ResolvedID()
		require.True(t, ok)
		require.Equal(t, domain.PlayerID(3), id)
		id, ok = g.Members[2].ResolvedID()
		require.True(t, ok, "numeric string ids are tolerated")
		require.Equal(t, domain.PlayerID(5), id)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, coach_id, name, player_ids, members, created_at, updated_at`).
			WithArgs(int64(99)).
			WillReturnRows(sqlmock.NewRows(cols))

		_, err = NewGroupRepository(db).GetByID(ctx, 99)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestGroupRepository_ListByCoachID(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	cols := []string{"id", "coach_id", "name", "player_ids", "members", "created_at", "updated_at"}

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, coach_id, name, player_ids, members, created_at, updated_at`).
		WithArgs("coach-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(11), "coach-1", "Juniors", []byte(`{1,2}`), nil, now, now).
			AddRow(int64(12), "coach-1", "Seniors", []byte(`{3}`), nil, now, now))

	groups, err := NewGroupRepository(db).ListByCoachID(ctx, "coach-1")
	require.NoError(t, err)
	require.Len(t, groups, 2)
	require.Equal(t, "Juniors", groups[0].Name)
	require.Equal(t, []domain.PlayerID{3}, groups[1].PlayerIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}
