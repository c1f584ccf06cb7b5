package userrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/saveup/saveup/internal/domain"
)

var userCols = []string{"id", "username", "display_name", "profile_picture_url", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		fid       int64
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "User exists",
			fid:  8152,
			mockSetup: func() {
				rows := pgxmock.NewRows(userCols).
					AddRow(int64(8152), "alice", "Alice", "https://img/alice.png", now, now)
				mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
					WithArgs(int64(8152)).
					WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Unknown fid returns nil",
			fid:  404,
			mockSetup: func() {
				mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
					WithArgs(int64(404)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			fid:  8152,
			mockSetup: func() {
				mock.ExpectQuery(`FROM users\s+WHERE id = \$1`).
					WithArgs(int64(8152)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.fid)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.Equal(t, "alice", result.Username)
			} else {
				assert.Nil(t, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Insert keeps the externally assigned fid", func(t *testing.T) {
		rows := pgxmock.NewRows(userCols).
			AddRow(int64(8152), "alice", "Alice", "https://img/alice.png", now, now)
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(int64(8152), "alice", "Alice", "https://img/alice.png").
			WillReturnRows(rows)

		saved, err := repo.Create(context.Background(), &domain.User{
			ID: 8152, Username: "alice", DisplayName: "Alice", ProfilePictureURL: "https://img/alice.png",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(8152), saved.ID)
		assert.Equal(t, now, saved.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure propagates", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO users`).
			WithArgs(int64(8152), "alice", "Alice", "https://img/alice.png").
			WillReturnError(errors.New("duplicate key"))

		_, err := repo.Create(context.Background(), &domain.User{
			ID: 8152, Username: "alice", DisplayName: "Alice", ProfilePictureURL: "https://img/alice.png",
		})
		assert.Error(t, err)
	})
}
