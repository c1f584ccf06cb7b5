package participantrepo

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

var participantCols = []string{"user_id", "challenge_id", "amount_contributed", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func TestRepository_Find(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Participant exists",
			mockSetup: func() {
				rows := pgxmock.NewRows(participantCols).
					AddRow(int64(8152), int64(7), int64(100_000000), now, now)
				mock.ExpectQuery(`FROM participants\s+WHERE user_id = \$1 AND challenge_id = \$2`).
					WithArgs(int64(8152), int64(7)).
					WillReturnRows(rows)
			},
			found: true,
		},
		{
			name: "Not joined returns nil",
			mockSetup: func() {
				mock.ExpectQuery(`FROM participants\s+WHERE user_id = \$1 AND challenge_id = \$2`).
					WithArgs(int64(8152), int64(7)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(`FROM participants\s+WHERE user_id = \$1 AND challenge_id = \$2`).
					WithArgs(int64(8152), int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.Find(context.Background(), 8152, 7)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.Equal(t, int64(100_000000), result.AmountContributed)
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

	t.Run("Insert returns the stored row", func(t *testing.T) {
		rows := pgxmock.NewRows(participantCols).
			AddRow(int64(8152), int64(7), int64(0), now, now)
		mock.ExpectQuery(`INSERT INTO participants`).
			WithArgs(int64(8152), int64(7), int64(0)).
			WillReturnRows(rows)

		saved, err := repo.Create(context.Background(), &domain.Participant{UserID: 8152, ChallengeID: 7})
		assert.NoError(t, err)
		assert.Equal(t, int64(8152), saved.UserID)
		assert.Equal(t, now, saved.CreatedAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate join propagates the violation", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO participants`).
			WithArgs(int64(8152), int64(7), int64(0)).
			WillReturnError(errors.New("duplicate key"))

		_, err := repo.Create(context.Background(), &domain.Participant{UserID: 8152, ChallengeID: 7})
		assert.Error(t, err)
	})
}

func TestRepository_IncrementAmount(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		wantErr   error
	}{
		{
			name: "Amount moves by the delta",
			mockSetup: func() {
				mock.ExpectExec(`UPDATE participants\s+SET amount_contributed = amount_contributed \+ \$1`).
					WithArgs(int64(25_000000), int64(8152), int64(7)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "No matching row",
			mockSetup: func() {
				mock.ExpectExec(`UPDATE participants\s+SET amount_contributed = amount_contributed \+ \$1`).
					WithArgs(int64(25_000000), int64(8152), int64(7)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantErr: pgx.ErrNoRows,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.IncrementAmount(context.Background(), 8152, 7, 25_000000)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_FindInfoByChallenge(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Rows come back joined with profiles", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"user_id", "username", "display_name", "profile_picture_url", "amount_contributed"}).
			AddRow(int64(8152), "alice", "Alice", "https://img/alice.png", int64(100_000000)).
			AddRow(int64(9000), "bob", "Bob", "https://img/bob.png", int64(25_000000))
		mock.ExpectQuery(`JOIN users u ON u.id = p.user_id`).
			WithArgs(int64(7)).
			WillReturnRows(rows)

		got, err := repo.FindInfoByChallenge(context.Background(), 7)
		assert.NoError(t, err)
		assert.Len(t, got, 2)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, int64(25_000000), got[1].AmountContributed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Database error", func(t *testing.T) {
		mock.ExpectQuery(`JOIN users u ON u.id = p.user_id`).
			WithArgs(int64(7)).
			WillReturnError(errors.New("database error"))

		_, err := repo.FindInfoByChallenge(context.Background(), 7)
		assert.Error(t, err)
	})
}

func TestRepository_CountByUser(t *testing.T) {
	repo, mock := NewMock(t)

	t.Run("Count comes back", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"count"}).AddRow(3)
		mock.ExpectQuery(`SELECT COUNT\(\*\)\s+FROM participants`).
			WithArgs(int64(8152)).
			WillReturnRows(rows)

		count, err := repo.CountByUser(context.Background(), 8152)
		assert.NoError(t, err)
		assert.Equal(t, 3, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
