package challengerepo

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

var challengeCols = []string{
	"id", "name", "description", "goal_amount", "current_amount",
	"total_amount_contributed", "target_date", "transaction_hash", "creator_id", "created_at", "updated_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()
	return repo, mockDB
}

func challengeRow(now time.Time, current int64) *pgxmock.Rows {
	return pgxmock.NewRows(challengeCols).
		AddRow(int64(7), "Trip to Lisbon", (*string)(nil), int64(200_000000), current,
			current, (*time.Time)(nil), (*string)(nil), int64(8152), now, now)
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		id        int64
		mockSetup func()
		expectErr bool
		found     bool
	}{
		{
			name: "Challenge exists",
			id:   7,
			mockSetup: func() {
				mock.ExpectQuery(`FROM challenges\s+WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnRows(challengeRow(now, 125_000000))
			},
			found: true,
		},
		{
			name: "Challenge does not exist",
			id:   99,
			mockSetup: func() {
				mock.ExpectQuery(`FROM challenges\s+WHERE id = \$1`).
					WithArgs(int64(99)).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name: "Database error",
			id:   7,
			mockSetup: func() {
				mock.ExpectQuery(`FROM challenges\s+WHERE id = \$1`).
					WithArgs(int64(7)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByID(context.Background(), tt.id)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if tt.found {
				assert.Equal(t, int64(7), result.ID)
				assert.Equal(t, int64(125_000000), result.CurrentAmount)
			} else {
				assert.Nil(t, result)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Save(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Insert keeps the caller-supplied id", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO challenges`).
			WithArgs(int64(7), "Trip to Lisbon", (*string)(nil), int64(200_000000),
				(*time.Time)(nil), (*string)(nil), int64(8152)).
			WillReturnRows(challengeRow(now, 0))

		saved, err := repo.Save(context.Background(), &domain.Challenge{
			ID: 7, Name: "Trip to Lisbon", GoalAmount: 200_000000, CreatorID: 8152,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(7), saved.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert failure propagates", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO challenges`).
			WithArgs(int64(7), "Trip to Lisbon", (*string)(nil), int64(200_000000),
				(*time.Time)(nil), (*string)(nil), int64(8152)).
			WillReturnError(errors.New("duplicate key"))

		_, err := repo.Save(context.Background(), &domain.Challenge{
			ID: 7, Name: "Trip to Lisbon", GoalAmount: 200_000000, CreatorID: 8152,
		})
		assert.Error(t, err)
	})
}

func TestRepository_ApplyContribution(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Both aggregates move by the delta", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE challenges\s+SET current_amount = current_amount \+ \$1`).
			WithArgs(int64(25_000000), int64(7)).
			WillReturnRows(challengeRow(now, 125_000000))

		updated, err := repo.ApplyContribution(context.Background(), 7, 25_000000)
		assert.NoError(t, err)
		assert.Equal(t, int64(125_000000), updated.CurrentAmount)
		assert.Equal(t, int64(125_000000), updated.TotalContributed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_FindAll(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("All rows come back", func(t *testing.T) {
		rows := pgxmock.NewRows(challengeCols).
			AddRow(int64(1), "First", (*string)(nil), int64(100), int64(0), int64(0),
				(*time.Time)(nil), (*string)(nil), int64(1), now, now).
			AddRow(int64(2), "Second", (*string)(nil), int64(100), int64(0), int64(0),
				(*time.Time)(nil), (*string)(nil), int64(1), now, now)
		mock.ExpectQuery(`FROM challenges\s+ORDER BY created_at DESC`).
			WillReturnRows(rows)

		got, err := repo.FindAll(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestRepository_FindByParticipant(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	t.Run("Only joined challenges come back", func(t *testing.T) {
		rows := pgxmock.NewRows(challengeCols).
			AddRow(int64(7), "Trip to Lisbon", (*string)(nil), int64(200_000000), int64(0), int64(0),
				(*time.Time)(nil), (*string)(nil), int64(8152), now, now)
		mock.ExpectQuery(`JOIN participants p ON p.challenge_id = c.id`).
			WithArgs(int64(8152)).
			WillReturnRows(rows)

		got, err := repo.FindByParticipant(context.Background(), 8152)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(7), got[0].ID)
	})
}
