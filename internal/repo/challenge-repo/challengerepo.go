package challengerepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

const challengeColumns = `id, name, description, goal_amount, current_amount,
        total_amount_contributed, target_date, transaction_hash, creator_id, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanChallenge(row pgx.Row) (*domain.Challenge, error) {
	var c domain.Challenge
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.GoalAmount, &c.CurrentAmount,
		&c.TotalContributed, &c.TargetDate, &c.TransactionHash, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Challenge, error) {
	query := `
        SELECT ` + challengeColumns + `
        FROM challenges
        WHERE id = $1
    `
	challenge, err := scanChallenge(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find challenge", zap.Error(err))
		return nil, err
	}
	return challenge, nil
}

// Save inserts a challenge with its caller-supplied on-chain id. The id
// column is never generated here.
func (r *Repository) Save(ctx context.Context, challenge *domain.Challenge) (*domain.Challenge, error) {
	query := `
        INSERT INTO challenges (id, name, description, goal_amount, target_date, transaction_hash, creator_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING ` + challengeColumns + `
    `
	saved, err := scanChallenge(r.db.QueryRow(ctx, query,
		challenge.ID, challenge.Name, challenge.Description, challenge.GoalAmount,
		challenge.TargetDate, challenge.TransactionHash, challenge.CreatorID))
	if err != nil {
		zap.L().Error("can't save challenge", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.Challenge, error) {
	query := `
        SELECT ` + challengeColumns + `
        FROM challenges
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't get challenges", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectChallenges(rows)
}

func (r *Repository) FindByParticipant(ctx context.Context, fid int64) ([]domain.Challenge, error) {
	query := `
        SELECT c.id, c.name, c.description, c.goal_amount, c.current_amount,
               c.total_amount_contributed, c.target_date, c.transaction_hash, c.creator_id, c.created_at, c.updated_at
        FROM challenges c
        JOIN participants p ON p.challenge_id = c.id
        WHERE p.user_id = $1
        ORDER BY c.created_at DESC
    `
	rows, err := r.db.Query(ctx, query, fid)
	if err != nil {
		zap.L().Error("can't get challenges by participant", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	return collectChallenges(rows)
}

// ApplyContribution adds delta to both aggregate columns as a single
// additive write, relying on the datastore's row-level serialization.
func (r *Repository) ApplyContribution(ctx context.Context, id int64, delta int64) (*domain.Challenge, error) {
	query := `
        UPDATE challenges
        SET current_amount = current_amount + $1,
            total_amount_contributed = total_amount_contributed + $1,
            updated_at = now()
        WHERE id = $2
        RETURNING ` + challengeColumns + `
    `
	updated, err := scanChallenge(r.db.QueryRow(ctx, query, delta, id))
	if err != nil {
		zap.L().Error("can't apply contribution", zap.Error(err))
		return nil, err
	}
	return updated, nil
}

func collectChallenges(rows pgx.Rows) ([]domain.Challenge, error) {
	var challenges []domain.Challenge
	for rows.Next() {
		var c domain.Challenge
		err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.GoalAmount, &c.CurrentAmount,
			&c.TotalContributed, &c.TargetDate, &c.TransactionHash, &c.CreatorID, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan challenge row", zap.Error(err))
			return nil, err
		}
		challenges = append(challenges, c)
	}
	return challenges, nil
}
