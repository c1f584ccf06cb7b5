package contributionrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

const contributionColumns = `id, challenge_id, user_id, amount, tx_hash, status, attempts, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanContribution(row pgx.Row) (*domain.Contribution, error) {
	var c domain.Contribution
	err := row.Scan(&c.ID, &c.ChallengeID, &c.UserID, &c.Amount, &c.TxHash,
		&c.Status, &c.Attempts, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByTxHash is the dedup lookup for the idempotency key.
func (r *Repository) FindByTxHash(ctx context.Context, txHash string) (*domain.Contribution, error) {
	query := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE tx_hash = $1
    `
	contribution, err := scanContribution(r.db.QueryRow(ctx, query, txHash))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find contribution", zap.Error(err))
		return nil, err
	}
	return contribution, nil
}

func (r *Repository) Create(ctx context.Context, contribution *domain.Contribution) (*domain.Contribution, error) {
	query := `
        INSERT INTO contributions (challenge_id, user_id, amount, tx_hash, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + contributionColumns + `
    `
	saved, err := scanContribution(r.db.QueryRow(ctx, query,
		contribution.ChallengeID, contribution.UserID, contribution.Amount,
		contribution.TxHash, contribution.Status))
	if err != nil {
		zap.L().Error("can't save contribution", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

// ClaimPending flips a PENDING contribution to CREDITED and reports
// whether this caller won the flip. The status predicate makes the credit
// single-winner when the deposit path and the reconciler race on one row.
func (r *Repository) ClaimPending(ctx context.Context, id int64) (bool, error) {
	query := `
        UPDATE contributions
        SET status = 'CREDITED', updated_at = now()
        WHERE id = $1 AND status = 'PENDING'
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't claim contribution", zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
        UPDATE contributions
        SET status = $1, updated_at = now()
        WHERE id = $2
    `
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		zap.L().Error("can't update contribution status", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) IncrementAttempts(ctx context.Context, id int64) error {
	query := `
        UPDATE contributions
        SET attempts = attempts + 1, updated_at = now()
        WHERE id = $1
    `
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("can't increment contribution attempts", zap.Error(err))
	}
	return err
}

// FindForProcessing returns pending contributions for the background
// reconciler, oldest first.
func (r *Repository) FindForProcessing(ctx context.Context, limit uint32) ([]domain.Contribution, error) {
	query := `
        SELECT ` + contributionColumns + `
        FROM contributions
        WHERE status = 'PENDING'
        ORDER BY created_at
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("can't get pending contributions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var contributions []domain.Contribution
	for rows.Next() {
		var c domain.Contribution
		err := rows.Scan(&c.ID, &c.ChallengeID, &c.UserID, &c.Amount, &c.TxHash,
			&c.Status, &c.Attempts, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan contribution row", zap.Error(err))
			return nil, err
		}
		contributions = append(contributions, c)
	}
	return contributions, nil
}
