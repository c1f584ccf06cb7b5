package participantrepo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Find(ctx context.Context, fid, challengeID int64) (*domain.Participant, error) {
	query := `
        SELECT user_id, challenge_id, amount_contributed, created_at, updated_at
        FROM participants
        WHERE user_id = $1 AND challenge_id = $2
    `
	var p domain.Participant
	err := r.db.QueryRow(ctx, query, fid, challengeID).
		Scan(&p.UserID, &p.ChallengeID, &p.AmountContributed, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find participant", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

// Create relies on the composite primary key to reject duplicate joins;
// the unique-violation error is surfaced to the caller.
func (r *Repository) Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error) {
	query := `
        INSERT INTO participants (user_id, challenge_id, amount_contributed)
        VALUES ($1, $2, $3)
        RETURNING user_id, challenge_id, amount_contributed, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, participant.UserID, participant.ChallengeID, participant.AmountContributed).
		Scan(&participant.UserID, &participant.ChallengeID, &participant.AmountContributed,
			&participant.CreatedAt, &participant.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save participant", zap.Error(err))
		return nil, err
	}
	return participant, nil
}

func (r *Repository) IncrementAmount(ctx context.Context, fid, challengeID, delta int64) error {
	query := `
        UPDATE participants
        SET amount_contributed = amount_contributed + $1,
            updated_at = now()
        WHERE user_id = $2 AND challenge_id = $3
    `
	tag, err := r.db.Exec(ctx, query, delta, fid, challengeID)
	if err != nil {
		zap.L().Error("can't increment participant amount", zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) FindInfoByChallenge(ctx context.Context, challengeID int64) ([]domain.ParticipantInfo, error) {
	query := `
        SELECT p.user_id, u.username, u.display_name, u.profile_picture_url, p.amount_contributed
        FROM participants p
        JOIN users u ON u.id = p.user_id
        WHERE p.challenge_id = $1
        ORDER BY p.created_at
    `
	rows, err := r.db.Query(ctx, query, challengeID)
	if err != nil {
		zap.L().Error("can't get participants", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var infos []domain.ParticipantInfo
	for rows.Next() {
		var info domain.ParticipantInfo
		err := rows.Scan(&info.UserID, &info.Username, &info.DisplayName, &info.ProfilePictureURL, &info.AmountContributed)
		if err != nil {
			zap.L().Error("can't scan participant row", zap.Error(err))
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (r *Repository) CountByUser(ctx context.Context, fid int64) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM participants
        WHERE user_id = $1
    `
	var count int
	err := r.db.QueryRow(ctx, query, fid).Scan(&count)
	if err != nil {
		zap.L().Error("can't count participants", zap.Error(err))
		return 0, err
	}
	return count, nil
}
