package depositservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type ChallengeRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Challenge, error)
	ApplyContribution(ctx context.Context, id int64, delta int64) (*domain.Challenge, error)
}

type ParticipantRepo interface {
	Find(ctx context.Context, fid, challengeID int64) (*domain.Participant, error)
	Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
	IncrementAmount(ctx context.Context, fid, challengeID, delta int64) error
}

type ContributionRepo interface {
	FindByTxHash(ctx context.Context, txHash string) (*domain.Contribution, error)
	Create(ctx context.Context, contribution *domain.Contribution) (*domain.Contribution, error)
	ClaimPending(ctx context.Context, id int64) (bool, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, fid int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

// Contribution lifecycle statuses.
const (
	// StatusPending means the transaction is recorded but its receipt has
	// not been confirmed; the background reconciler owns it.
	StatusPending string = "PENDING"
	// StatusCredited means the off-chain ledger reflects the amount.
	StatusCredited string = "CREDITED"
	// StatusReverted means the transaction failed on-chain; no credit.
	StatusReverted string = "REVERTED"
	// StatusExpired means the receipt never appeared within the deadline.
	StatusExpired string = "EXPIRED"
)

var (
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrAlreadyCredited   = errors.New("contribution already credited")
)

type Service struct {
	challengeRepo    ChallengeRepo
	participantRepo  ParticipantRepo
	contributionRepo ContributionRepo
	userRepo         UserRepo
	txManager        pg.TXManager
}

func New(challengeRepo ChallengeRepo, participantRepo ParticipantRepo, contributionRepo ContributionRepo, userRepo UserRepo, txManager pg.TXManager) *Service {
	return &Service{
		challengeRepo:    challengeRepo,
		participantRepo:  participantRepo,
		contributionRepo: contributionRepo,
		userRepo:         userRepo,
		txManager:        txManager,
	}
}

// Deposit applies an additive, trust-the-caller credit for an already
// submitted on-chain contribution. It is NOT atomic with the chain
// transfer; it is the at-least-attempted follow-up, made safe to retry by
// the tx-hash dedup key. A repeated call with the same hash returns the
// current challenge without crediting again.
func (s *Service) Deposit(ctx context.Context, challengeID, fid, amount int64, txHash string) (*domain.Challenge, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	if txHash != "" {
		existing, err := s.contributionRepo.FindByTxHash(ctx, txHash)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			if existing.Status == StatusCredited {
				zap.L().Warn("duplicate deposit ignored",
					zap.String("tx", txHash), zap.Int64("challengeID", challengeID))
				return challenge, nil
			}
			if err := s.Credit(ctx, existing); err != nil && !errors.Is(err, ErrAlreadyCredited) {
				return nil, err
			}
			return s.challengeRepo.FindByID(ctx, challengeID)
		}
	}

	var updated *domain.Challenge
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.ensureParticipant(ctx, fid, challengeID, amount); err != nil {
			return err
		}
		if txHash != "" {
			contribution := &domain.Contribution{
				ChallengeID: challengeID,
				UserID:      fid,
				Amount:      amount,
				TxHash:      txHash,
				Status:      StatusCredited,
			}
			if _, err := s.contributionRepo.Create(ctx, contribution); err != nil {
				return err
			}
		}
		var applyErr error
		updated, applyErr = s.challengeRepo.ApplyContribution(ctx, challengeID, amount)
		return applyErr
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			// Lost the race against a concurrent retry of the same hash.
			zap.L().Warn("concurrent duplicate deposit ignored", zap.String("tx", txHash))
			return s.challengeRepo.FindByID(ctx, challengeID)
		}
		zap.L().Error("failed to persist deposit", zap.Error(err),
			zap.Int64("challengeID", challengeID), zap.String("tx", txHash))
		return nil, err
	}

	return updated, nil
}

// Credit moves a recorded contribution into the ledger. Used by the
// reconciler once a pending transaction confirms; safe to call twice. The
// claim runs first inside the transaction so only one of two racing
// callers (deposit retry vs. reconciler) writes the aggregates — the
// in-memory Status alone is stale the moment the other side commits.
func (s *Service) Credit(ctx context.Context, contribution *domain.Contribution) error {
	if contribution.Status == StatusCredited {
		return ErrAlreadyCredited
	}

	return s.txManager.Begin(ctx, func(ctx context.Context) error {
		claimed, err := s.contributionRepo.ClaimPending(ctx, contribution.ID)
		if err != nil {
			return err
		}
		if !claimed {
			return ErrAlreadyCredited
		}
		if err := s.ensureParticipant(ctx, contribution.UserID, contribution.ChallengeID, contribution.Amount); err != nil {
			return err
		}
		_, err = s.challengeRepo.ApplyContribution(ctx, contribution.ChallengeID, contribution.Amount)
		return err
	})
}

// RecordPending stores a submitted-but-unconfirmed contribution so the
// background reconciler can credit it once the receipt appears.
func (s *Service) RecordPending(ctx context.Context, challengeID, fid, amount int64, txHash string) (*domain.Contribution, error) {
	contribution := &domain.Contribution{
		ChallengeID: challengeID,
		UserID:      fid,
		Amount:      amount,
		TxHash:      txHash,
		Status:      StatusPending,
	}
	saved, err := s.contributionRepo.Create(ctx, contribution)
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return s.contributionRepo.FindByTxHash(ctx, txHash)
		}
		return nil, err
	}
	return saved, nil
}

// ensureParticipant creates the (user, challenge) membership lazily so a
// confirmed on-chain contribution is never dropped, then folds the amount
// into it.
func (s *Service) ensureParticipant(ctx context.Context, fid, challengeID, amount int64) error {
	participant, err := s.participantRepo.Find(ctx, fid, challengeID)
	if err != nil {
		return err
	}
	if participant == nil {
		user, err := s.userRepo.FindByID(ctx, fid)
		if err != nil {
			return err
		}
		if user == nil {
			if _, err := s.userRepo.Create(ctx, &domain.User{ID: fid}); err != nil {
				return err
			}
		}
		_, err = s.participantRepo.Create(ctx, &domain.Participant{
			UserID:            fid,
			ChallengeID:       challengeID,
			AmountContributed: amount,
		})
		return err
	}
	return s.participantRepo.IncrementAmount(ctx, fid, challengeID, amount)
}
