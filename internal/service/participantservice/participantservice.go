package participantservice

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type ChallengeRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Challenge, error)
}

type ParticipantRepo interface {
	Find(ctx context.Context, fid, challengeID int64) (*domain.Participant, error)
	Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
	FindInfoByChallenge(ctx context.Context, challengeID int64) ([]domain.ParticipantInfo, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, fid int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

var (
	ErrChallengeNotFound  = errors.New("challenge not found")
	ErrAlreadyParticipant = errors.New("user is already a participant")
)

type Service struct {
	challengeRepo   ChallengeRepo
	participantRepo ParticipantRepo
	userRepo        UserRepo
	txManager       pg.TXManager
}

func New(challengeRepo ChallengeRepo, participantRepo ParticipantRepo, userRepo UserRepo, txManager pg.TXManager) *Service {
	return &Service{
		challengeRepo:   challengeRepo,
		participantRepo: participantRepo,
		userRepo:        userRepo,
		txManager:       txManager,
	}
}

// Join adds a user to a challenge. The duplicate check runs first for a
// friendly error, but the participants primary key is what actually
// closes the race between two concurrent joins.
func (s *Service) Join(ctx context.Context, challengeID, fid int64, username, displayName, profilePictureURL string) error {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return err
	}
	if challenge == nil {
		return ErrChallengeNotFound
	}

	existing, err := s.participantRepo.Find(ctx, fid, challengeID)
	if err != nil {
		return err
	}
	if existing != nil {
		zap.L().Info("user is already a participant",
			zap.Int64("fid", fid), zap.Int64("challengeID", challengeID))
		return ErrAlreadyParticipant
	}

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByID(ctx, fid)
		if err != nil {
			return err
		}
		if user == nil {
			_, err = s.userRepo.Create(ctx, &domain.User{
				ID:                fid,
				Username:          username,
				DisplayName:       displayName,
				ProfilePictureURL: profilePictureURL,
			})
			if err != nil {
				return err
			}
		}
		_, err = s.participantRepo.Create(ctx, &domain.Participant{
			UserID:      fid,
			ChallengeID: challengeID,
		})
		return err
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return ErrAlreadyParticipant
		}
		zap.L().Error("can't join challenge", zap.Error(err))
		return err
	}

	return nil
}

func (s *Service) List(ctx context.Context, challengeID int64) ([]domain.ParticipantInfo, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrChallengeNotFound
	}

	participants, err := s.participantRepo.FindInfoByChallenge(ctx, challengeID)
	if err != nil {
		zap.L().Error("failed to fetch participants", zap.Error(err))
		return nil, err
	}
	return participants, nil
}
