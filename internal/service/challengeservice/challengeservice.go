package challengeservice

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type ChallengeRepo interface {
	FindByID(ctx context.Context, id int64) (*domain.Challenge, error)
	Save(ctx context.Context, challenge *domain.Challenge) (*domain.Challenge, error)
	FindAll(ctx context.Context) ([]domain.Challenge, error)
	FindByParticipant(ctx context.Context, fid int64) ([]domain.Challenge, error)
}

type ParticipantRepo interface {
	Create(ctx context.Context, participant *domain.Participant) (*domain.Participant, error)
	FindInfoByChallenge(ctx context.Context, challengeID int64) ([]domain.ParticipantInfo, error)
}

type UserRepo interface {
	FindByID(ctx context.Context, fid int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

const (
	minNameLen = 3
	maxNameLen = 256
)

var (
	ErrChallengeExists   = errors.New("challenge already exists")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrInvalidName       = errors.New("challenge name must be between 3 and 256 characters")
	ErrInvalidGoal       = errors.New("goal amount must be positive")
	ErrInvalidID         = errors.New("challenge id must be positive")
)

// CreateParams mirrors the on-chain creation: the id and optional
// transaction hash come from the already observed createChallenge call.
type CreateParams struct {
	ChallengeID       int64
	CreatorFID        int64
	Name              string
	Description       string
	GoalAmount        int64
	TargetDate        *time.Time
	TransactionHash   string
	Username          string
	DisplayName       string
	ProfilePictureURL string
}

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

// Create mirrors an on-chain challenge into the off-chain ledger and
// enrolls the creator as its first participant.
func (s *Service) Create(ctx context.Context, params CreateParams) (*domain.Challenge, error) {
	if params.ChallengeID <= 0 {
		return nil, ErrInvalidID
	}
	if nameLen := utf8.RuneCountInString(params.Name); nameLen < minNameLen || nameLen > maxNameLen {
		return nil, ErrInvalidName
	}
	if params.GoalAmount <= 0 {
		return nil, ErrInvalidGoal
	}

	existing, err := s.challengeRepo.FindByID(ctx, params.ChallengeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		zap.L().Info("challenge already exists", zap.Int64("challengeID", params.ChallengeID))
		return nil, ErrChallengeExists
	}

	challenge := &domain.Challenge{
		ID:         params.ChallengeID,
		Name:       params.Name,
		GoalAmount: params.GoalAmount,
		TargetDate: params.TargetDate,
		CreatorID:  params.CreatorFID,
	}
	if params.Description != "" {
		challenge.Description = &params.Description
	}
	if params.TransactionHash != "" {
		challenge.TransactionHash = &params.TransactionHash
	}

	var saved *domain.Challenge
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.ensureUser(ctx, params); err != nil {
			return err
		}
		var saveErr error
		saved, saveErr = s.challengeRepo.Save(ctx, challenge)
		if saveErr != nil {
			return saveErr
		}
		_, saveErr = s.participantRepo.Create(ctx, &domain.Participant{
			UserID:      params.CreatorFID,
			ChallengeID: saved.ID,
		})
		return saveErr
	})
	if err != nil {
		if pg.IsUniqueViolation(err) {
			return nil, ErrChallengeExists
		}
		zap.L().Error("can't create challenge", zap.Error(err))
		return nil, err
	}

	return saved, nil
}

// List returns the caller's challenges, or every challenge when fid is 0.
func (s *Service) List(ctx context.Context, fid int64) ([]domain.Challenge, error) {
	var (
		challenges []domain.Challenge
		err        error
	)
	if fid > 0 {
		challenges, err = s.challengeRepo.FindByParticipant(ctx, fid)
	} else {
		challenges, err = s.challengeRepo.FindAll(ctx)
	}
	if err != nil {
		zap.L().Error("failed to list challenges", zap.Error(err))
		return nil, err
	}
	return challenges, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Challenge, []domain.ParticipantInfo, error) {
	challenge, err := s.challengeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if challenge == nil {
		return nil, nil, ErrChallengeNotFound
	}

	participants, err := s.participantRepo.FindInfoByChallenge(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return challenge, participants, nil
}

func (s *Service) ensureUser(ctx context.Context, params CreateParams) error {
	user, err := s.userRepo.FindByID(ctx, params.CreatorFID)
	if err != nil {
		return err
	}
	if user != nil {
		return nil
	}
	_, err = s.userRepo.Create(ctx, &domain.User{
		ID:                params.CreatorFID,
		Username:          params.Username,
		DisplayName:       params.DisplayName,
		ProfilePictureURL: params.ProfilePictureURL,
	})
	return err
}
