package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/farcaster"
	"github.com/saveup/saveup/pkg/auth"
)

type UserRepo interface {
	FindByID(ctx context.Context, fid int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type ParticipantRepo interface {
	CountByUser(ctx context.Context, fid int64) (int, error)
}

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUserNotFound     = errors.New("user not found")
)

const tokenTTL = 24 * time.Hour

type Service struct {
	verifier        farcaster.VerifierI
	jwtService      auth.JWTServiceInterface
	userRepo        UserRepo
	participantRepo ParticipantRepo
}

func New(verifier farcaster.VerifierI, jwtService auth.JWTServiceInterface, userRepo UserRepo, participantRepo ParticipantRepo) *Service {
	return &Service{
		verifier:        verifier,
		jwtService:      jwtService,
		userRepo:        userRepo,
		participantRepo: participantRepo,
	}
}

// Verify checks a signed sign-in payload against the hub and, when valid,
// upserts the user and issues a session token bound to the fid.
func (s *Service) Verify(ctx context.Context, message, signature, nonce, username, displayName, profilePictureURL string) (int64, string, error) {
	verification, err := s.verifier.VerifyMessage(ctx, message, signature, nonce)
	if err != nil {
		return 0, "", err
	}
	if !verification.IsValid || verification.FID == 0 {
		zap.L().Info("signature rejected by hub")
		return 0, "", ErrInvalidSignature
	}
	fid := verification.FID

	user, err := s.userRepo.FindByID(ctx, fid)
	if err != nil {
		return 0, "", err
	}
	if user == nil {
		_, err = s.userRepo.Create(ctx, &domain.User{
			ID:                fid,
			Username:          username,
			DisplayName:       displayName,
			ProfilePictureURL: profilePictureURL,
		})
		if err != nil {
			zap.L().Error("can't create user", zap.Int64("fid", fid), zap.Error(err))
			return 0, "", err
		}
	}

	token, err := s.jwtService.GenerateJWT(fid, time.Now().Add(tokenTTL))
	if err != nil {
		zap.L().Error("can't issue token", zap.Error(err))
		return 0, "", err
	}
	return fid, token, nil
}

// GetUser returns the stored profile plus the number of challenges the
// user participates in.
func (s *Service) GetUser(ctx context.Context, fid int64) (*domain.User, int, error) {
	user, err := s.userRepo.FindByID(ctx, fid)
	if err != nil {
		return nil, 0, err
	}
	if user == nil {
		return nil, 0, ErrUserNotFound
	}

	total, err := s.participantRepo.CountByUser(ctx, fid)
	if err != nil {
		return nil, 0, err
	}
	return user, total, nil
}
