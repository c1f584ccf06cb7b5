package authservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/farcaster"
	"github.com/saveup/saveup/pkg/auth"
)

type mocks struct {
	verifier        *farcaster.MockVerifierI
	userRepo        *MockUserRepo
	participantRepo *MockParticipantRepo
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		verifier:        farcaster.NewMockVerifierI(ctrl),
		userRepo:        NewMockUserRepo(ctrl),
		participantRepo: NewMockParticipantRepo(ctrl),
	}
	service := New(m.verifier, &auth.JWTService{}, m.userRepo, m.participantRepo)
	defer ctrl.Finish()
	return service, m
}

func TestVerify(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedFID   int64
		expectedError error
	}{
		{
			name: "Hub rejects the signature",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(&farcaster.Verification{IsValid: false}, nil)
			},
			expectedError: ErrInvalidSignature,
		},
		{
			name: "Hub accepts but returns no fid",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(&farcaster.Verification{IsValid: true}, nil)
			},
			expectedError: ErrInvalidSignature,
		},
		{
			name: "Hub unreachable",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(nil, farcaster.ErrHubUnavailable)
			},
			expectedError: farcaster.ErrHubUnavailable,
		},
		{
			name: "Known user gets a token",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(&farcaster.Verification{IsValid: true, FID: 8152}, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).
					Return(&domain.User{ID: 8152}, nil)
			},
			expectedFID: 8152,
		},
		{
			name: "First sign-in registers the user",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(&farcaster.Verification{IsValid: true, FID: 8152}, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).Return(nil, nil)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.Equal(t, "alice", u.Username)
						return u, nil
					})
			},
			expectedFID: 8152,
		},
		{
			name: "User creation failure propagates",
			prepareMock: func() {
				m.verifier.EXPECT().VerifyMessage(gomock.Any(), "msg", "sig", "nonce").
					Return(&farcaster.Verification{IsValid: true, FID: 8152}, nil)
				m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).Return(nil, nil)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			fid, token, err := service.Verify(context.Background(), "msg", "sig", "nonce", "alice", "Alice", "")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.ErrorContains(t, err, tt.expectedError.Error())
				assert.Empty(t, token)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedFID, fid)

			claims, err := (&auth.JWTService{}).ValidateToken(token)
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedFID, claims.FID)
		})
	}
}

func TestGetUser(t *testing.T) {
	service, m := NewMock(t)

	t.Run("Unknown user", func(t *testing.T) {
		m.userRepo.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
		_, _, err := service.GetUser(context.Background(), 99)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Profile with challenge count", func(t *testing.T) {
		m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).
			Return(&domain.User{ID: 8152, Username: "alice"}, nil)
		m.participantRepo.EXPECT().CountByUser(gomock.Any(), int64(8152)).Return(3, nil)
		user, total, err := service.GetUser(context.Background(), 8152)
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, 3, total)
	})
}
