package participantservice

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/pg"
)

type mocks struct {
	challengeRepo   *MockChallengeRepo
	participantRepo *MockParticipantRepo
	userRepo        *MockUserRepo
	txManager       *pg.MockTXManager
}

func NewMock(t *testing.T) (*Service, *mocks) {
	ctrl := gomock.NewController(t)
	m := &mocks{
		challengeRepo:   NewMockChallengeRepo(ctrl),
		participantRepo: NewMockParticipantRepo(ctrl),
		userRepo:        NewMockUserRepo(ctrl),
		txManager:       pg.NewMockTXManager(ctrl),
	}
	service := New(m.challengeRepo, m.participantRepo, m.userRepo, m.txManager)
	defer ctrl.Finish()
	return service, m
}

func passthroughTx(m *mocks) {
	m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn pg.TransactionalFn) error {
			return fn(ctx)
		})
}

func TestJoin(t *testing.T) {
	service, m := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Unknown challenge",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).Return(nil, nil)
			},
			expectedError: ErrChallengeNotFound,
		},
		{
			name: "Already a participant",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
					Return(&domain.Challenge{ID: 7}, nil)
				m.participantRepo.EXPECT().Find(gomock.Any(), int64(8152), int64(7)).
					Return(&domain.Participant{UserID: 8152, ChallengeID: 7}, nil)
			},
			expectedError: ErrAlreadyParticipant,
		},
		{
			name: "Concurrent join hits the primary key",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
					Return(&domain.Challenge{ID: 7}, nil)
				m.participantRepo.EXPECT().Find(gomock.Any(), int64(8152), int64(7)).Return(nil, nil)
				m.txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
					Return(&pgconn.PgError{Code: "23505"})
			},
			expectedError: ErrAlreadyParticipant,
		},
		{
			name: "New participant with an existing profile",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
					Return(&domain.Challenge{ID: 7}, nil)
				m.participantRepo.EXPECT().Find(gomock.Any(), int64(8152), int64(7)).Return(nil, nil)
				passthroughTx(m)
				m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).
					Return(&domain.User{ID: 8152}, nil)
				m.participantRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
						assert.Equal(t, int64(8152), p.UserID)
						assert.Equal(t, int64(7), p.ChallengeID)
						return p, nil
					})
			},
		},
		{
			name: "First contact creates the user first",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
					Return(&domain.Challenge{ID: 7}, nil)
				m.participantRepo.EXPECT().Find(gomock.Any(), int64(8152), int64(7)).Return(nil, nil)
				passthroughTx(m)
				m.userRepo.EXPECT().FindByID(gomock.Any(), int64(8152)).Return(nil, nil)
				m.userRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
						assert.Equal(t, "alice", u.Username)
						return u, nil
					})
				m.participantRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, p *domain.Participant) (*domain.Participant, error) {
						return p, nil
					})
			},
		},
		{
			name: "Lookup failure propagates",
			prepareMock: func() {
				m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
					Return(nil, errors.New("some error"))
			},
			expectedError: errors.New("some error"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			err := service.Join(context.Background(), 7, 8152, "alice", "Alice", "")
			if tt.expectedError != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedError.Error(), err.Error())
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestList(t *testing.T) {
	service, m := NewMock(t)

	t.Run("Unknown challenge", func(t *testing.T) {
		m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(99)).Return(nil, nil)
		_, err := service.List(context.Background(), 99)
		assert.ErrorIs(t, err, ErrChallengeNotFound)
	})

	t.Run("Participants come back with profile totals", func(t *testing.T) {
		m.challengeRepo.EXPECT().FindByID(gomock.Any(), int64(7)).
			Return(&domain.Challenge{ID: 7}, nil)
		m.participantRepo.EXPECT().FindInfoByChallenge(gomock.Any(), int64(7)).
			Return([]domain.ParticipantInfo{
				{UserID: 8152, Username: "alice", AmountContributed: 25_000000},
			}, nil)
		got, err := service.List(context.Background(), 7)
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		assert.Equal(t, int64(25_000000), got[0].AmountContributed)
	})
}
