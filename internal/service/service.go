package service

import (
	"github.com/saveup/saveup/internal/handlers/auth"
	"github.com/saveup/saveup/internal/handlers/challenges"
	"github.com/saveup/saveup/internal/handlers/participants"

	pkgauth "github.com/saveup/saveup/pkg/auth"

	"github.com/saveup/saveup/internal/farcaster"
	"github.com/saveup/saveup/internal/pg"
	"github.com/saveup/saveup/internal/repo"
	authservice "github.com/saveup/saveup/internal/service/authservice"
	challengeservice "github.com/saveup/saveup/internal/service/challengeservice"
	depositservice "github.com/saveup/saveup/internal/service/depositservice"
	participantservice "github.com/saveup/saveup/internal/service/participantservice"
)

// DepositService stays concrete: the reconciler needs its ledger
// methods on top of the handler-facing Deposit.
type Services struct {
	AuthService        auth.Service
	ChallengeService   challenges.Service
	ParticipantService participants.Service
	DepositService     *depositservice.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, verifier farcaster.VerifierI) *Services {
	authService := authservice.New(verifier, &pkgauth.JWTService{}, repo.UserRepo, repo.ParticipantRepo)
	challengeService := challengeservice.New(repo.ChallengeRepo, repo.ParticipantRepo, repo.UserRepo, txManager)
	participantService := participantservice.New(repo.ChallengeRepo, repo.ParticipantRepo, repo.UserRepo, txManager)
	depositService := depositservice.New(repo.ChallengeRepo, repo.ParticipantRepo, repo.ContributionRepo, repo.UserRepo, txManager)

	return &Services{
		AuthService:        authService,
		ChallengeService:   challengeService,
		ParticipantService: participantService,
		DepositService:     depositService,
	}
}
