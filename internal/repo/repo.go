package repo

import (
	"github.com/saveup/saveup/internal/pg"
	challengerepo "github.com/saveup/saveup/internal/repo/challenge-repo"
	contributionrepo "github.com/saveup/saveup/internal/repo/contribution-repo"
	participantrepo "github.com/saveup/saveup/internal/repo/participant-repo"
	userrepo "github.com/saveup/saveup/internal/repo/user-repo"
)

type Repositories struct {
	UserRepo         *userrepo.Repository
	ChallengeRepo    *challengerepo.Repository
	ParticipantRepo  *participantrepo.Repository
	ContributionRepo *contributionrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:         userrepo.New(conn),
		ChallengeRepo:    challengerepo.New(conn),
		ParticipantRepo:  participantrepo.New(conn),
		ContributionRepo: contributionrepo.New(conn),
	}
}
