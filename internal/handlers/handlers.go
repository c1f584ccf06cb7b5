package handlers

import (
	"net/http"

	_ "github.com/saveup/saveup/docs"
	authhandlers "github.com/saveup/saveup/internal/handlers/auth"
	challengehandlers "github.com/saveup/saveup/internal/handlers/challenges"
	deposithandlers "github.com/saveup/saveup/internal/handlers/deposits"
	participanthandlers "github.com/saveup/saveup/internal/handlers/participants"
	"github.com/saveup/saveup/internal/service"
	"github.com/saveup/saveup/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Verify(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
}

type ChallengeHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	GetProgress(w http.ResponseWriter, r *http.Request)
}

type ParticipantHandler interface {
	Join(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type DepositHandler interface {
	Deposit(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	ChallengeHandler   ChallengeHandler
	ParticipantHandler ParticipantHandler
	DepositHandler     DepositHandler
}

func New(s *service.Services, progressReader challengehandlers.ProgressReader) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		ChallengeHandler:   challengehandlers.New(s.ChallengeService, progressReader),
		ParticipantHandler: participanthandlers.New(s.ParticipantService),
		DepositHandler:     deposithandlers.New(s.DepositService),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/verify", h.AuthHandler.Verify)
		r.Get("/users/{id}", h.AuthHandler.GetUser)

		r.Route("/challenges", func(r chi.Router) {
			r.Get("/", h.ChallengeHandler.List)
			r.Get("/{id}", h.ChallengeHandler.Get)
			r.Get("/{id}/participants", h.ParticipantHandler.List)
			r.Get("/{id}/progress", h.ChallengeHandler.GetProgress)

			r.Group(func(r chi.Router) {
				r.Use(auth.AuthMiddleware)
				r.Post("/", h.ChallengeHandler.Create)
				r.Post("/{id}/participants", h.ParticipantHandler.Join)
				r.Post("/{id}/deposit", h.DepositHandler.Deposit)
			})
		})
	})

	return r
}
