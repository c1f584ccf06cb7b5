package participants

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/dto"
	"github.com/saveup/saveup/internal/service/participantservice"
	"github.com/saveup/saveup/pkg/auth"
	"github.com/saveup/saveup/pkg/money"
	"github.com/saveup/saveup/pkg/utils"
)

type Service interface {
	Join(ctx context.Context, challengeID, fid int64, username, displayName, profilePictureURL string) error
	List(ctx context.Context, challengeID int64) ([]domain.ParticipantInfo, error)
}

type ParticipantHandler struct {
	participantService Service
}

func New(participantService Service) *ParticipantHandler {
	return &ParticipantHandler{
		participantService: participantService,
	}
}

// Join godoc
//
//	@Summary		Join a challenge
//	@Description	Add the authenticated user to a challenge
//	@Tags			Participants
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"Challenge id"
//	@Param			request	body		dto.JoinRequestDTO	true	"Join request body"
//	@Success		200		{object}	dto.JoinResponseDTO
//	@Failure		400		{object}	utils.Response	"User is already a participant"
//	@Failure		404		{object}	utils.Response	"Challenge not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/challenges/{id}/participants [post]
func (h *ParticipantHandler) Join(w http.ResponseWriter, r *http.Request) {
	fid, ok := r.Context().Value(auth.FIDKey).(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	challengeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || challengeID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	var req dto.JoinRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	err = h.participantService.Join(r.Context(), challengeID, fid, req.Username, req.DisplayName, req.ProfilePictureURL)
	if err != nil {
		switch {
		case errors.Is(err, participantservice.ErrChallengeNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, participantservice.ErrAlreadyParticipant):
			utils.RespondWithError(w, http.StatusBadRequest, "User is already a participant")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.JoinResponseDTO{
		Message: "Successfully joined challenge",
	})
}

// List godoc
//
//	@Summary		List challenge participants
//	@Description	Return the participants of a challenge with their contributed totals
//	@Tags			Participants
//	@Produce		json
//	@Param			id	path		int	true	"Challenge id"
//	@Success		200	{array}		dto.ParticipantResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid challenge id"
//	@Failure		404	{object}	utils.Response	"Challenge not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id}/participants [get]
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	challengeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || challengeID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	participants, err := h.participantService.List(r.Context(), challengeID)
	if err != nil {
		if errors.Is(err, participantservice.ErrChallengeNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	resp := make([]dto.ParticipantResponseDTO, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, dto.ParticipantResponseDTO{
			FID:               p.UserID,
			Username:          p.Username,
			DisplayName:       p.DisplayName,
			ProfilePictureURL: p.ProfilePictureURL,
			AmountContributed: money.Format(p.AmountContributed, money.TokenDecimals),
		})
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
