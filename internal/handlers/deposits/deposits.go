package deposits

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/dto"
	"github.com/saveup/saveup/internal/service/depositservice"
	"github.com/saveup/saveup/pkg/auth"
	"github.com/saveup/saveup/pkg/money"
	"github.com/saveup/saveup/pkg/utils"
)

type Service interface {
	Deposit(ctx context.Context, challengeID, fid, amount int64, txHash string) (*domain.Challenge, error)
}

type DepositHandler struct {
	depositService Service
}

func New(depositService Service) *DepositHandler {
	return &DepositHandler{
		depositService: depositService,
	}
}

// Deposit godoc
//
//	@Summary		Credit a contribution
//	@Description	Apply an additive ledger credit for an already submitted on-chain contribution
//	@Tags			Deposits
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Challenge id"
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit request body"
//	@Success		200		{object}	dto.ChallengeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		404		{object}	utils.Response	"Challenge not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/challenges/{id}/deposit [post]
func (h *DepositHandler) Deposit(w http.ResponseWriter, r *http.Request) {
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
	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	amount, err := money.ParseAmount(req.Amount.String(), money.TokenDecimals)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		return
	}
	challenge, err := h.depositService.Deposit(r.Context(), challengeID, fid, amount, req.TransactionHash)
	if err != nil {
		switch {
		case errors.Is(err, depositservice.ErrChallengeNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Challenge not found")
		case errors.Is(err, depositservice.ErrInvalidAmount):
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid amount")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toChallengeDTO(challenge))
}

func toChallengeDTO(c *domain.Challenge) dto.ChallengeResponseDTO {
	resp := dto.ChallengeResponseDTO{
		ID:               c.ID,
		Name:             c.Name,
		Description:      c.Description,
		GoalAmount:       money.Format(c.GoalAmount, money.TokenDecimals),
		CurrentAmount:    money.Format(c.CurrentAmount, money.TokenDecimals),
		TotalContributed: money.Format(c.TotalContributed, money.TokenDecimals),
		TargetDate:       c.TargetDate,
		TransactionHash:  c.TransactionHash,
		CreatorID:        c.CreatorID,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.GoalAmount > 0 {
		resp.Progress = float64(c.CurrentAmount) / float64(c.GoalAmount) * 100
	}
	return resp
}
