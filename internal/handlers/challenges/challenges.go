package challenges

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/dto"
	"github.com/saveup/saveup/internal/service/challengeservice"
	"github.com/saveup/saveup/pkg/auth"
	"github.com/saveup/saveup/pkg/money"
	"github.com/saveup/saveup/pkg/utils"
)

type Service interface {
	Create(ctx context.Context, params challengeservice.CreateParams) (*domain.Challenge, error)
	List(ctx context.Context, fid int64) ([]domain.Challenge, error)
	Get(ctx context.Context, id int64) (*domain.Challenge, []domain.ParticipantInfo, error)
}

// ProgressReader proxies the vault's per-user progress view.
type ProgressReader interface {
	GetUserProgress(ctx context.Context, challengeID int64, user common.Address) (*big.Int, *big.Int, error)
}

type ChallengeHandler struct {
	challengeService Service
	progressReader   ProgressReader
}

func New(challengeService Service, progressReader ProgressReader) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		progressReader:   progressReader,
	}
}

// Create godoc
//
//	@Summary		Mirror an on-chain challenge
//	@Description	Record a challenge created on-chain, with its caller-supplied id, into the off-chain ledger
//	@Tags			Challenges
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateChallengeRequestDTO	true	"Create challenge request body"
//	@Success		201		{object}	dto.ChallengeResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Challenge already exists"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/challenges [post]
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	fid, ok := r.Context().Value(auth.FIDKey).(int64)
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var req dto.CreateChallengeRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal, err := money.ParseAmount(req.GoalAmount.String(), money.TokenDecimals)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid goal amount")
		return
	}
	var targetDate *time.Time
	if req.TargetDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.TargetDate)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid target date")
			return
		}
		targetDate = &parsed
	}

	challenge, err := h.challengeService.Create(r.Context(), challengeservice.CreateParams{
		ChallengeID:       req.ChallengeID,
		CreatorFID:        fid,
		Name:              req.Name,
		Description:       req.Description,
		GoalAmount:        goal,
		TargetDate:        targetDate,
		TransactionHash:   req.TransactionHash,
		Username:          req.Username,
		DisplayName:       req.DisplayName,
		ProfilePictureURL: req.ProfilePictureURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, challengeservice.ErrChallengeExists):
			utils.RespondWithError(w, http.StatusConflict, "Challenge already exists")
		case errors.Is(err, challengeservice.ErrInvalidName),
			errors.Is(err, challengeservice.ErrInvalidGoal),
			errors.Is(err, challengeservice.ErrInvalidID):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toChallengeDTO(challenge, nil))
}

// List godoc
//
//	@Summary		List challenges
//	@Description	List all challenges, or only those the given user participates in
//	@Tags			Challenges
//	@Produce		json
//	@Param			fid	query		int	false	"Filter by participant fid"
//	@Success		200	{array}		dto.ChallengeResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid fid"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges [get]
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	var fid int64
	if raw := r.URL.Query().Get("fid"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid fid")
			return
		}
		fid = parsed
	}
	list, err := h.challengeService.List(r.Context(), fid)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	resp := make([]dto.ChallengeResponseDTO, 0, len(list))
	for i := range list {
		resp = append(resp, toChallengeDTO(&list[i], nil))
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// Get godoc
//
//	@Summary		Get a challenge
//	@Description	Return a challenge with its participants
//	@Tags			Challenges
//	@Produce		json
//	@Param			id	path		int	true	"Challenge id"
//	@Success		200	{object}	dto.ChallengeResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid challenge id"
//	@Failure		404	{object}	utils.Response	"Challenge not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/challenges/{id} [get]
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	challenge, participants, err := h.challengeService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, challengeservice.ErrChallengeNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toChallengeDTO(challenge, participants))
}

// GetProgress godoc
//
//	@Summary		Get on-chain progress for an address
//	@Description	Proxy the vault's getUserProgress view for the given wallet address
//	@Tags			Challenges
//	@Produce		json
//	@Param			id		path		int		true	"Challenge id"
//	@Param			address	query		string	true	"Wallet address"
//	@Success		200		{object}	dto.ProgressResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid address"
//	@Failure		502		{object}	utils.Response	"Chain unavailable"
//	@Router			/api/challenges/{id}/progress [get]
func (h *ChallengeHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid challenge id")
		return
	}
	address := r.URL.Query().Get("address")
	if !common.IsHexAddress(address) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid address")
		return
	}
	contribution, target, err := h.progressReader.GetUserProgress(r.Context(), id, common.HexToAddress(address))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadGateway, "Chain unavailable")
		return
	}
	contributionMinor, err := money.FromWei(contribution)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	targetMinor, err := money.FromWei(target)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ProgressResponseDTO{
		Contribution: money.Format(contributionMinor, money.TokenDecimals),
		Target:       money.Format(targetMinor, money.TokenDecimals),
	})
}

func toChallengeDTO(c *domain.Challenge, participants []domain.ParticipantInfo) dto.ChallengeResponseDTO {
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
	for _, p := range participants {
		resp.Participants = append(resp.Participants, dto.ParticipantResponseDTO{
			FID:               p.UserID,
			Username:          p.Username,
			DisplayName:       p.DisplayName,
			ProfilePictureURL: p.ProfilePictureURL,
			AmountContributed: money.Format(p.AmountContributed, money.TokenDecimals),
		})
	}
	return resp
}
