package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saveup/saveup/internal/domain"
	"github.com/saveup/saveup/internal/dto"
	"github.com/saveup/saveup/internal/farcaster"
	"github.com/saveup/saveup/internal/service/authservice"
	"github.com/saveup/saveup/pkg/utils"
)

type Service interface {
	Verify(ctx context.Context, message, signature, nonce, username, displayName, profilePictureURL string) (int64, string, error)
	GetUser(ctx context.Context, fid int64) (*domain.User, int, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Verify godoc
//
//	@Summary		Verify a sign-in signature
//	@Description	Validate a signed sign-in payload against the identity hub and issue a session token
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.VerifyRequestDTO	true	"Verify request body"
//	@Success		200		{object}	dto.VerifyResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid signature"
//	@Failure		502		{object}	utils.Response	"Identity hub unavailable"
//	@Router			/api/auth/verify [post]
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequestDTO
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || req.Signature == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing message or signature")
		return
	}
	fid, token, err := h.authService.Verify(r.Context(), req.Message, req.Signature, req.Nonce,
		req.Username, req.DisplayName, req.ProfilePictureURL)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidSignature):
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid signature")
		case errors.Is(err, farcaster.ErrHubUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, "Identity hub unavailable")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	w.Header().Set("Authorization", "Bearer "+token)
	utils.RespondWithJSON(w, http.StatusOK, dto.VerifyResponseDTO{
		Success: true,
		FID:     fid,
		Token:   token,
	})
}

// GetUser godoc
//
//	@Summary		Get a user profile
//	@Description	Return the stored profile and the number of challenges the user participates in
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int	true	"User fid"
//	@Success		200	{object}	dto.UserResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid user id"
//	@Failure		404	{object}	utils.Response	"User not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/users/{id} [get]
func (h *AuthHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	fid, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || fid <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	user, total, err := h.authService.GetUser(r.Context(), fid)
	if err != nil {
		if errors.Is(err, authservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "User not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.UserResponseDTO{
		ID:                user.ID,
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		ProfilePictureURL: user.ProfilePictureURL,
		TotalChallenges:   total,
		CreatedAt:         user.CreatedAt,
		UpdatedAt:         user.UpdatedAt,
	})
}
