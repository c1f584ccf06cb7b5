package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/saveup/saveup/pkg/utils"
)

type ContextKey string

// FIDKey carries the authenticated caller's Farcaster id.
const FIDKey ContextKey = "fid"

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		jwtService := &JWTService{}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), FIDKey, claims.FID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
