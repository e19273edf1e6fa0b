package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	jwtpkg "github.com/stormhead-org/community/internal/jwt"
	"github.com/stormhead-org/community/internal/services"
)

// NewAuthorizationMiddleware resolves the bearer token to a profile. The first
// authenticated request for an email creates the profile.
func NewAuthorizationMiddleware(logger *zap.Logger, jwt *jwtpkg.JWT, profiles services.ProfileService) func(http.Handler) http.Handler {
	bypassCheck := map[string]bool{
		"/healthz": true,
		"/metrics": true,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if bypassCheck[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				logger.Debug("missing authorization header")
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token")
				return
			}
			if !strings.HasPrefix(header, "Bearer ") {
				logger.Debug("missing bearer")
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "missing or invalid token")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := jwt.ParseAccessToken(token)
			if err != nil {
				logger.Info("invalid access token", zap.Error(err))
				writeError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid token")
				return
			}

			profile, err := profiles.EnsureProfile(r.Context(), services.ProfileIdentity{
				Email:    claims.Email,
				Name:     claims.Name,
				ImageURL: claims.Picture,
			})
			if err != nil {
				logger.Error("could not resolve profile", zap.Error(err))
				writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
				return
			}

			ctx := SetProfileEmail(r.Context(), profile.Email)
			ctx = SetProfileID(ctx, profile.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError answers in the GraphQL response shape so clients parse one format.
func writeError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"errors": []map[string]interface{}{
			{
				"message":    message,
				"extensions": map[string]string{"code": code},
			},
		},
	})
}
