package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/GlebRadaev/novafunded/pkg/utils"
	"go.uber.org/zap"
)

//go:generate mockgen -source=middleware.go -destination=mock_middleware.go -package=auth

type ContextKey string

const (
	UserIDKey ContextKey = "userID"
	RoleKey   ContextKey = "role"
)

const roleAdmin = "admin"

// RoleSource returns the role currently stored for a user, or "" when the
// user no longer exists.
type RoleSource interface {
	CurrentRole(ctx context.Context, userID int) (string, error)
}

// IsAdmin is the single place that decides who holds admin authority.
func IsAdmin(role string) bool {
	return role == roleAdmin
}

func AuthMiddleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return authenticate(jwtService, headerToken)
}

// QueryTokenMiddleware also accepts the token in the "token" query parameter,
// which is the only way a browser websocket handshake can carry it. Mount it
// on the websocket route only.
func QueryTokenMiddleware(jwtService JWTServiceInterface) func(http.Handler) http.Handler {
	return authenticate(jwtService, headerOrQueryToken)
}

func authenticate(jwtService JWTServiceInterface, extract func(r *http.Request) (string, bool)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := extract(r)
			if !ok {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			claims, err := jwtService.ValidateToken(token)
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin must run after AuthMiddleware. The role claim rejects ordinary
// tokens without a lookup; the stored role is then re-read so a demotion
// applies before the token expires.
func RequireAdmin(roles RoleSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, _ := r.Context().Value(RoleKey).(string)
			userID, _ := r.Context().Value(UserIDKey).(int)
			if !IsAdmin(role) {
				utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}

			current, err := roles.CurrentRole(r.Context(), userID)
			if err != nil {
				zap.L().Error("can't read user role", zap.Int("user_id", userID), zap.Error(err))
				utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
				return
			}
			if !IsAdmin(current) {
				zap.L().Warn("admin token used after demotion", zap.Int("user_id", userID))
				utils.RespondWithError(w, http.StatusForbidden, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func headerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer "), true
	}
	return "", false
}

func headerOrQueryToken(r *http.Request) (string, bool) {
	if token, ok := headerToken(r); ok {
		return token, true
	}
	if token := r.URL.Query().Get("token"); token != "" && r.Header.Get("Authorization") == "" {
		return token, true
	}
	return "", false
}
