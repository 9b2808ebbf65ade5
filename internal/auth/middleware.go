package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Ashif52/NGM-Marine-Service-crm-sub001/internal/models"
)

type contextKey string

const SessionContextKey contextKey = "session"

// UserLookup resolves the token subject to the current user record, so a
// deactivated account loses access before its token expires.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

func Middleware(secret string, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				deny(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			tokenStr := strings.TrimPrefix(header, "Bearer ")
			claims, err := ValidateToken(secret, tokenStr)
			if err != nil {
				deny(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			user, err := users.FindByID(r.Context(), claims.UserID)
			if err != nil {
				slog.Error("auth: load user", "user_id", claims.UserID, "error", err)
				deny(w, http.StatusInternalServerError, "An error occurred")
				return
			}
			if user == nil {
				deny(w, http.StatusUnauthorized, "User not found")
				return
			}
			if !user.Active {
				deny(w, http.StatusForbidden, "User account is inactive")
				return
			}
			ctx := WithSession(r.Context(), user.Session())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after Middleware.
func RequireRole(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, ok := GetSession(r.Context())
			if !ok {
				deny(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			if !s.HasRole(roles...) {
				deny(w, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, s)
}

func GetSession(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(models.Session)
	return s, ok
}

func deny(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
