package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/shipyard-labs/delivery-track/internal/domain"
	"github.com/shipyard-labs/delivery-track/internal/pkg/metrics"
)

// CORSMiddleware creates CORS middleware that handles preflight requests
// and adds appropriate CORS headers to responses.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// Context keys for storing request identity.
const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// TokenVerifier verifies a bearer token and resolves the identity it carries.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (userID string, role domain.Role, err error)
}

// AuthMiddleware creates the authentication gate. Every verification failure
// collapses into the same 401 response; the specific cause is not exposed.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailures.WithLabelValues("missing_token").Inc()
				Error(w, http.StatusUnauthorized, "JWT token not found")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
				Error(w, http.StatusUnauthorized, "Invalid JWT token")
				return
			}

			userID, role, err := verifier.VerifyToken(r.Context(), parts[1])
			if err != nil {
				metrics.AuthFailures.WithLabelValues("invalid_token").Inc()
				Error(w, http.StatusUnauthorized, "Invalid JWT token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, RoleKey, role)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole creates the authorization gate for a fixed set of permitted roles.
// Insufficient role is surfaced as 401, not 403.
func RequireRole(permitted ...domain.Role) func(http.Handler) http.Handler {
	permittedSet := make(map[domain.Role]bool, len(permitted))
	for _, role := range permitted {
		permittedSet[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := r.Context().Value(RoleKey).(domain.Role)
			if !ok {
				metrics.AuthFailures.WithLabelValues("no_identity").Inc()
				Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			if !permittedSet[role] {
				metrics.AuthFailures.WithLabelValues("wrong_role").Inc()
				Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetUserID extracts user ID from context.
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}

// GetRole extracts role from context.
func GetRole(ctx context.Context) domain.Role {
	if role, ok := ctx.Value(RoleKey).(domain.Role); ok {
		return role
	}
	return ""
}
