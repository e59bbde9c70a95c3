package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Karab-o/CareLink/internal/domain"
	obsmw "github.com/Karab-o/CareLink/internal/observability/middleware"
	"github.com/Karab-o/CareLink/internal/service"
)

type userIDKey struct{}

func contextWithUserID(ctx context.Context, id domain.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func UserIDFrom(ctx context.Context) (domain.UserID, bool) {
	v, ok := ctx.Value(userIDKey{}).(domain.UserID)
	return v, ok
}

// RequireAuth resolves the bearer token to a user id via the credential gate
// and rejects the request before it reaches any handler otherwise.
func RequireAuth(tokens service.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := obsmw.RequestIDFromContext(r.Context())
			raw := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(raw), "bearer ") {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				slog.Warn("auth missing bearer", "path", r.URL.Path, "request_id", reqID)
				return
			}
			tokStr := strings.TrimSpace(raw[len("Bearer "):])
			userID, err := tokens.Verify(tokStr)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				slog.Warn("auth invalid token", "path", r.URL.Path, "request_id", reqID, "error", err)
				return
			}
			next.ServeHTTP(w, r.WithContext(contextWithUserID(r.Context(), userID)))
		})
	}
}
