package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// Authenticator проверяет bearer-токен (подпись, срок, отзыв).
type Authenticator interface {
	Authenticate(ctx context.Context, raw string) (domain.AuthUser, error)
}

// OptionalAuth: невалидный токен не ошибка, запрос идёт как анонимный.
func OptionalAuth(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		u, err := auth.Authenticate(r.Context(), raw)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

func RequireAuth(auth Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := extractBearer(r.Header.Get("Authorization"))
		if raw == "" {
			unauthorized(w)
			return
		}
		u, err := auth.Authenticate(r.Context(), raw)
		if err != nil {
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), u)))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":{"code":"AUTH.UNAUTHORIZED","text":"Unauthorized access"}}` + "\n"))
}

func extractBearer(h string) string {
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}
