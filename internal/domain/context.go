package domain

import (
	"context"
	"time"
)

// Ключ для хранения аутентифицированного пользователя в контексте HTTP-запроса
type ctxKey int

const userCtxKey ctxKey = 1

// AuthUser: то, что middleware кладёт в контекст после проверки токена.
type AuthUser struct {
	ID    UserID
	Email string
	JTI   string

	// срок жизни токена, нужен для отзыва при выходе
	ExpiresAt time.Time
}

func WithUser(ctx context.Context, u AuthUser) context.Context {
	return context.WithValue(ctx, userCtxKey, u)
}

func UserFromCtx(ctx context.Context) (AuthUser, bool) {
	u, ok := ctx.Value(userCtxKey).(AuthUser)
	return u, ok
}

// ViewerFromCtx возвращает id пользователя или 0 для анонима.
func ViewerFromCtx(ctx context.Context) UserID {
	if u, ok := UserFromCtx(ctx); ok {
		return u.ID
	}
	return 0
}
