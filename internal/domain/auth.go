package domain

import (
	"context"
	"time"
)

// Вход по одноразовому коду из письма:
// - POST /v1/auth/otp -> отправить код
// - POST /v1/auth/otp/verify -> выдать токен
// - DELETE /v1/auth/session -> завершить сессию (инвалидация jti)

type Token string

type TokenClaims struct {
	JTI       string // уникальный id токена
	UserID    UserID
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Хеширование секретов (одноразовые коды)
type SecretHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, encoded string) (bool, error)
}

type TokenManager interface {
	Issue(ctx context.Context, userID UserID, email string) (Token, TokenClaims, error)
	Parse(ctx context.Context, t Token) (TokenClaims, error)
}

// Блэклист/ревокация токенов (Redis)
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, exp time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Одноразовые коды: выдача с кулдауном и проверка с ограничением попыток
type OTPStore interface {
	Issue(ctx context.Context, email string) (code string, err error)
	Verify(ctx context.Context, email, code string) error
}
