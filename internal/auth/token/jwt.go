package token

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const (
	typeAccess = "access"
	audience   = "edustore-client"
	leeway     = 30 * time.Second
)

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	parser *jwt.Parser
}

func New(secret string, issuer string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithLeeway(leeway),
		),
	}
}

// пользователь: в sub, email дублируется для логов и ответа /me
type accessClaims struct {
	Type  string `json:"typ"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

var _ domain.TokenManager = (*Manager)(nil)

func (m *Manager) Issue(_ context.Context, userID domain.UserID, email string) (domain.Token, domain.TokenClaims, error) {
	now := time.Now().UTC().Truncate(time.Second)
	cl := accessClaims{
		Type:  typeAccess,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(m.secret)
	if err != nil {
		return "", domain.TokenClaims{}, fmt.Errorf("sign token: %w", err)
	}
	return domain.Token(signed), domain.TokenClaims{
		JTI:       cl.ID,
		UserID:    userID,
		Email:     email,
		IssuedAt:  now,
		ExpiresAt: cl.ExpiresAt.Time,
	}, nil
}

// Parse принимает только access-токены этого издателя с jti и числовым sub.
func (m *Manager) Parse(_ context.Context, raw domain.Token) (domain.TokenClaims, error) {
	var cl accessClaims
	if _, err := m.parser.ParseWithClaims(string(raw), &cl, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return domain.TokenClaims{}, err
	}
	if cl.Type != typeAccess || cl.ID == "" {
		return domain.TokenClaims{}, jwt.ErrTokenInvalidClaims
	}
	uid, err := strconv.ParseInt(cl.Subject, 10, 64)
	if err != nil || uid <= 0 {
		return domain.TokenClaims{}, fmt.Errorf("%w: bad sub", jwt.ErrTokenInvalidClaims)
	}

	out := domain.TokenClaims{JTI: cl.ID, UserID: uid, Email: cl.Email, ExpiresAt: cl.ExpiresAt.Time}
	if cl.IssuedAt != nil {
		out.IssuedAt = cl.IssuedAt.Time
	}
	return out, nil
}
