package token

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

func TestIssueAndParse(t *testing.T) {
	m := New("secret", "edustore", time.Hour)
	ctx := context.Background()

	tok, claims, err := m.Issue(ctx, 42, "a@college.edu")
	require.NoError(t, err)
	assert.NotEmpty(t, claims.JTI)

	got, err := m.Parse(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.UserID)
	assert.Equal(t, "a@college.edu", got.Email)
	assert.Equal(t, claims.JTI, got.JTI)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 5*time.Second)
}

func TestParseRejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	tok, _, err := New("other", "edustore", time.Hour).Issue(ctx, 1, "a@b.c")
	require.NoError(t, err)

	_, err = New("secret", "edustore", time.Hour).Parse(ctx, tok)
	assert.Error(t, err)

	tok, _, err = New("secret", "someone-else", time.Hour).Issue(ctx, 1, "a@b.c")
	require.NoError(t, err)
	_, err = New("secret", "edustore", time.Hour).Parse(ctx, tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongType(t *testing.T) {
	m := New("secret", "edustore", time.Hour)
	now := time.Now()
	cl := accessClaims{
		Type: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "x",
			Issuer:    "edustore",
			Subject:   "1",
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), domain.Token(raw))
	assert.ErrorIs(t, err, jwt.ErrTokenInvalidClaims)
}

func TestParseRejectsExpired(t *testing.T) {
	m := New("secret", "edustore", -time.Hour)
	tok, _, err := m.Issue(context.Background(), 1, "a@b.c")
	require.NoError(t, err)

	_, err = m.Parse(context.Background(), tok)
	assert.Error(t, err)
}
