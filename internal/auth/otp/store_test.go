package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BheruLalM/edustore-api/internal/auth/hasher"
	"github.com/BheruLalM/edustore-api/internal/domain"
	redisx "github.com/BheruLalM/edustore-api/internal/infra/cache/redis"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewStore(redisx.NewFromClient(rdb, zerolog.Nop()), hasher.NewForOTP(), Config{
		TTL: 5 * time.Minute, Cooldown: time.Minute, MaxAttempts: 5,
	})
	return s, mr
}

func TestIssueAndVerify(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	code, err := s.Issue(ctx, " Student@College.EDU ")
	require.NoError(t, err)
	assert.True(t, domain.ValidOTP(code))

	stored, err := mr.Get("otp:student@college.edu")
	require.NoError(t, err)
	assert.NotEqual(t, code, stored)
	assert.Equal(t, 5*time.Minute, mr.TTL("otp:student@college.edu"))

	require.NoError(t, s.Verify(ctx, "student@college.edu", code))
	assert.False(t, mr.Exists("otp:student@college.edu"))
	assert.False(t, mr.Exists("otp:attempt:student@college.edu"))
	assert.False(t, mr.Exists("otp:cooldown:student@college.edu"))

	assert.ErrorIs(t, s.Verify(ctx, "student@college.edu", code), domain.ErrOTPExpired)
}

func TestIssueCooldown(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	_, err := s.Issue(ctx, "a@b.co")
	require.NoError(t, err)
	_, err = s.Issue(ctx, "a@b.co")
	assert.ErrorIs(t, err, domain.ErrOTPCooldown)
	assert.ErrorIs(t, err, domain.ErrRateLimited)

	mr.FastForward(61 * time.Second)
	_, err = s.Issue(ctx, "a@b.co")
	assert.NoError(t, err)
}

func TestVerifyAttemptLimit(t *testing.T) {
	s, _ := newStore(t)
	s.gen = func() (string, error) { return "123456", nil }
	ctx := context.Background()

	_, err := s.Issue(ctx, "a@b.co")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.ErrorIs(t, s.Verify(ctx, "a@b.co", "000000"), domain.ErrOTPInvalid)
	}
	// правильный код после исчерпания попыток уже не принимается
	assert.ErrorIs(t, s.Verify(ctx, "a@b.co", "123456"), domain.ErrOTPAttempts)
}
