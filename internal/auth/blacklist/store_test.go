package blacklist

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisx "github.com/BheruLalM/edustore-api/internal/infra/cache/redis"
)

func TestRevoke(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewStore(redisx.NewFromClient(rdb, zerolog.Nop()))
	ctx := context.Background()

	revoked, err := s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	revoked, err = s.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	ttl := mr.TTL("jti:abc")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, ttl)
}

func TestRevokeExpiredIsNoop(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewStore(redisx.NewFromClient(rdb, zerolog.Nop()))

	require.NoError(t, s.Revoke(context.Background(), "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("jti:old"))

	assert.Error(t, s.Revoke(context.Background(), "", time.Now().Add(time.Hour)))
}
