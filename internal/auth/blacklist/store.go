// Package blacklist хранит отозванные jti до истечения самих токенов.
package blacklist

import (
	"context"
	"fmt"
	"time"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

type KV interface {
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Exists(ctx context.Context, key string) (bool, error)
}

type Store struct {
	kv KV
}

var _ domain.TokenBlacklist = (*Store)(nil)

func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// Revoke: запись живёт ровно до exp; истёкший токен и так не пройдёт Parse.
func (s *Store) Revoke(ctx context.Context, jti string, exp time.Time) error {
	if jti == "" {
		return fmt.Errorf("%w: empty jti", domain.ErrBadParams)
	}
	ttl := time.Until(exp).Round(time.Second)
	if ttl <= 0 {
		return nil
	}
	if _, err := s.kv.SetNX(ctx, domain.CacheKeyTokenJTI(jti), []byte("1"), int(ttl.Seconds())); err != nil {
		return fmt.Errorf("blacklist %s: %w", jti, err)
	}
	return nil
}

func (s *Store) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.kv.Exists(ctx, domain.CacheKeyTokenJTI(jti))
}
