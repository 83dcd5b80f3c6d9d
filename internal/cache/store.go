// Package cache: кеш-слой поверх domain.Cache: JSON-значения, множества
// состояния пользователя и инвалидация. Все операции fail-soft: ошибка или
// таймаут бэкенда логируется и трактуется как промах.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const DefaultTimeout = 300 * time.Millisecond

type Store struct {
	b       domain.Cache
	timeout time.Duration
	log     zerolog.Logger
}

// NewStore: b == nil выключает кеш, любое чтение даёт промах.
func NewStore(b domain.Cache, timeout time.Duration, log zerolog.Logger) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{b: b, timeout: timeout, log: log}
}

func (s *Store) Enabled() bool { return s != nil && s.b != nil }

// GetJSON декодирует значение в dst; false: промах или ошибка.
func (s *Store) GetJSON(ctx context.Context, key string, dst any) bool {
	if !s.Enabled() {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	b, err := s.b.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache get failed, treating as miss")
		return false
	}
	if b == nil {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache entry is corrupted, dropping")
		_ = s.b.Del(ctx, key)
		return false
	}
	return true
}

func (s *Store) SetJSON(ctx context.Context, key string, v any, ttl time.Duration) {
	if !s.Enabled() {
		return
	}
	buf, err := json.Marshal(v)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("cache marshal failed")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.b.Set(ctx, key, buf, ttlSeconds(ttl)); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *Store) Delete(ctx context.Context, keys ...string) {
	if !s.Enabled() || len(keys) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.b.Del(ctx, keys...); err != nil {
		s.log.Warn().Err(err).Strs("keys", keys).Msg("cache delete failed")
	}
}

func (s *Store) DeletePrefix(ctx context.Context, prefix string) {
	if !s.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.b.DelPrefix(ctx, prefix); err != nil {
		s.log.Warn().Err(err).Str("prefix", prefix).Msg("cache delete by prefix failed")
	}
}

// Members: содержимое множества; ok=false: промах (пустое множество Redis не хранит).
func (s *Store) Members(ctx context.Context, key string) ([]string, bool) {
	if !s.Enabled() {
		return nil, false
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	m, err := s.b.SMembers(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache smembers failed, treating as miss")
		return nil, false
	}
	if len(m) == 0 {
		return nil, false
	}
	return m, true
}

func (s *Store) SetMembers(ctx context.Context, key string, members []string, ttl time.Duration) {
	if !s.Enabled() || len(members) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.b.SAddExpire(ctx, key, ttlSeconds(ttl), members...); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("cache sadd failed")
	}
}

func ttlSeconds(d time.Duration) int {
	n := int(d / time.Second)
	if d > 0 && n == 0 {
		n = 1
	}
	return n
}
