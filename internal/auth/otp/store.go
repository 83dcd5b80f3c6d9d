// Package otp: одноразовые коды входа в Redis: кулдаун на выдачу,
// ограничение попыток и хранение только хеша кода.
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// KV: то, что нужно от кеша.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error)
	Incr(ctx context.Context, key string, ttlSeconds int) (int64, error)
}

type Config struct {
	TTL         time.Duration
	Cooldown    time.Duration
	MaxAttempts int
}

type Store struct {
	kv     KV
	hasher domain.SecretHasher
	cfg    Config
	gen    func() (string, error)
}

var _ domain.OTPStore = (*Store)(nil)

func NewStore(kv KV, hasher domain.SecretHasher, cfg Config) *Store {
	if cfg.TTL <= 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = time.Minute
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Store{kv: kv, hasher: hasher, cfg: cfg, gen: generate}
}

// Issue выдаёт новый код. Повторный запрос в пределах кулдауна: ErrOTPCooldown.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	email = domain.NormalizeEmail(email)

	ok, err := s.kv.SetNX(ctx, domain.CacheKeyOTPCooldown(email), []byte("1"), secs(s.cfg.Cooldown))
	if err != nil {
		return "", fmt.Errorf("otp cooldown: %w", err)
	}
	if !ok {
		return "", domain.ErrOTPCooldown
	}

	code, err := s.gen()
	if err != nil {
		return "", fmt.Errorf("otp generate: %w", err)
	}
	hash, err := s.hasher.Hash(code)
	if err != nil {
		return "", fmt.Errorf("otp hash: %w", err)
	}

	ttl := secs(s.cfg.TTL)
	if err := s.kv.Set(ctx, domain.CacheKeyOTP(email), []byte(hash), ttl); err != nil {
		return "", fmt.Errorf("otp save: %w", err)
	}
	if err := s.kv.Set(ctx, domain.CacheKeyOTPAttempts(email), []byte("0"), ttl); err != nil {
		return "", fmt.Errorf("otp save attempts: %w", err)
	}
	return code, nil
}

// Verify проверяет код. Успех удаляет код, счётчик попыток и кулдаун.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	email = domain.NormalizeEmail(email)
	codeKey := domain.CacheKeyOTP(email)
	attemptsKey := domain.CacheKeyOTPAttempts(email)

	raw, err := s.kv.Get(ctx, attemptsKey)
	if err != nil {
		return fmt.Errorf("otp attempts: %w", err)
	}
	if raw != nil {
		if n, _ := strconv.Atoi(string(raw)); n >= s.cfg.MaxAttempts {
			return domain.ErrOTPAttempts
		}
	}

	stored, err := s.kv.Get(ctx, codeKey)
	if err != nil {
		return fmt.Errorf("otp load: %w", err)
	}
	if stored == nil {
		return domain.ErrOTPExpired
	}

	match, err := s.hasher.Verify(code, string(stored))
	if err != nil {
		return fmt.Errorf("otp verify: %w", err)
	}
	if !match {
		if _, err := s.kv.Incr(ctx, attemptsKey, secs(s.cfg.TTL)); err != nil {
			return fmt.Errorf("otp attempts incr: %w", err)
		}
		return domain.ErrOTPInvalid
	}

	if err := s.kv.Del(ctx, codeKey, attemptsKey, domain.CacheKeyOTPCooldown(email)); err != nil {
		return fmt.Errorf("otp cleanup: %w", err)
	}
	return nil
}

func generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func secs(d time.Duration) int {
	if d < time.Second {
		return 1
	}
	return int(d / time.Second)
}
