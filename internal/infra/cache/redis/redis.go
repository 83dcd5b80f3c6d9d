package redisx

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

const scanBatch = 500

type Cache struct {
	rdb    *redis.Client
	logger zerolog.Logger
}

type Config struct {
	Addr     string
	DB       int
	Password string
}

var _ domain.Cache = (*Cache)(nil)

func New(cfg Config, logger zerolog.Logger) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &Cache{rdb: rdb, logger: logger}
}

// NewFromClient: для тестов и общего клиента.
func NewFromClient(rdb *redis.Client, logger zerolog.Logger) *Cache {
	return &Cache{rdb: rdb, logger: logger}
}

func (c *Cache) Ping(ctx context.Context) error {
	err := c.rdb.Ping(ctx).Err()
	if err != nil {
		c.logger.Error().Err(err).Msg("PING failed")
	} else {
		c.logger.Debug().Msg("PING ok")
	}
	return err
}

func (c *Cache) Close() {
	if c.rdb == nil {
		c.logger.Info().Msg("nothing to close")
		return
	}

	if err := c.rdb.Close(); err != nil {
		c.logger.Error().Err(err).Msg("error while closing")
		return
	}

	c.logger.Info().Msg("closed")
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		c.logger.Debug().Str("key", key).Msg("GET miss")
		return nil, nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("GET failed")
	} else {
		c.logger.Debug().Str("key", key).Int("bytes", len(b)).Msg("GET hit")
	}
	return b, err
}

func (c *Cache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	ttl := seconds(ttlSeconds)
	err := c.rdb.Set(ctx, key, val, ttl).Err()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("SET failed")
	} else {
		c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("SET ok")
	}
	return err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	n, err := c.rdb.Del(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("DEL failed")
	} else {
		c.logger.Debug().Strs("keys", keys).Int64("deleted", n).Msg("DEL ok")
	}
	return err
}

// DelPrefix удаляет все ключи с префиксом через SCAN (без KEYS, чтобы не блокировать Redis).
func (c *Cache) DelPrefix(ctx context.Context, prefix string) (int64, error) {
	pattern := escapeGlob(prefix) + "*"
	var (
		cursor  uint64
		deleted int64
	)
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			c.logger.Warn().Err(err).Str("pattern", pattern).Msg("SCAN failed")
			return deleted, err
		}
		if len(keys) > 0 {
			n, err := c.rdb.Unlink(ctx, keys...).Result()
			if err != nil {
				c.logger.Warn().Err(err).Str("pattern", pattern).Msg("UNLINK failed")
				return deleted, err
			}
			deleted += n
		}
		cursor = next
		if cursor == 0 {
			break
		}
	}
	c.logger.Debug().Str("pattern", pattern).Int64("deleted", deleted).Msg("DEL by prefix ok")
	return deleted, nil
}

func (c *Cache) SMembers(ctx context.Context, key string) ([]string, error) {
	m, err := c.rdb.SMembers(ctx, key).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("SMEMBERS failed")
		return nil, err
	}
	c.logger.Debug().Str("key", key).Int("members", len(m)).Msg("SMEMBERS ok")
	return m, nil
}

// SAddExpire добавляет элементы в множество и выставляет TTL одной транзакцией.
func (c *Cache) SAddExpire(ctx context.Context, key string, ttlSeconds int, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]any, len(members))
	for i, m := range members {
		args[i] = m
	}
	ttl := seconds(ttlSeconds)
	_, err := c.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.SAdd(ctx, key, args...)
		if ttl > 0 {
			p.Expire(ctx, key, ttl)
		}
		return nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("SADD failed")
	} else {
		c.logger.Debug().Str("key", key).Int("members", len(members)).Dur("ttl", ttl).Msg("SADD ok")
	}
	return err
}

// Incr увеличивает счётчик; TTL ставится только при создании ключа.
func (c *Cache) Incr(ctx context.Context, key string, ttlSeconds int) (int64, error) {
	n, err := c.rdb.Incr(ctx, key).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("INCR failed")
		return 0, err
	}
	if n == 1 && ttlSeconds > 0 {
		if err := c.rdb.Expire(ctx, key, seconds(ttlSeconds)).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("EXPIRE failed")
			return n, err
		}
	}
	c.logger.Debug().Str("key", key).Int64("value", n).Msg("INCR ok")
	return n, nil
}

// SetNX устанавливает значение только если ключ ещё не существует.
func (c *Cache) SetNX(ctx context.Context, key string, val []byte, ttlSeconds int) (bool, error) {
	ttl := seconds(ttlSeconds)
	ok, err := c.rdb.SetNX(ctx, key, val, ttl).Result()
	switch {
	case err != nil:
		c.logger.Warn().Err(err).Str("key", key).Msg("SETNX failed")
	case ok:
		c.logger.Debug().Str("key", key).Dur("ttl", ttl).Msg("SETNX ok")
	default:
		c.logger.Debug().Str("key", key).Msg("SETNX skipped (already exists)")
	}
	return ok, err
}

// Exists проверяет наличие ключа.
func (c *Cache) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.rdb.Exists(ctx, key).Result()
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("EXISTS failed")
		return false, err
	}
	return n == 1, nil
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

func escapeGlob(s string) string { return globEscaper.Replace(s) }
