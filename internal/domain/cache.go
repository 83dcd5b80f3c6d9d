package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Ключи кеша: единое место, чтобы не расползались по коду.
const (
	CachePrefixFeed = "feed:"
)

func CacheKeyPublicFeed(offset, limit int) string {
	return fmt.Sprintf("feed:public:base:p%d:l%d", offset, limit)
}

func CacheKeyFollowingFeed(uid UserID, offset, limit int) string {
	return fmt.Sprintf("%sp%d:l%d", CachePrefixFollowingFeed(uid), offset, limit)
}

func CachePrefixFollowingFeed(uid UserID) string { return fmt.Sprintf("feed:following:%d:", uid) }

// Поисковый запрос хешируем: в ключ не должны попадать произвольные символы
func CacheKeySearchFeed(query string, offset, limit int) string {
	sum := sha256.Sum256([]byte(strings.ToLower(query)))
	return fmt.Sprintf("feed:search:%s:p%d:l%d", hex.EncodeToString(sum[:8]), offset, limit)
}

func CacheKeyUserDocs(owner UserID, includePrivate bool, offset, limit int) string {
	scope := "public"
	if includePrivate {
		scope = "all"
	}
	return fmt.Sprintf("%s%s:p%d:l%d", CachePrefixUserDocs(owner), scope, offset, limit)
}

func CachePrefixUserDocs(owner UserID) string { return fmt.Sprintf("user:docs:%d:", owner) }

func CacheKeyUserBookmarks(uid UserID, offset, limit int) string {
	return fmt.Sprintf("%sp%d:l%d", CachePrefixUserBookmarks(uid), offset, limit)
}

func CachePrefixUserBookmarks(uid UserID) string { return fmt.Sprintf("user:bookmarks:%d:", uid) }

func CacheKeyDocDetail(id DocID) string         { return fmt.Sprintf("doc:detail:static:%d", id) }
func CacheKeyProfile(uid UserID) string         { return fmt.Sprintf("user_profile_static:%d", uid) }
func CacheKeyAvatarURL(objectKey string) string { return "avatar_url:" + objectKey }

func CacheKeyFileURL(objectKey string, ttl time.Duration, page int) string {
	k := fmt.Sprintf("file_url:%s:%d", objectKey, int(ttl.Seconds()))
	if page > 0 {
		k += fmt.Sprintf(":p%d", page)
	}
	return k
}

// Множества состояния пользователя. Не пересекаются с префиксами листингов.
func CacheKeyFollowingSet(uid UserID) string  { return fmt.Sprintf("user:state:following:%d", uid) }
func CacheKeyLikesSet(uid UserID) string      { return fmt.Sprintf("user:state:likes:%d", uid) }
func CacheKeyBookmarksSet(uid UserID) string  { return fmt.Sprintf("user:state:bookmarks:%d", uid) }
func CacheKeyTokenJTI(jti string) string      { return "jti:" + jti }
func CacheKeyOTP(email string) string         { return "otp:" + email }
func CacheKeyOTPAttempts(email string) string { return "otp:attempt:" + email }
func CacheKeyOTPCooldown(email string) string { return "otp:cooldown:" + email }

// Простой k/v интерфейс + множества. Реализация: Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error) // nil, nil: промах
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	DelPrefix(ctx context.Context, prefix string) (int64, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SAddExpire(ctx context.Context, key string, ttlSeconds int, members ...string) error
	Ping(context.Context) error
	Close()
}
