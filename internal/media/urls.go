package media

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/cache"
	"github.com/BheruLalM/edustore-api/internal/domain"
)

const (
	// Предел подписи SigV4: 7 суток
	AvatarLinkTTL    = 7 * 24 * time.Hour
	DefaultAvatarTTL = time.Hour
)

// Signer: то, что нужно от хранилища для выдачи ссылок.
type Signer interface {
	SignedDownloadURL(ctx context.Context, key string, ttl time.Duration, page int) (string, error)
}

type URLs struct {
	signer    Signer
	store     *cache.Store
	avatarTTL time.Duration
	timeout   time.Duration
	log       zerolog.Logger
	now       func() time.Time
}

// SignedURL: подписанная ссылка и момент, когда она перестанет работать.
// ExpiresIn считается на момент выдачи, у ссылки из кеша он меньше исходного ttl.
type SignedURL struct {
	URL       string        `json:"url"`
	ExpiresAt time.Time     `json:"expires_at"`
	ExpiresIn time.Duration `json:"-"`
}

func NewURLs(signer Signer, store *cache.Store, avatarTTL, timeout time.Duration, log zerolog.Logger) *URLs {
	if avatarTTL <= 0 {
		avatarTTL = DefaultAvatarTTL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &URLs{signer: signer, store: store, avatarTTL: avatarTTL, timeout: timeout, log: log, now: time.Now}
}

// AvatarURL: ссылка на аватар или nil. Ошибки хранилища не пробрасываются.
func (u *URLs) AvatarURL(ctx context.Context, key *string) *string {
	if key == nil || *key == "" {
		return nil
	}
	if strings.HasPrefix(*key, "http") {
		s := *key
		return &s
	}

	ck := domain.CacheKeyAvatarURL(*key)
	var cached string
	if u.store.GetJSON(ctx, ck, &cached) && cached != "" {
		return &cached
	}

	sctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	url, err := u.signer.SignedDownloadURL(sctx, *key, AvatarLinkTTL, 0)
	if err != nil {
		u.log.Warn().Err(err).Str("object_key", *key).Msg("avatar url failed, omitting")
		return nil
	}
	u.store.SetJSON(ctx, ck, url, u.avatarTTL)
	return &url
}

// ResolveAvatars заполняет AvatarURL по AvatarKey, одинаковые ключи подписываются один раз.
func (u *URLs) ResolveAvatars(ctx context.Context, briefs ...*domain.UserBrief) {
	seen := make(map[string]*string)
	for _, b := range briefs {
		if b == nil || b.AvatarKey == nil {
			continue
		}
		url, ok := seen[*b.AvatarKey]
		if !ok {
			url = u.AvatarURL(ctx, b.AvatarKey)
			seen[*b.AvatarKey] = url
		}
		b.AvatarURL = url
	}
}

// FileURL: подписанная ссылка на файл. Ошибка возвращается, решает вызывающий.
// Кешируется на половину срока жизни ссылки, так что из кеша приходит ссылка
// с запасом не меньше ttl/2.
func (u *URLs) FileURL(ctx context.Context, key string, ttl time.Duration, page int) (SignedURL, error) {
	ck := domain.CacheKeyFileURL(key, ttl, page)
	now := u.now()

	var cached SignedURL
	if u.store.GetJSON(ctx, ck, &cached) && cached.URL != "" {
		if left := cached.ExpiresAt.Sub(now); left > 0 {
			cached.ExpiresIn = left
			return cached, nil
		}
	}

	sctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()
	url, err := u.signer.SignedDownloadURL(sctx, key, ttl, page)
	if err != nil {
		return SignedURL{}, err
	}
	out := SignedURL{URL: url, ExpiresAt: now.Add(ttl), ExpiresIn: ttl}
	u.store.SetJSON(ctx, ck, out, ttl/2)
	return out, nil
}
