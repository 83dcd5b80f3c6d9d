// Package feed собирает листинги документов с двухуровневым кешем:
// общая «базовая» страница без полей пользователя и гидратация
// is_liked/is_bookmarked из множеств состояния пользователя.
package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/access"
	"github.com/BheruLalM/edustore-api/internal/cache"
	"github.com/BheruLalM/edustore-api/internal/domain"
)

type States interface {
	LikedIDs(ctx context.Context, uid domain.UserID) (cache.IDSet, error)
	BookmarkedIDs(ctx context.Context, uid domain.UserID) (cache.IDSet, error)
}

type Avatars interface {
	ResolveAvatars(ctx context.Context, briefs ...*domain.UserBrief)
}

type Config struct {
	DefaultLimit int
	MaxLimit     int
	FeedTTL      time.Duration // публичная лента, подписки, поиск
	ListTTL      time.Duration // документы пользователя, закладки
}

func (c Config) withDefaults() Config {
	if c.MaxLimit <= 0 {
		c.MaxLimit = 50
	}
	if c.DefaultLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		c.DefaultLimit = min(20, c.MaxLimit)
	}
	if c.FeedTTL <= 0 {
		c.FeedTTL = 60 * time.Second
	}
	if c.ListTTL <= 0 {
		c.ListTTL = 120 * time.Second
	}
	return c
}

type Assembler struct {
	repo    domain.FeedRepo
	store   *cache.Store
	states  States
	avatars Avatars
	cfg     Config
	log     zerolog.Logger
}

func NewAssembler(repo domain.FeedRepo, store *cache.Store, states States, avatars Avatars, cfg Config, log zerolog.Logger) *Assembler {
	return &Assembler{repo: repo, store: store, states: states, avatars: avatars, cfg: cfg.withDefaults(), log: log}
}

// List возвращает страницу, отсортированную по created_at DESC, id DESC.
func (a *Assembler) List(ctx context.Context, q domain.FeedQuery) (domain.FeedPage, error) {
	q, err := a.Normalize(q)
	if err != nil {
		return domain.FeedPage{}, err
	}

	key, ttl := a.baseKey(q)

	// json-декодирование даёт собственную копию строк, общий кеш не мутируется
	var page domain.FeedPage
	if key == "" || !a.store.GetJSON(ctx, key, &page) {
		page, err = a.load(ctx, q)
		if err != nil {
			return domain.FeedPage{}, err
		}
		if key != "" {
			a.store.SetJSON(ctx, key, page, ttl)
		}
	} else {
		a.log.Debug().Str("key", key).Msg("feed base cache hit")
	}

	visible := access.FilterVisible(page.Items, q.ViewerID)
	if dropped := len(page.Items) - len(visible); dropped > 0 {
		a.log.Warn().Str("kind", string(q.Kind)).Int("dropped", dropped).Msg("listing contained invisible items")
		page.Total -= int64(dropped)
	}
	page.Items = visible

	if err := a.hydrate(ctx, q.ViewerID, page.Items); err != nil {
		return domain.FeedPage{}, err
	}
	return page, nil
}

// Normalize ограничивает пагинацию и проверяет параметры вида листинга.
func (a *Assembler) Normalize(q domain.FeedQuery) (domain.FeedQuery, error) {
	switch {
	case q.Limit <= 0:
		q.Limit = a.cfg.DefaultLimit
	case q.Limit > a.cfg.MaxLimit:
		q.Limit = a.cfg.MaxLimit
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	switch q.Kind {
	case domain.FeedPublic:
		q.IncludePrivate = false
	case domain.FeedFollowing, domain.FeedBookmarks:
		if q.ViewerID == 0 {
			return q, domain.ErrUnauthorized
		}
		q.IncludePrivate = false
	case domain.FeedUserDocs:
		if q.OwnerID == 0 {
			return q, domain.ErrBadParams
		}
		q.IncludePrivate = q.ViewerID != 0 && q.ViewerID == q.OwnerID
	case domain.FeedSearch:
		s, err := domain.NormalizeSearch(q.Search)
		if err != nil {
			return q, err
		}
		q.Search = s
		q.IncludePrivate = q.ViewerID != 0
	default:
		return q, fmt.Errorf("unknown feed kind %q: %w", q.Kind, domain.ErrBadParams)
	}
	return q, nil
}

// baseKey: ключ без полей запрашивающего. Пустой ключ: не кешировать.
func (a *Assembler) baseKey(q domain.FeedQuery) (string, time.Duration) {
	switch q.Kind {
	case domain.FeedPublic:
		return domain.CacheKeyPublicFeed(q.Offset, q.Limit), a.cfg.FeedTTL
	case domain.FeedFollowing:
		return domain.CacheKeyFollowingFeed(q.ViewerID, q.Offset, q.Limit), a.cfg.FeedTTL
	case domain.FeedUserDocs:
		return domain.CacheKeyUserDocs(q.OwnerID, q.IncludePrivate, q.Offset, q.Limit), a.cfg.ListTTL
	case domain.FeedBookmarks:
		return domain.CacheKeyUserBookmarks(q.ViewerID, q.Offset, q.Limit), a.cfg.ListTTL
	case domain.FeedSearch:
		// у авторизованного в выдаче есть его приватные документы
		if q.ViewerID == 0 {
			return domain.CacheKeySearchFeed(q.Search, q.Offset, q.Limit), a.cfg.FeedTTL
		}
	}
	return "", 0
}

func (a *Assembler) load(ctx context.Context, q domain.FeedQuery) (domain.FeedPage, error) {
	start := time.Now()
	items, total, err := a.repo.ListFeed(ctx, q)
	if err != nil {
		return domain.FeedPage{}, fmt.Errorf("list feed %s: %w", q.Kind, err)
	}
	if items == nil {
		items = []domain.FeedItem{}
	}

	owners := make([]*domain.UserBrief, 0, len(items))
	for i := range items {
		items[i].IsLiked = false
		items[i].IsBookmarked = false
		owners = append(owners, &items[i].Owner)
	}
	a.avatars.ResolveAvatars(ctx, owners...)

	a.log.Debug().
		Str("kind", string(q.Kind)).
		Int("count", len(items)).
		Int64("total", total).
		Dur("took", time.Since(start)).
		Msg("feed loaded from db")

	return domain.FeedPage{Items: items, Total: total, Limit: q.Limit, Offset: q.Offset}, nil
}

func (a *Assembler) hydrate(ctx context.Context, viewer domain.UserID, items []domain.FeedItem) error {
	if viewer == 0 || len(items) == 0 {
		for i := range items {
			items[i].IsLiked = false
			items[i].IsBookmarked = false
		}
		return nil
	}
	liked, err := a.states.LikedIDs(ctx, viewer)
	if err != nil {
		return fmt.Errorf("liked ids: %w", err)
	}
	bookmarked, err := a.states.BookmarkedIDs(ctx, viewer)
	if err != nil {
		return fmt.Errorf("bookmarked ids: %w", err)
	}
	for i := range items {
		items[i].IsLiked = liked.Has(items[i].ID)
		items[i].IsBookmarked = bookmarked.Has(items[i].ID)
	}
	return nil
}
