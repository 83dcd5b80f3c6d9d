package cache

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// Invalidator знает, какие ключи задевает каждая мутация.
// Вызывается синхронно после коммита и до ответа клиенту.
type Invalidator struct {
	store *Store
	log   zerolog.Logger
}

func NewInvalidator(store *Store, log zerolog.Logger) *Invalidator {
	return &Invalidator{store: store, log: log}
}

// InvalidateFeed: все ленты и поиск (порядок и счётчики могли сдвинуться).
func (i *Invalidator) InvalidateFeed(ctx context.Context) {
	i.store.DeletePrefix(ctx, domain.CachePrefixFeed)
	i.log.Debug().Msg("feed caches invalidated")
}

func (i *Invalidator) InvalidateUserDocs(ctx context.Context, owner domain.UserID) {
	i.store.DeletePrefix(ctx, domain.CachePrefixUserDocs(owner))
	i.log.Debug().Int64("user_id", owner).Msg("user docs cache invalidated")
}

// InvalidateDocument: карточка документа, все ленты, листинг владельца
// и закладки актёра, если он не владелец. owner/actor == 0: неизвестен.
func (i *Invalidator) InvalidateDocument(ctx context.Context, doc domain.DocID, owner, actor domain.UserID) {
	i.store.Delete(ctx, domain.CacheKeyDocDetail(doc))
	i.InvalidateFeed(ctx)
	if owner != 0 {
		i.InvalidateUserDocs(ctx, owner)
	}
	if actor != 0 && actor != owner {
		i.InvalidateUserBookmarks(ctx, actor)
	}
	i.log.Debug().Int64("doc_id", doc).Int64("owner_id", owner).Int64("actor_id", actor).Msg("document cache invalidated")
}

func (i *Invalidator) InvalidateProfile(ctx context.Context, uid domain.UserID) {
	i.store.Delete(ctx, domain.CacheKeyProfile(uid))
	i.log.Debug().Int64("user_id", uid).Msg("profile cache invalidated")
}

func (i *Invalidator) InvalidateUserBookmarks(ctx context.Context, uid domain.UserID) {
	i.store.DeletePrefix(ctx, domain.CachePrefixUserBookmarks(uid))
	i.log.Debug().Int64("user_id", uid).Msg("user bookmarks cache invalidated")
}

// InvalidateFollowingFeed: лента подписок зависит от графа подписок пользователя.
func (i *Invalidator) InvalidateFollowingFeed(ctx context.Context, uid domain.UserID) {
	i.store.DeletePrefix(ctx, domain.CachePrefixFollowingFeed(uid))
}

// InvalidateAvatarURL: подписанная ссылка на старый ключ аватара больше не нужна.
func (i *Invalidator) InvalidateAvatarURL(ctx context.Context, objectKey string) {
	i.store.Delete(ctx, domain.CacheKeyAvatarURL(objectKey))
}
