// Package service: сценарии API поверх хранилища, кеша и объектного хранилища.
// Каждая мутация синхронно инвалидирует кеш до возврата результата;
// побочные эффекты (чат, письма, чистка объектов) уходят в notify.Dispatcher.
package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/cache"
	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/feed"
	"github.com/BheruLalM/edustore-api/internal/media"
	"github.com/BheruLalM/edustore-api/internal/notify"
)

// ChatSyncer: компаньон-сервис чата.
type ChatSyncer interface {
	Enabled() bool
	SyncUser(ctx context.Context, u notify.ChatUser) (notify.ChatSession, error)
}

// Deps: общие зависимости сервисов.
type Deps struct {
	Users     domain.UsersRepo
	Profiles  domain.ProfilesRepo
	Docs      domain.DocsRepo
	Likes     domain.LikesRepo
	Bookmarks domain.BookmarksRepo
	Follows   domain.FollowsRepo
	Comments  domain.CommentsRepo
	Search    domain.UserSearchRepo

	Storage domain.ObjectStorage
	Store   *cache.Store
	States  *cache.UserStates
	Inv     *cache.Invalidator
	URLs    *media.URLs
	Feed    *feed.Assembler
	Bg      *notify.Dispatcher
	Chat    ChatSyncer

	Paging Paging
	Log    zerolog.Logger
}

type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// clamp приводит limit/offset к допустимым значениям
func (p Paging) clamp(limit, offset int) (int, int) {
	maxLimit := p.MaxLimit
	if maxLimit <= 0 {
		maxLimit = 50
	}
	def := p.DefaultLimit
	if def <= 0 || def > maxLimit {
		def = min(20, maxLimit)
	}
	switch {
	case limit <= 0:
		limit = def
	case limit > maxLimit:
		limit = maxLimit
	}
	return limit, max(offset, 0)
}

func (d Deps) userPage(ctx context.Context, items []domain.UserBrief, total int64, limit, offset int) domain.UserPage {
	if items == nil {
		items = []domain.UserBrief{}
	}
	briefs := make([]*domain.UserBrief, len(items))
	for i := range items {
		briefs[i] = &items[i]
	}
	d.URLs.ResolveAvatars(ctx, briefs...)
	return domain.UserPage{Items: items, Total: total, Limit: limit, Offset: offset}
}

// syncChat отправляет актуальную карточку пользователя в чат после ответа.
func (d Deps) syncChat(uid domain.UserID) {
	if d.Chat == nil || !d.Chat.Enabled() || d.Bg == nil {
		return
	}
	d.Bg.Go("chat.sync", func(ctx context.Context) error {
		card, _, err := d.chatCard(ctx, uid)
		if err != nil {
			return err
		}
		_, err = d.Chat.SyncUser(ctx, card)
		return err
	})
}

// chatCard собирает карточку для чата вместе с профилем, из которого она сделана.
func (d Deps) chatCard(ctx context.Context, uid domain.UserID) (notify.ChatUser, domain.Profile, error) {
	u, err := d.Users.UserByID(ctx, uid)
	if err != nil {
		return notify.ChatUser{}, domain.Profile{}, err
	}
	p, err := d.Profiles.ProfileByUserID(ctx, uid)
	if err != nil {
		return notify.ChatUser{}, domain.Profile{}, err
	}
	card := notify.ChatUser{
		Email:      u.Email,
		FullName:   displayName(u.Email, p.Name),
		PostgresID: itoa(uid),
		Bio:        chatBio(p.Course, p.College),
	}
	if url := d.URLs.AvatarURL(ctx, p.AvatarKey); url != nil {
		card.ProfilePic = *url
	}
	return card, p, nil
}

// removeObject удаляет объект из хранилища в фоне; ошибка только логируется.
func (d Deps) removeObject(key string) {
	if key == "" || d.Bg == nil {
		return
	}
	d.Bg.Go("storage.delete", func(ctx context.Context) error {
		return d.Storage.Delete(ctx, key)
	})
}
