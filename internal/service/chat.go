package service

import (
	"context"
	"strings"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/notify"
)

type Chat struct {
	Deps
}

func NewChat(d Deps) *Chat {
	return &Chat{Deps: d}
}

// Sync: синхронизация с чатом по запросу пользователя. Чат открыт только
// тем, у кого заполнено имя в профиле; ответ несёт токен чата.
func (s *Chat) Sync(ctx context.Context, uid domain.UserID) (notify.ChatSession, error) {
	if s.Chat == nil || !s.Chat.Enabled() {
		return notify.ChatSession{}, domain.ErrChatUnavailable
	}
	card, prof, err := s.chatCard(ctx, uid)
	if err != nil {
		return notify.ChatSession{}, err
	}
	if prof.Name == nil || strings.TrimSpace(*prof.Name) == "" {
		return notify.ChatSession{}, domain.ErrChatProfileRequired
	}

	sess, err := s.Chat.SyncUser(ctx, card)
	if err != nil {
		s.Log.Warn().Err(err).Int64("user_id", uid).Msg("chat sync failed")
		return notify.ChatSession{}, domain.ErrChatUnavailable
	}
	return sess, nil
}
