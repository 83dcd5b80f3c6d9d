package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// ErrChatDisabled: CHAT_SERVICE_URL не задан.
var ErrChatDisabled = errors.New("chat sync disabled")

// ответ чат-сервиса больше не читаем
const maxChatReply = 1 << 20

// ChatUser: карточка пользователя для чат-сервиса.
type ChatUser struct {
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	PostgresID string `json:"postgresId"`
	ProfilePic string `json:"profilePic"`
	Bio        string `json:"bio"`
}

// ChatSession: токен чата и данные пользователя в чате, как их вернул сервис.
type ChatSession struct {
	Token    string          `json:"chat_token"`
	UserData json.RawMessage `json:"user_data,omitempty"`
}

type chatReply struct {
	Token    string          `json:"token"`
	UserData json.RawMessage `json:"userData"`
}

type ChatSync struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewChatSync: пустой baseURL выключает синхронизацию.
func NewChatSync(baseURL string, client *http.Client, log zerolog.Logger) *ChatSync {
	if client == nil {
		client = http.DefaultClient
	}
	return &ChatSync{baseURL: strings.TrimRight(baseURL, "/"), client: client, log: log}
}

func (c *ChatSync) Enabled() bool { return c != nil && c.baseURL != "" }

// SyncUser создаёт или обновляет пользователя в чате и возвращает его сессию.
func (c *ChatSync) SyncUser(ctx context.Context, u ChatUser) (ChatSession, error) {
	if !c.Enabled() {
		return ChatSession{}, ErrChatDisabled
	}
	body, err := json.Marshal(u)
	if err != nil {
		return ChatSession{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/sync", bytes.NewReader(body))
	if err != nil {
		return ChatSession{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return ChatSession{}, fmt.Errorf("chat sync: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxChatReply))
		return ChatSession{}, fmt.Errorf("chat sync: unexpected status %d", resp.StatusCode)
	}

	var reply chatReply
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxChatReply)).Decode(&reply); err != nil && !errors.Is(err, io.EOF) {
		return ChatSession{}, fmt.Errorf("chat sync: decode reply: %w", err)
	}
	c.log.Info().Str("user_id", u.PostgresID).Msg("user synced to chat service")
	return ChatSession{Token: reply.Token, UserData: reply.UserData}, nil
}
