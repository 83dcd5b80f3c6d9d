package chat

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/notify"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

type Syncer interface {
	Sync(ctx context.Context, uid domain.UserID) (notify.ChatSession, error)
}

type Handler struct {
	Log  zerolog.Logger
	Chat Syncer
}

// Sync godoc
// @Summary     Sync own profile to the chat service and get a chat token
// @Tags        chat
// @Produce     json
// @Security    Bearer
// @Success     200 {object} domain.APIEnvelope{data=notify.ChatSession}
// @Failure     401 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     503 {object} domain.APIEnvelope
// @Router      /v1/chat/sync [post]
func (h *Handler) Sync(w http.ResponseWriter, r *http.Request) {
	const op = "chat.sync"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.Fail(h.Log, w, r, op, "no user in context", domain.ErrUnauthorized)
		return
	}
	sess, err := h.Chat.Sync(r.Context(), me.ID)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "sync failed", err, "user_id", me.ID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKData(w, r, sess)
}
