package social

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/service"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

type Likes interface {
	Toggle(ctx context.Context, uid domain.UserID, id domain.DocID) (service.LikeState, error)
	Unlike(ctx context.Context, uid domain.UserID, id domain.DocID) (service.LikeState, error)
	Info(ctx context.Context, viewer domain.UserID, id domain.DocID) (service.LikeState, error)
	Likers(ctx context.Context, viewer domain.UserID, id domain.DocID, limit, offset int) (domain.UserPage, error)
}

type Bookmarks interface {
	Toggle(ctx context.Context, uid domain.UserID, id domain.DocID) (service.BookmarkState, error)
	Remove(ctx context.Context, uid domain.UserID, id domain.DocID) (service.BookmarkState, error)
	List(ctx context.Context, uid domain.UserID, limit, offset int) (domain.FeedPage, error)
}

type Follows interface {
	Toggle(ctx context.Context, uid, target domain.UserID) (service.FollowState, error)
	Unfollow(ctx context.Context, uid, target domain.UserID) (service.FollowState, error)
	Status(ctx context.Context, uid, target domain.UserID) (service.FollowState, error)
	Followers(ctx context.Context, uid domain.UserID, limit, offset int) (domain.UserPage, error)
	Following(ctx context.Context, uid domain.UserID, limit, offset int) (domain.UserPage, error)
}

// Handler: лайки, закладки и подписки.
type Handler struct {
	Log       zerolog.Logger
	Likes     Likes
	Bookmarks Bookmarks
	Follows   Follows
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op, msg string, err error, kv ...any) {
	v1.Fail(h.Log, w, r, op, msg, err, kv...)
}

// withUserAndID разбирает {id} и текущего пользователя; при ошибке ответ уже записан.
func (h *Handler) withUserAndID(w http.ResponseWriter, r *http.Request, op string) (domain.AuthUser, int64, bool) {
	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		h.fail(w, r, op, "no user in context", domain.ErrUnauthorized)
		return domain.AuthUser{}, 0, false
	}
	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad id", err, "raw", r.PathValue("id"))
		return domain.AuthUser{}, 0, false
	}
	return me, id, true
}

func (h *Handler) ok(w http.ResponseWriter, r *http.Request, op string, data any, kv ...any) {
	logx.Info(h.Log, mw.RequestIDFromCtx(r.Context()), op, "ok", kv...)
	v1.WriteOKData(w, r, data)
}

type userLister func(id int64, limit, offset int) (domain.UserPage, error)

func (h *Handler) users(w http.ResponseWriter, r *http.Request, op string, fn userLister) {
	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad id", err, "raw", r.PathValue("id"))
		return
	}
	limit, offset, err := v1.Page(r)
	if err != nil {
		h.fail(w, r, op, "bad paging", err)
		return
	}
	page, err := fn(id, limit, offset)
	if err != nil {
		h.fail(w, r, op, "list failed", err, "id", id)
		return
	}
	h.ok(w, r, op, page, "id", id, "count", len(page.Items), "total", page.Total)
}
