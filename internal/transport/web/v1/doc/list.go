package doc

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// Feed godoc
// @Summary     Public feed
// @Tags        feed
// @Produce     json
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.FeedPage}
// @Router      /v1/feed [get]
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "feed.public", func(viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
		return h.Docs.PublicFeed(r.Context(), viewer, limit, offset)
	})
}

// Following godoc
// @Summary     Feed of followed users
// @Tags        feed
// @Produce     json
// @Security    Bearer
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.FeedPage}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/feed/following [get]
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "feed.following", func(viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
		return h.Docs.FollowingFeed(r.Context(), viewer, limit, offset)
	})
}

// Search godoc
// @Summary     Search documents by title or type
// @Tags        feed
// @Produce     json
// @Param       q      query string true  "query, min 2 chars"
// @Param       limit  query int    false "limit"
// @Param       offset query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.FeedPage}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.list(w, r, "feed.search", func(viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
		return h.Docs.Search(r.Context(), viewer, q, limit, offset)
	})
}

// UserDocuments godoc
// @Summary     Documents of a user
// @Description Владелец видит и приватные.
// @Tags        feed
// @Produce     json
// @Param       id     path  int true  "user id"
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.FeedPage}
// @Router      /v1/users/{id}/documents [get]
func (h *Handler) UserDocuments(w http.ResponseWriter, r *http.Request) {
	owner, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, "feed.user_docs", "bad user id", err)
		return
	}
	h.list(w, r, "feed.user_docs", func(viewer domain.UserID, limit, offset int) (domain.FeedPage, error) {
		return h.Docs.UserDocuments(r.Context(), viewer, owner, limit, offset)
	})
}

type lister func(viewer domain.UserID, limit, offset int) (domain.FeedPage, error)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, op string, fn lister) {
	reqID := mw.RequestIDFromCtx(r.Context())
	limit, offset, err := v1.Page(r)
	if err != nil {
		h.fail(w, r, op, "bad paging", err)
		return
	}
	viewer := domain.ViewerFromCtx(r.Context())
	page, err := fn(viewer, limit, offset)
	if err != nil {
		h.fail(w, r, op, "list failed", err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "viewer", viewer, "count", len(page.Items), "total", page.Total)
	v1.WriteOKData(w, r, page)
}
