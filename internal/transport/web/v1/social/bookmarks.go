package social

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// ToggleBookmark godoc
// @Summary     Bookmark or unbookmark a document
// @Tags        bookmarks
// @Produce     json
// @Security    Bearer
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.BookmarkState}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/bookmark [post]
func (h *Handler) ToggleBookmark(w http.ResponseWriter, r *http.Request) {
	const op = "bookmarks.toggle"
	me, id, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Bookmarks.Toggle(r.Context(), me.ID, id)
	if err != nil {
		h.fail(w, r, op, "toggle failed", err, "doc_id", id, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "doc_id", id, "user_id", me.ID, "bookmarked", st.IsBookmarked)
}

// RemoveBookmark godoc
// @Summary     Remove bookmark
// @Tags        bookmarks
// @Produce     json
// @Security    Bearer
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.BookmarkState}
// @Router      /v1/documents/{id}/bookmark [delete]
func (h *Handler) RemoveBookmark(w http.ResponseWriter, r *http.Request) {
	const op = "bookmarks.remove"
	me, id, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Bookmarks.Remove(r.Context(), me.ID, id)
	if err != nil {
		h.fail(w, r, op, "remove failed", err, "doc_id", id, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "doc_id", id, "user_id", me.ID)
}

// MyBookmarks godoc
// @Summary     Bookmarked documents, newest bookmark first
// @Tags        bookmarks
// @Produce     json
// @Security    Bearer
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.FeedPage}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/me/bookmarks [get]
func (h *Handler) MyBookmarks(w http.ResponseWriter, r *http.Request) {
	const op = "bookmarks.list"
	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		h.fail(w, r, op, "no user in context", domain.ErrUnauthorized)
		return
	}
	limit, offset, err := v1.Page(r)
	if err != nil {
		h.fail(w, r, op, "bad paging", err)
		return
	}
	page, err := h.Bookmarks.List(r.Context(), me.ID, limit, offset)
	if err != nil {
		h.fail(w, r, op, "list failed", err, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, page, "user_id", me.ID, "count", len(page.Items))
}
