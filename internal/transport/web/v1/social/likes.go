package social

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// ToggleLike godoc
// @Summary     Like or unlike a document
// @Description Повторный вызов снимает лайк. Приватный чужой документ: 403.
// @Tags        likes
// @Produce     json
// @Security    Bearer
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.LikeState}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/like [post]
func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	const op = "likes.toggle"
	me, id, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Likes.Toggle(r.Context(), me.ID, id)
	if err != nil {
		h.fail(w, r, op, "toggle failed", err, "doc_id", id, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "doc_id", id, "user_id", me.ID, "liked", st.IsLiked)
}

// Unlike godoc
// @Summary     Remove like
// @Description Идемпотентно: без лайка просто вернёт текущее состояние.
// @Tags        likes
// @Produce     json
// @Security    Bearer
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.LikeState}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/like [delete]
func (h *Handler) Unlike(w http.ResponseWriter, r *http.Request) {
	const op = "likes.unlike"
	me, id, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Likes.Unlike(r.Context(), me.ID, id)
	if err != nil {
		h.fail(w, r, op, "unlike failed", err, "doc_id", id, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "doc_id", id, "user_id", me.ID)
}

// LikeInfo godoc
// @Summary     Like count and viewer state
// @Tags        likes
// @Produce     json
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.LikeState}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/likes [get]
func (h *Handler) LikeInfo(w http.ResponseWriter, r *http.Request) {
	const op = "likes.info"
	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad doc id", err, "raw", r.PathValue("id"))
		return
	}
	viewer := domain.ViewerFromCtx(r.Context())
	st, err := h.Likes.Info(r.Context(), viewer, id)
	if err != nil {
		h.fail(w, r, op, "info failed", err, "doc_id", id)
		return
	}
	h.ok(w, r, op, st, "doc_id", id, "viewer", viewer)
}

// Likers godoc
// @Summary     Users who liked a document
// @Tags        likes
// @Produce     json
// @Param       id     path  int true  "document id"
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.UserPage}
// @Failure     403 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/likers [get]
func (h *Handler) Likers(w http.ResponseWriter, r *http.Request) {
	viewer := domain.ViewerFromCtx(r.Context())
	h.users(w, r, "likes.likers", func(id int64, limit, offset int) (domain.UserPage, error) {
		return h.Likes.Likers(r.Context(), viewer, id, limit, offset)
	})
}
