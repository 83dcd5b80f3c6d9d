package comment

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

type Comments interface {
	Create(ctx context.Context, uid domain.UserID, doc domain.DocID, in service.CommentInput) (domain.Comment, error)
	Delete(ctx context.Context, uid domain.UserID, id domain.CommentID) error
	List(ctx context.Context, viewer domain.UserID, doc domain.DocID) ([]domain.CommentNode, error)
}

type Handler struct {
	Log      zerolog.Logger
	Comments Comments
}

// Create godoc
// @Summary     Add a comment or a reply
// @Tags        comments
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id      path int                  true "document id"
// @Param       request body service.CommentInput true "content, parent_id"
// @Success     201 {object} domain.APIEnvelope{data=domain.Comment}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/comments [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "comments.create"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.Fail(h.Log, w, r, op, "no user in context", domain.ErrUnauthorized)
		return
	}
	doc, err := v1.PathID(r, "id")
	if err != nil {
		v1.Fail(h.Log, w, r, op, "bad doc id", err)
		return
	}
	var in service.CommentInput
	if err := v1.DecodeJSON(r, &in); err != nil {
		v1.Fail(h.Log, w, r, op, "bad json", err)
		return
	}

	c, err := h.Comments.Create(r.Context(), me.ID, doc, in)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "create failed", err, "doc_id", doc, "user_id", me.ID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "doc_id", doc, "comment_id", c.ID)
	v1.WriteCreated(w, r, c)
}

// List godoc
// @Summary     Comment thread of a document
// @Description Дерево ответов ограничено по глубине, корни: от старых к новым.
// @Tags        comments
// @Produce     json
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=[]domain.CommentNode}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/comments [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "comments.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	doc, err := v1.PathID(r, "id")
	if err != nil {
		v1.Fail(h.Log, w, r, op, "bad doc id", err)
		return
	}
	tree, err := h.Comments.List(r.Context(), domain.ViewerFromCtx(r.Context()), doc)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "list failed", err, "doc_id", doc)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "doc_id", doc, "roots", len(tree))
	v1.WriteOKData(w, r, tree)
}

// Delete godoc
// @Summary     Delete own comment
// @Description Мягкое удаление: ответы остаются в дереве.
// @Tags        comments
// @Produce     json
// @Security    Bearer
// @Param       id path int true "comment id"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/comments/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "comments.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.Fail(h.Log, w, r, op, "no user in context", domain.ErrUnauthorized)
		return
	}
	id, err := v1.PathID(r, "id")
	if err != nil {
		v1.Fail(h.Log, w, r, op, "bad comment id", err)
		return
	}
	if err := h.Comments.Delete(r.Context(), me.ID, id); err != nil {
		v1.Fail(h.Log, w, r, op, "delete failed", err, "comment_id", id, "user_id", me.ID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "comment_id", id)
	v1.WriteOKData(w, r, map[string]bool{"deleted": true})
}
