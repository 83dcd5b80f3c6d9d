package doc

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// Delete godoc
// @Summary     Delete document
// @Description Мягкое удаление, только владелец.
// @Tags        documents
// @Produce     json
// @Security    Bearer
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "docs.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := domain.UserFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad doc id", err)
		return
	}
	if err := h.Docs.Delete(r.Context(), me.ID, id); err != nil {
		h.fail(w, r, op, "delete failed", err, "doc_id", id)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "doc_id", id, "user_id", me.ID)
	v1.WriteOKData(w, r, map[string]any{"id": id, "deleted": true})
}
