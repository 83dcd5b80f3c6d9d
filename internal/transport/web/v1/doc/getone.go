package doc

import (
	"net/http"
	"strconv"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// GetOne godoc
// @Summary     Document detail
// @Description Приватный документ виден только владельцу. file_url/preview_url могут быть null.
// @Tags        documents
// @Produce     json
// @Param       id path int true "document id"
// @Success     200 {object} domain.APIEnvelope{data=service.DocumentDetail}
// @Failure     403 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/documents/{id} [get]
func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "docs.get_one"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad doc id", err, "raw", r.PathValue("id"))
		return
	}
	viewer := domain.ViewerFromCtx(r.Context())
	det, err := h.Docs.Detail(r.Context(), viewer, id)
	if err != nil {
		h.fail(w, r, op, "detail failed", err, "doc_id", id)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=0")
	logx.Info(h.Log, reqID, op, "ok", "doc_id", id, "viewer", viewer)
	v1.WriteOKData(w, r, det)
}

// Download godoc
// @Summary     Signed download link
// @Description Сбой хранилища здесь: 502, а не пустая ссылка.
// @Tags        documents
// @Produce     json
// @Param       id   path  int true  "document id"
// @Param       page query int false "PDF page"
// @Success     200 {object} domain.APIEnvelope{data=service.DownloadLink}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /v1/documents/{id}/download [get]
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	const op = "docs.download"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.PathID(r, "id")
	if err != nil {
		h.fail(w, r, op, "bad doc id", err)
		return
	}
	page := 0
	if s := r.URL.Query().Get("page"); s != "" {
		if page, err = strconv.Atoi(s); err != nil || page < 1 {
			h.fail(w, r, op, "bad page", domain.ErrBadParams, "page", s)
			return
		}
	}

	link, err := h.Docs.DownloadURL(r.Context(), domain.ViewerFromCtx(r.Context()), id, page)
	if err != nil {
		h.fail(w, r, op, "download url failed", err, "doc_id", id)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "doc_id", id)
	v1.WriteOKData(w, r, link)
}
