package doc

import (
	"net/http"
	"strings"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/service"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

type uploadURLRequest struct {
	ContentType string `json:"content_type"`
}

// UploadURL godoc
// @Summary     Presigned upload URL
// @Description Выдаёт ключ объекта в папке пользователя и подписанный PUT.
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body uploadURLRequest true "content_type"
// @Success     200 {object} domain.APIEnvelope{data=service.UploadTicket}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     401 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /v1/documents/upload-url [post]
func (h *Handler) UploadURL(w http.ResponseWriter, r *http.Request) {
	const op = "docs.upload_url"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := domain.UserFromCtx(r.Context())

	var req uploadURLRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		h.fail(w, r, op, "bad json", err)
		return
	}
	ticket, err := h.Docs.UploadURL(r.Context(), me.ID, req.ContentType)
	if err != nil {
		h.fail(w, r, op, "upload url failed", err, "content_type", req.ContentType)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "object_key", ticket.ObjectKey)
	v1.WriteOKData(w, r, ticket)
}

// Commit godoc
// @Summary     Commit uploaded object as document
// @Description Идемпотентно по object_key: повтор вернёт тот же документ.
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body service.CommitInput true "object_key, title, visibility"
// @Success     201 {object} domain.APIEnvelope{data=service.DocumentDetail}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Router      /v1/documents/commit [post]
func (h *Handler) Commit(w http.ResponseWriter, r *http.Request) {
	const op = "docs.commit"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := domain.UserFromCtx(r.Context())

	var in service.CommitInput
	if err := v1.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, op, "bad json", err)
		return
	}
	det, err := h.Docs.Commit(r.Context(), me.ID, in)
	if err != nil {
		h.fail(w, r, op, "commit failed", err, "object_key", in.ObjectKey)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "doc_id", det.ID)
	v1.WriteCreated(w, r, det)
}

// Upload godoc
// @Summary     Upload document through API
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       title      formData string true  "title"
// @Param       visibility formData string false "public|private"
// @Param       file       formData file   true  "file"
// @Success     201 {object} domain.APIEnvelope{data=service.DocumentDetail}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /v1/documents/upload [post]
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "docs.upload"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := domain.UserFromCtx(r.Context())

	if h.MaxUploadBytes > 0 {
		// запас на остальные поля формы
		r.Body = http.MaxBytesReader(w, r.Body, h.MaxUploadBytes+(1<<20))
	}
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		h.fail(w, r, op, "parse form", domain.ErrBadParams, "cause", err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, hdr, err := r.FormFile("file")
	if err != nil {
		h.fail(w, r, op, "no file part", domain.ErrBadParams)
		return
	}
	defer file.Close()

	ct := hdr.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	det, err := h.Docs.Upload(r.Context(), me.ID, service.UploadInput{
		Title:       r.FormValue("title"),
		Visibility:  domain.Visibility(strings.TrimSpace(r.FormValue("visibility"))),
		Filename:    hdr.Filename,
		ContentType: ct,
		Size:        hdr.Size,
		Body:        file,
	})
	if err != nil {
		h.fail(w, r, op, "upload failed", err, "filename", hdr.Filename, "size", hdr.Size)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "doc_id", det.ID, "size", hdr.Size)
	v1.WriteCreated(w, r, det)
}

// CreatePost godoc
// @Summary     Create text post
// @Tags        documents
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body service.PostInput true "title, content, visibility"
// @Success     201 {object} domain.APIEnvelope{data=service.DocumentDetail}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/documents/posts [post]
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	const op = "docs.create_post"
	reqID := mw.RequestIDFromCtx(r.Context())
	me, _ := domain.UserFromCtx(r.Context())

	var in service.PostInput
	if err := v1.DecodeJSON(r, &in); err != nil {
		h.fail(w, r, op, "bad json", err)
		return
	}
	det, err := h.Docs.CreatePost(r.Context(), me.ID, in)
	if err != nil {
		h.fail(w, r, op, "create post failed", err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "doc_id", det.ID)
	v1.WriteCreated(w, r, det)
}
