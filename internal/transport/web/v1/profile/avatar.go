package profile

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// AvatarUploadURL godoc
// @Summary     Presigned PUT for a new avatar
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body avatarUploadRequest true "content_type: image/jpeg|png|webp"
// @Success     200 {object} domain.APIEnvelope{data=service.AvatarTicket}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     502 {object} domain.APIEnvelope
// @Router      /v1/me/avatar/upload-url [post]
func (h *Handler) AvatarUploadURL(w http.ResponseWriter, r *http.Request) {
	const op = "profile.avatar_upload_url"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := h.user(w, r, op)
	if !ok {
		return
	}
	var req avatarUploadRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		v1.Fail(h.Log, w, r, op, "bad json", err)
		return
	}
	ticket, err := h.Profiles.AvatarUploadURL(r.Context(), me.ID, req.ContentType)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "presign failed", err, "content_type", req.ContentType)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID, "object_key", ticket.ObjectKey)
	v1.WriteOKData(w, r, ticket)
}

// CommitAvatar godoc
// @Summary     Set uploaded object as avatar
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body avatarCommitRequest true "object_key"
// @Success     200 {object} domain.APIEnvelope{data=service.AvatarState}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Router      /v1/me/avatar/commit [post]
func (h *Handler) CommitAvatar(w http.ResponseWriter, r *http.Request) {
	const op = "profile.avatar_commit"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := h.user(w, r, op)
	if !ok {
		return
	}
	var req avatarCommitRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		v1.Fail(h.Log, w, r, op, "bad json", err)
		return
	}
	st, err := h.Profiles.CommitAvatar(r.Context(), me.ID, req.ObjectKey)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "commit failed", err, "object_key", req.ObjectKey)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKData(w, r, st)
}

// DeleteAvatar godoc
// @Summary     Remove avatar
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/me/avatar [delete]
func (h *Handler) DeleteAvatar(w http.ResponseWriter, r *http.Request) {
	const op = "profile.avatar_delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := h.user(w, r, op)
	if !ok {
		return
	}
	if err := h.Profiles.DeleteAvatar(r.Context(), me.ID); err != nil {
		v1.Fail(h.Log, w, r, op, "delete failed", err, "user_id", me.ID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKData(w, r, map[string]bool{"deleted": true})
}
