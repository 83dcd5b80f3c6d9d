package profile

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

type Profiles interface {
	Public(ctx context.Context, viewer, uid domain.UserID) (service.PublicProfile, error)
	Me(ctx context.Context, uid domain.UserID) (service.MyProfile, error)
	Update(ctx context.Context, uid domain.UserID, patch domain.ProfilePatch) (service.MyProfile, error)
	AvatarUploadURL(ctx context.Context, uid domain.UserID, contentType string) (service.AvatarTicket, error)
	CommitAvatar(ctx context.Context, uid domain.UserID, key string) (service.AvatarState, error)
	DeleteAvatar(ctx context.Context, uid domain.UserID) error
	SearchUsers(ctx context.Context, viewer domain.UserID, query string, limit, offset int) (domain.UserSearchPage, error)
}

type Handler struct {
	Log      zerolog.Logger
	Profiles Profiles
}

type avatarUploadRequest struct {
	ContentType string `json:"content_type"`
}

type avatarCommitRequest struct {
	ObjectKey string `json:"object_key"`
}

// Public godoc
// @Summary     Public profile with stats
// @Tags        profile
// @Produce     json
// @Param       id path int true "user id"
// @Success     200 {object} domain.APIEnvelope{data=service.PublicProfile}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/users/{id}/profile [get]
func (h *Handler) Public(w http.ResponseWriter, r *http.Request) {
	const op = "profile.public"
	reqID := mw.RequestIDFromCtx(r.Context())

	uid, err := v1.PathID(r, "id")
	if err != nil {
		v1.Fail(h.Log, w, r, op, "bad user id", err)
		return
	}
	viewer := domain.ViewerFromCtx(r.Context())
	p, err := h.Profiles.Public(r.Context(), viewer, uid)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "load failed", err, "user_id", uid)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", uid, "viewer", viewer)
	v1.WriteOKData(w, r, p)
}

// Me godoc
// @Summary     Own profile
// @Tags        profile
// @Produce     json
// @Security    Bearer
// @Success     200 {object} domain.APIEnvelope{data=service.MyProfile}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "profile.me"
	me, ok := h.user(w, r, op)
	if !ok {
		return
	}
	p, err := h.Profiles.Me(r.Context(), me.ID)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "load failed", err, "user_id", me.ID)
		return
	}
	v1.WriteOKData(w, r, p)
}

// Update godoc
// @Summary     Update own profile
// @Description Отсутствующие поля не меняются.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body domain.ProfilePatch true "patch"
// @Success     200 {object} domain.APIEnvelope{data=service.MyProfile}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/me [patch]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "profile.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := h.user(w, r, op)
	if !ok {
		return
	}
	var patch domain.ProfilePatch
	if err := v1.DecodeJSON(r, &patch); err != nil {
		v1.Fail(h.Log, w, r, op, "bad json", err)
		return
	}
	p, err := h.Profiles.Update(r.Context(), me.ID, patch)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "update failed", err, "user_id", me.ID)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKData(w, r, p)
}

// SearchUsers godoc
// @Summary     Search people by name, college or course
// @Tags        profile
// @Produce     json
// @Param       q      query string true  "query, min 2 chars"
// @Param       limit  query int    false "limit, max 50"
// @Param       offset query int    false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.UserSearchPage}
// @Failure     400 {object} domain.APIEnvelope
// @Router      /v1/search/users [get]
func (h *Handler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	const op = "profile.search"
	reqID := mw.RequestIDFromCtx(r.Context())

	limit, offset, err := v1.Page(r)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "bad paging", err)
		return
	}
	viewer := domain.ViewerFromCtx(r.Context())
	page, err := h.Profiles.SearchUsers(r.Context(), viewer, r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "search failed", err, "viewer", viewer)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "viewer", viewer, "found", len(page.Items))
	v1.WriteOKData(w, r, page)
}

func (h *Handler) user(w http.ResponseWriter, r *http.Request, op string) (domain.AuthUser, bool) {
	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.Fail(h.Log, w, r, op, "no user in context", domain.ErrUnauthorized)
	}
	return me, ok
}
