package social

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
)

// ToggleFollow godoc
// @Summary     Follow or unfollow a user
// @Tags        follows
// @Produce     json
// @Security    Bearer
// @Param       id path int true "user id"
// @Success     200 {object} domain.APIEnvelope{data=service.FollowState}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/users/{id}/follow [post]
func (h *Handler) ToggleFollow(w http.ResponseWriter, r *http.Request) {
	const op = "follows.toggle"
	me, target, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Follows.Toggle(r.Context(), me.ID, target)
	if err != nil {
		h.fail(w, r, op, "toggle failed", err, "target", target, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "target", target, "user_id", me.ID, "following", st.IsFollowing)
}

// Unfollow godoc
// @Summary     Unfollow a user
// @Tags        follows
// @Produce     json
// @Security    Bearer
// @Param       id path int true "user id"
// @Success     200 {object} domain.APIEnvelope{data=service.FollowState}
// @Router      /v1/users/{id}/follow [delete]
func (h *Handler) Unfollow(w http.ResponseWriter, r *http.Request) {
	const op = "follows.unfollow"
	me, target, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Follows.Unfollow(r.Context(), me.ID, target)
	if err != nil {
		h.fail(w, r, op, "unfollow failed", err, "target", target, "user_id", me.ID)
		return
	}
	h.ok(w, r, op, st, "target", target, "user_id", me.ID)
}

// FollowStatus godoc
// @Summary     Whether the current user follows a user
// @Tags        follows
// @Produce     json
// @Security    Bearer
// @Param       id path int true "user id"
// @Success     200 {object} domain.APIEnvelope{data=service.FollowState}
// @Router      /v1/users/{id}/follow [get]
func (h *Handler) FollowStatus(w http.ResponseWriter, r *http.Request) {
	const op = "follows.status"
	me, target, ok := h.withUserAndID(w, r, op)
	if !ok {
		return
	}
	st, err := h.Follows.Status(r.Context(), me.ID, target)
	if err != nil {
		h.fail(w, r, op, "status failed", err, "target", target)
		return
	}
	h.ok(w, r, op, st, "target", target, "user_id", me.ID)
}

// Followers godoc
// @Summary     Followers of a user
// @Tags        follows
// @Produce     json
// @Param       id     path  int true  "user id"
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.UserPage}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/users/{id}/followers [get]
func (h *Handler) Followers(w http.ResponseWriter, r *http.Request) {
	h.users(w, r, "follows.followers", func(id int64, limit, offset int) (domain.UserPage, error) {
		return h.Follows.Followers(r.Context(), id, limit, offset)
	})
}

// Following godoc
// @Summary     Users followed by a user
// @Tags        follows
// @Produce     json
// @Param       id     path  int true  "user id"
// @Param       limit  query int false "limit"
// @Param       offset query int false "offset"
// @Success     200 {object} domain.APIEnvelope{data=domain.UserPage}
// @Failure     404 {object} domain.APIEnvelope
// @Router      /v1/users/{id}/following [get]
func (h *Handler) Following(w http.ResponseWriter, r *http.Request) {
	h.users(w, r, "follows.following", func(id int64, limit, offset int) (domain.UserPage, error) {
		return h.Follows.Following(r.Context(), id, limit, offset)
	})
}
