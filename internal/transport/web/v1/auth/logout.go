package auth

import (
	"net/http"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
	v1 "github.com/BheruLalM/edustore-api/internal/transport/web/v1"
)

// Logout godoc
// @Summary     Revoke current token
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     401 {object} domain.APIEnvelope
// @Router      /v1/auth/session [delete]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "auth.logout"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.UserFromCtx(r.Context())
	if !ok {
		v1.WriteDomainError(w, r, domain.ErrUnauthorized)
		return
	}
	if err := h.Auth.Logout(r.Context(), me); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err, "user_id", me.ID)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", me.ID)
	v1.WriteOKData(w, r, map[string]bool{"revoked": true})
}
