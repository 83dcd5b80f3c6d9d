package auth

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

type Auth interface {
	RequestOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) (service.Session, error)
	Logout(ctx context.Context, u domain.AuthUser) error
}

type Handler struct {
	Log  zerolog.Logger
	Auth Auth
}

type otpRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// RequestOTP godoc
// @Summary     Send login code
// @Description Код уходит письмом; повтор раньше кулдауна: 429.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body otpRequest true "email"
// @Success     200 {object} domain.APIEnvelope{data=object}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     429 {object} domain.APIEnvelope
// @Router      /v1/auth/otp [post]
func (h *Handler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	const op = "auth.request_otp"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req otpRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Warn(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	if err := h.Auth.RequestOTP(r.Context(), req.Email); err != nil {
		logx.Warn(h.Log, reqID, op, "otp request rejected", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	logx.Info(h.Log, reqID, op, "otp sent")
	v1.WriteOKData(w, r, map[string]string{"message": "OTP sent"})
}

// VerifyOTP godoc
// @Summary     Exchange code for access token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body verifyRequest true "email, otp"
// @Success     200 {object} domain.APIEnvelope{data=service.Session}
// @Failure     400 {object} domain.APIEnvelope
// @Failure     403 {object} domain.APIEnvelope
// @Failure     429 {object} domain.APIEnvelope
// @Router      /v1/auth/otp/verify [post]
func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	const op = "auth.verify_otp"
	reqID := mw.RequestIDFromCtx(r.Context())

	var req verifyRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Warn(h.Log, reqID, op, "bad json", err)
		v1.WriteDomainError(w, r, err)
		return
	}
	sess, err := h.Auth.VerifyOTP(r.Context(), req.Email, req.OTP)
	if err != nil {
		v1.Fail(h.Log, w, r, op, "verify failed", err)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "user_id", sess.User.ID)
	v1.WriteOKData(w, r, sess)
}
