package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/transport/web/logx"
	"github.com/BheruLalM/edustore-api/internal/transport/web/mw"
)

// MapDomainError решает HTTP-статус + error.code/text для конверта.
// У *domain.Error код и текст свои, статус берётся по его Kind.
func MapDomainError(err error) (httpStatus int, env domain.APIEnvelope) {
	var de *domain.Error
	if errors.As(err, &de) {
		return statusOf(de.Kind), domain.Fail(de.Code, de.Msg)
	}

	switch {
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, domain.Fail(domain.ErrCodeBadParams, "bad params")
	case errors.Is(err, domain.ErrUnauth):
		return http.StatusUnauthorized, domain.Fail(domain.ErrCodeUnauth, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, domain.Fail(domain.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, domain.Fail(domain.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, domain.Fail(domain.ErrCodeMethodNotAllowed, "method not allowed")
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, domain.Fail(domain.ErrCodeConflict, "conflict")
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, domain.Fail(domain.ErrCodeRateLimited, "too many requests")
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway, domain.Fail(domain.ErrCodeUpstream, "upstream unavailable")
	case errors.Is(err, domain.ErrNotReady):
		return http.StatusServiceUnavailable, domain.Fail(domain.ErrCodeNotReady, "not ready")
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented, domain.Fail(domain.ErrCodeNotImplemented, "not implemented")
	default:
		// Таймауты/отмены: как 500
		return http.StatusInternalServerError, domain.Fail(domain.ErrCodeUnexpected, "unexpected")
	}
}

func statusOf(kind error) int {
	switch kind {
	case domain.ErrBadParams:
		return http.StatusBadRequest
	case domain.ErrUnauth:
		return http.StatusUnauthorized
	case domain.ErrForbidden:
		return http.StatusForbidden
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrConflict:
		return http.StatusConflict
	case domain.ErrRateLimited:
		return http.StatusTooManyRequests
	case domain.ErrUpstream:
		return http.StatusBadGateway
	case domain.ErrNotReady:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteEnvelope пишет конверт; для HEAD: без тела
func WriteEnvelope(w http.ResponseWriter, r *http.Request, status int, env domain.APIEnvelope) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(mw.HeaderRequestID, mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(env)
}

// Шорткаты успеха
func WriteOKData(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusOK, domain.OkData(data))
}
func WriteCreated(w http.ResponseWriter, r *http.Request, data any) {
	WriteEnvelope(w, r, http.StatusCreated, domain.OkData(data))
}

// Шорткаты ошибок
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, env := MapDomainError(err)
	WriteEnvelope(w, r, status, env)
}

// Fail логирует отказ и пишет конверт ошибки; 5xx: уровнем error, остальное: warn.
func Fail(l zerolog.Logger, w http.ResponseWriter, r *http.Request, op, msg string, err error, kv ...any) {
	reqID := mw.RequestIDFromCtx(r.Context())
	if status, _ := MapDomainError(err); status >= http.StatusInternalServerError {
		logx.Error(l, reqID, op, msg, err, kv...)
	} else {
		logx.Warn(l, reqID, op, msg, err, kv...)
	}
	WriteDomainError(w, r, err)
}
