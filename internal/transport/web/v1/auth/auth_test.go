package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/service"
)

type stubAuth struct {
	requestErr error
	logoutErr  error
	revoked    string
}

func (s *stubAuth) RequestOTP(context.Context, string) error { return s.requestErr }

func (s *stubAuth) VerifyOTP(_ context.Context, email, code string) (service.Session, error) {
	if code != "123456" {
		return service.Session{}, domain.ErrOTPInvalid
	}
	return service.Session{AccessToken: "tok", TokenType: "bearer", User: domain.User{ID: 1, Email: email}}, nil
}

func (s *stubAuth) Logout(_ context.Context, u domain.AuthUser) error {
	s.revoked = u.JTI
	return s.logoutErr
}

func post(h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	return rec
}

func TestRequestOTP(t *testing.T) {
	stub := &stubAuth{}
	h := &Handler{Log: zerolog.Nop(), Auth: stub}

	assert.Equal(t, http.StatusOK, post(h.RequestOTP, `{"email":"a@b.co"}`).Code)
	assert.Equal(t, http.StatusBadRequest, post(h.RequestOTP, `{"mail":"a@b.co"}`).Code)

	stub.requestErr = domain.ErrOTPCooldown
	rec := post(h.RequestOTP, `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "OTP.COOLDOWN_ACTIVE")
}

func TestVerifyOTP(t *testing.T) {
	h := &Handler{Log: zerolog.Nop(), Auth: &stubAuth{}}

	rec := post(h.VerifyOTP, `{"email":"a@b.co","otp":"123456"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"access_token":"tok"`)

	rec = post(h.VerifyOTP, `{"email":"a@b.co","otp":"000000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "OTP.INVALID")
}

func TestLogout(t *testing.T) {
	stub := &stubAuth{}
	h := &Handler{Log: zerolog.Nop(), Auth: stub}

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodDelete, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodDelete, "/", nil)
	req = req.WithContext(domain.WithUser(req.Context(), domain.AuthUser{ID: 1, JTI: "abc"}))
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", stub.revoked)

	stub.logoutErr = errors.New("redis down")
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
