package service

import (
	"context"
	"fmt"
	"time"

	"github.com/BheruLalM/edustore-api/internal/domain"
	"github.com/BheruLalM/edustore-api/internal/notify"
)

type Auth struct {
	Deps
	otp       domain.OTPStore
	tokens    domain.TokenManager
	blacklist domain.TokenBlacklist
	mail      notify.Mailer
}

func NewAuth(d Deps, otp domain.OTPStore, tokens domain.TokenManager, bl domain.TokenBlacklist, mail notify.Mailer) *Auth {
	return &Auth{Deps: d, otp: otp, tokens: tokens, blacklist: bl, mail: mail}
}

type Session struct {
	AccessToken domain.Token `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        domain.User  `json:"user"`
}

// RequestOTP выдаёт код и отправляет письмо после ответа.
func (s *Auth) RequestOTP(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return domain.ErrInvalidEmail
	}
	code, err := s.otp.Issue(ctx, email)
	if err != nil {
		return err
	}

	if s.Bg != nil && s.mail != nil {
		s.Bg.Go("mail.otp", func(ctx context.Context) error {
			return s.mail.Send(ctx, email, "Your login code", fmt.Sprintf("Your login code is %s", code))
		})
	}
	s.Log.Info().Str("email", email).Msg("otp issued")
	return nil
}

// VerifyOTP проверяет код, создаёт пользователя при первом входе и выдаёт токен.
func (s *Auth) VerifyOTP(ctx context.Context, email, code string) (Session, error) {
	email = domain.NormalizeEmail(email)
	if !domain.ValidEmail(email) {
		return Session{}, domain.ErrInvalidEmail
	}
	if !domain.ValidOTP(code) {
		return Session{}, domain.ErrOTPInvalid
	}
	if err := s.otp.Verify(ctx, email, code); err != nil {
		return Session{}, err
	}

	u, err := s.Users.UpsertVerifiedUser(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if !u.IsActive {
		return Session{}, domain.ErrUserInactive
	}

	tok, claims, err := s.tokens.Issue(ctx, u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("issue token: %w", err)
	}
	s.syncChat(u.ID)
	s.Log.Info().Int64("user_id", u.ID).Msg("user logged in")

	return Session{AccessToken: tok, TokenType: "bearer", ExpiresAt: claims.ExpiresAt, User: u}, nil
}

// Logout отзывает токен до истечения его срока и сбрасывает
// закешированные связи пользователя: следующий вход прочитает их заново.
func (s *Auth) Logout(ctx context.Context, u domain.AuthUser) error {
	if err := s.blacklist.Revoke(ctx, u.JTI, u.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.States.Clear(ctx, u.ID)
	s.Log.Info().Int64("user_id", u.ID).Msg("user logged out")
	return nil
}

// Authenticate разбирает bearer-токен. Недоступный Redis не блокирует вход:
// проверка отзыва пропускается с предупреждением в логе.
func (s *Auth) Authenticate(ctx context.Context, raw string) (domain.AuthUser, error) {
	claims, err := s.tokens.Parse(ctx, domain.Token(raw))
	if err != nil {
		return domain.AuthUser{}, domain.ErrUnauthorized
	}
	revoked, err := s.blacklist.IsRevoked(ctx, claims.JTI)
	if err != nil {
		s.Log.Warn().Err(err).Str("jti", claims.JTI).Msg("blacklist check failed, allowing")
	}
	if revoked {
		return domain.AuthUser{}, domain.ErrUnauthorized
	}
	return domain.AuthUser{ID: claims.UserID, Email: claims.Email, JTI: claims.JTI, ExpiresAt: claims.ExpiresAt}, nil
}
