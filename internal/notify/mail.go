package notify

import (
	"context"

	"github.com/rs/zerolog"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// LogMailer пишет письмо в лог вместо отправки (локальная разработка).
type LogMailer struct {
	from string
	log  zerolog.Logger
}

func NewLogMailer(from string, log zerolog.Logger) *LogMailer {
	return &LogMailer{from: from, log: log}
}

func (m *LogMailer) Send(_ context.Context, to, subject, body string) error {
	m.log.Info().Str("from", m.from).Str("to", to).Str("subject", subject).Str("body", body).Msg("mail")
	return nil
}
