// Package logx: короткие хелперы логирования для хендлеров:
// каждая запись несёт req_id и op.
package logx

import "github.com/rs/zerolog"

// Info пишет событие уровня info; kv это пары ключ/значение.
func Info(l zerolog.Logger, reqID, op, msg string, kv ...any) {
	l.Info().Str("req_id", reqID).Str("op", op).Fields(kv).Msg(msg)
}

func Warn(l zerolog.Logger, reqID, op, msg string, err error, kv ...any) {
	l.Warn().Err(err).Str("req_id", reqID).Str("op", op).Fields(kv).Msg(msg)
}

func Error(l zerolog.Logger, reqID, op, msg string, err error, kv ...any) {
	l.Error().Err(err).Str("req_id", reqID).Str("op", op).Fields(kv).Msg(msg)
}
