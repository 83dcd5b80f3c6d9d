package mw

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Logging: финиш запроса: статус, размер, длительность.
// Если передан Latency, длительность пишется и в гистограмму маршрута.
func Logging(l zerolog.Logger, lat *Latency) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			mw := &metaWriter{ResponseWriter: w}

			next.ServeHTTP(mw, r)

			dur := time.Since(start)
			status := mw.statusOrOK()

			ev := l.Info()
			if status >= http.StatusInternalServerError {
				ev = l.Warn()
			}
			ev.Str("req_id", RequestIDFromCtx(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("size", mw.size).
				Int64("duration_ms", dur.Milliseconds()).
				Msg("request")

			// r.Pattern заполняет ServeMux при совпадении маршрута
			if lat != nil && r.Pattern != "" {
				lat.Record(r.Pattern, dur)
			}
		})
	}
}
