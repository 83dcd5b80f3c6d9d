package mw

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

const internalErrorBody = `{"error":{"code":"INTERNAL_ERROR","text":"unexpected"}}`

// Recover превращает панику в 500 с общим конвертом.
func Recover(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				l.Error().
					Str("req_id", RequestIDFromCtx(r.Context())).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Bytes("stack", debug.Stack()).
					Msg("handler panicked")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(internalErrorBody + "\n"))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
