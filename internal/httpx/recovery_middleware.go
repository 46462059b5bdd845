package httpx

import (
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

func RecoveryMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := newResponseWriter(w)
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler {
						panic(err)
					}
					logger.Error().
						Str("request_id", RequestIDFrom(r)).
						Interface("panic", err).
						Bytes("stack", debug.Stack()).
						Msg("panic recovered")

					if !rw.wroteHeader() {
						JSONInternalError(rw)
					}
				}
			}()
			next.ServeHTTP(rw, r)
		})
	}
}
