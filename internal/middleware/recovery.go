package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
)

// PanicHandler writes the surface-appropriate error response after a
// recovered panic (JSON envelope for the API, an error page for the
// web)
type PanicHandler func(w http.ResponseWriter, r *http.Request, err any)

// Recovery returns middleware that turns handler panics into logged
// 500 responses instead of dropped connections
func Recovery(logger *slog.Logger, handler PanicHandler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						slog.Any("error", err),
						slog.String("stack", string(debug.Stack())),
						slog.String("method", r.Method),
						slog.String("path", r.URL.Path),
					)
					handler(w, r, err)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
