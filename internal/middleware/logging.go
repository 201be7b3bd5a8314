package middleware

import (
	"net/http"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger loguea cada request al BFF al terminar.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := map[string]any{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     status,
				"bytes":      ww.BytesWritten(),
				"latency":    time.Since(start).String(),
				"request_id": requestIDFrom(r),
			}
			if uid := session.UserID(r.Context()); uid != "" {
				fields["user_id"] = uid
			}

			switch {
			case status >= 500:
				log.Error("request", fields)
			case status >= 400:
				log.Warn("request", fields)
			default:
				log.Info("request", fields)
			}
		})
	}
}
