package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
)

var errInterno = errors.New("ocurrió un error inesperado")

// Recover reemplaza a chi/middleware.Recoverer: loguea el panic con el logger de la app
// y responde con el mismo formato de toast que el resto de errores.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
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
				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"path":       r.URL.Path,
					"request_id": requestIDFrom(r),
					"stack":      string(debug.Stack()),
				})
				respond.Error(w, http.StatusInternalServerError, errInterno)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
