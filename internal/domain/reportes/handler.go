package reportes

import (
	"errors"
	"net/http"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, loc *time.Location) {
	r.Route("/reportes", func(rr chi.Router) {
		// El dashboard lo ve cualquier usuario con sesión; las cifras las filtra el servidor por rol.
		rr.With(middleware.RequireSession).Get("/dashboard", dashboardHandler(svc))
		rr.With(middleware.RequireCap(session.CapReportes)).Get("/{tipo}/pdf", exportarHandler(svc, loc))
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrTipo):
		return http.StatusBadRequest
	}
	return 0
}

func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Dashboard(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, d)
	}
}

// exportarHandler godoc
// @Summary Exportar reporte en PDF
// @Tags reportes
// @Produce application/pdf
// @Param tipo path string true "citas | facturas | pacientes | ingresos"
// @Param desde query string true "YYYY-MM-DD"
// @Param hasta query string true "YYYY-MM-DD"
// @Success 200 {file} binary
// @Failure 400 {object} respond.Body
// @Router /reportes/{tipo}/pdf [get]
func exportarHandler(svc *Service, loc *time.Location) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		desde, err := fechas.ParseFecha(r.URL.Query().Get("desde"), loc)
		if err != nil {
			respond.Error(w, 0, respond.ErrBadRequest)
			return
		}
		hasta, err := fechas.ParseFecha(r.URL.Query().Get("hasta"), loc)
		if err != nil {
			respond.Error(w, 0, respond.ErrBadRequest)
			return
		}
		b, err := svc.Exportar(r.Context(), Exportacion{Tipo: Tipo(chi.URLParam(r, "tipo")), Desde: desde, Hasta: hasta})
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Archivo(w, b)
	}
}
