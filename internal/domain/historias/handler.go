package historias

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/historias/paciente/{pacienteID}", func(hr chi.Router) {
		hr.With(middleware.RequireCap(session.CapHistoriasVer)).Get("/", getHistoriaHandler(svc))
		hr.With(middleware.RequireCap(session.CapHistoriasVer)).Get("/pdf", pdfHandler(svc))
		hr.With(middleware.RequireCap(session.CapHistoriasEdit)).Post("/registros", addRegistroHandler(svc))
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	}
	return 0
}

func getHistoriaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "pacienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		h, err := svc.ObtenerPorPaciente(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, h)
	}
}

func addRegistroHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "pacienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req RegistroInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		reg, err := svc.AgregarRegistro(r.Context(), id, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, reg, "Registro médico agregado")
	}
}

func pdfHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "pacienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		b, err := svc.DescargarPDF(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Archivo(w, b)
	}
}
