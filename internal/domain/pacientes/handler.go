package pacientes

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pacientes", func(pr chi.Router) {
		pr.With(middleware.RequireCap(session.CapPacientesVer)).Get("/", listPacientesHandler(svc))
		pr.With(middleware.RequireCap(session.CapPacientesEdit)).Post("/", createPacienteHandler(svc))
		pr.With(middleware.RequireCap(session.CapPacientesVer)).Get("/duplicados", duplicadosHandler(svc))
		pr.With(middleware.RequireCap(session.CapPacientesVer)).Get("/{pacienteID}", getPacienteHandler(svc))
		pr.With(middleware.RequireCap(session.CapPacientesEdit)).Put("/{pacienteID}", updatePacienteHandler(svc))
	})
}

// pacienteCreado incluye los posibles duplicados para avisar después del alta.
type pacienteCreado struct {
	Paciente   Paciente       `json:"paciente"`
	Duplicados []Coincidencia `json:"duplicados"`
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

func listPacientesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID, err := respond.QueryID(r, "clienteId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}

		var items []Paciente
		if clienteID > 0 {
			items, err = svc.ListarPorCliente(r.Context(), clienteID)
		} else {
			items, err = svc.Listar(r.Context(), r.URL.Query().Get("q"))
		}
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func getPacienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "pacienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		p, err := svc.Obtener(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, p)
	}
}

// duplicadosHandler godoc
// @Summary Posibles pacientes duplicados
// @Description Compara el nombre (sin tildes ni mayúsculas) contra los pacientes existentes. Es solo un aviso; no bloquea el alta.
// @Tags pacientes
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param nombre query string true "Nombre a comparar"
// @Param clienteId query int false "Restringe a los pacientes del cliente"
// @Param excluirId query int false "Paciente a excluir (edición)"
// @Success 200 {object} respond.Body
// @Router /pacientes/duplicados [get]
func duplicadosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID, err := respond.QueryID(r, "clienteId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		excluirID, err := respond.QueryID(r, "excluirId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		items, err := svc.PosiblesDuplicados(r.Context(), r.URL.Query().Get("nombre"), clienteID, excluirID)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func createPacienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Input
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}

		// Los candidatos se calculan antes del alta, si no el nuevo se compara consigo mismo.
		dups, _ := svc.PosiblesDuplicados(r.Context(), req.Nombre, req.ClienteID, 0)

		p, err := svc.Crear(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		if dups == nil {
			dups = []Coincidencia{}
		}
		respond.Mutacion(w, http.StatusCreated, pacienteCreado{Paciente: p, Duplicados: dups}, "Paciente registrado correctamente")
	}
}

func updatePacienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "pacienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req Input
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		p, err := svc.Actualizar(r.Context(), id, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, p, "Paciente actualizado")
	}
}
