package citas

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/citas", func(cr chi.Router) {
		cr.With(middleware.RequireCap(session.CapCitasVer)).Get("/", listCitasHandler(svc))
		cr.With(middleware.RequireCap(session.CapCitasCrear)).Post("/", createCitaHandler(svc))
		cr.With(middleware.RequireCap(session.CapCitasVer)).Get("/verificar-disponibilidad", verificarHandler(svc))

		cr.With(middleware.RequireCap(session.CapCitasVer)).Get("/{citaID}", getCitaHandler(svc))
		cr.With(middleware.RequireCap(session.CapCitasEditar)).Put("/{citaID}/reprogramar", reprogramarHandler(svc))
		cr.With(middleware.RequireCap(session.CapCitasEditar)).Put("/{citaID}/completar", completarHandler(svc))
		cr.With(middleware.RequireCap(session.CapCitasCancelar)).Put("/{citaID}/cancelar", cancelarHandler(svc))
	})

	r.Route("/solicitudes", func(sr chi.Router) {
		sr.Use(middleware.RequireCap(session.CapSolicitudes))
		sr.Get("/", listSolicitudesHandler(svc))
		sr.Put("/{solicitudID}/aprobar", aprobarHandler(svc))
		sr.Put("/{solicitudID}/rechazar", rechazarHandler(svc))
	})
}

type fechaHoraRequest struct {
	FechaHora string `json:"fechaHora"`
}

type motivoRequest struct {
	Motivo string `json:"motivo"`
}

type observacionesRequest struct {
	Observaciones string `json:"observaciones"`
}

// citaView agrega a la cita los flags que la vista usa para habilitar acciones.
type citaView struct {
	Cita
	PuedeEditar   bool `json:"puedeEditar"`
	PuedeCancelar bool `json:"puedeCancelar"`
}

func toView(r *http.Request, c Cita) citaView {
	s, _ := session.FromContext(r.Context())
	return citaView{
		Cita:          c,
		PuedeEditar:   c.Programada() && s.Puede(session.CapCitasEditar),
		PuedeCancelar: c.Programada() && s.Puede(session.CapCitasCancelar),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrSolicitudNoEncontrada):
		return http.StatusNotFound
	case errors.Is(err, ErrTransicionInvalida), errors.Is(err, ErrSolicitudProcesada):
		return http.StatusConflict
	}
	return 0
}

// listCitasHandler godoc
// @Summary Listar citas
// @Description Lista citas con filtros opcionales. La respuesta se sirve desde el cache de queries hasta que una mutación la invalida.
// @Tags citas
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param estado query string false "PROGRAMADA | COMPLETADA | CANCELADA"
// @Param fecha query string false "YYYY-MM-DD"
// @Param veterinarioId query int false "ID del veterinario"
// @Param pacienteId query int false "ID del paciente"
// @Success 200 {object} respond.Body
// @Failure 401 {object} respond.Body
// @Failure 403 {object} respond.Body
// @Router /citas [get]
func listCitasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID, err := respond.QueryID(r, "veterinarioId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		pacID, err := respond.QueryID(r, "pacienteId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}

		items, err := svc.Listar(r.Context(), Filtro{
			Estado:        Estado(r.URL.Query().Get("estado")),
			Fecha:         r.URL.Query().Get("fecha"),
			VeterinarioID: vetID,
			PacienteID:    pacID,
		})
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}

		out := make([]citaView, 0, len(items))
		for _, c := range items {
			out = append(out, toView(r, c))
		}
		respond.Data(w, http.StatusOK, out)
	}
}

func getCitaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citaID, err := respond.IDParam(r, "citaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Obtener(r.Context(), citaID)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, toView(r, c))
	}
}

// createCitaHandler godoc
// @Summary Crear cita
// @Description Crea la cita sin pasar por el widget de agenda (uso administrativo). Para reservar desde la agenda usar /agenda/agendar.
// @Tags citas
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body CrearInput true "Datos de la cita"
// @Success 201 {object} respond.Body
// @Failure 422 {object} respond.Body "formulario inválido"
// @Router /citas [post]
func createCitaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CrearInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Crear(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, toView(r, c), "Cita creada correctamente")
	}
}

func verificarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID, err := respond.QueryID(r, "veterinarioId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		d, err := svc.VerificarDisponibilidad(r.Context(), vetID, r.URL.Query().Get("fechaHora"))
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, d)
	}
}

func reprogramarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citaID, err := respond.IDParam(r, "citaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req fechaHoraRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Reprogramar(r.Context(), citaID, req.FechaHora)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, c), "Cita reprogramada")
	}
}

func completarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citaID, err := respond.IDParam(r, "citaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req observacionesRequest
		// Body opcional.
		if r.ContentLength > 0 {
			if err := respond.Decode(r, &req); err != nil {
				respond.Error(w, 0, err)
				return
			}
		}
		c, err := svc.Completar(r.Context(), citaID, req.Observaciones)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, c), "Cita completada")
	}
}

func cancelarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		citaID, err := respond.IDParam(r, "citaID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req motivoRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Cancelar(r.Context(), citaID, req.Motivo)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, c), "Cita cancelada")
	}
}

func listSolicitudesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListarSolicitudes(r.Context(), EstadoSolicitud(r.URL.Query().Get("estado")))
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func aprobarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		solID, err := respond.IDParam(r, "solicitudID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req AprobarInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.AprobarSolicitud(r.Context(), solID, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, toView(r, c), "Solicitud aprobada, cita creada")
	}
}

func rechazarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		solID, err := respond.IDParam(r, "solicitudID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req motivoRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		sol, err := svc.RechazarSolicitud(r.Context(), solID, req.Motivo)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, sol, "Solicitud rechazada")
	}
}
