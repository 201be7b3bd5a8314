package agenda

import (
	"errors"
	"net/http"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/toast"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/agenda", func(ar chi.Router) {
		ar.Use(middleware.RequireCap(session.CapCitasVer))
		ar.Get("/horarios", horariosHandler(svc))
		ar.Get("/politica", politicaHandler(svc))
		ar.Post("/validar", validarHandler(svc))
		ar.Post("/agendar", agendarHandler(svc))
	})
}

type validarRequest struct {
	FechaHora string `json:"fechaHora"`
}

type validarResponse struct {
	Valido       bool         `json:"valido"`
	Advertencias Advertencias `json:"advertencias"`
}

type ventanaResponse struct {
	Nombre string `json:"nombre"`
	Desde  string `json:"desde"`
	Hasta  string `json:"hasta"`
}

type diaResponse struct {
	Dia      string            `json:"dia"`
	Cerrado  bool              `json:"cerrado"`
	Ventanas []ventanaResponse `json:"ventanas"`
}

type politicaResponse struct {
	Fuente string        `json:"fuente"`
	Dias   []diaResponse `json:"dias"`
}

func statusFor(err error) int {
	var adv Advertencias
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, citas.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrHorarioNoDisponible):
		return http.StatusConflict
	case errors.As(err, &adv):
		return http.StatusUnprocessableEntity
	}
	return 0
}

// horariosHandler godoc
// @Summary Slots de la agenda
// @Description Devuelve los horarios de (veterinario, fecha) agrupados por franja de atención. Sin veterinarioId la vista queda en SIN_VETERINARIO. Solo los slots DISPONIBLE son seleccionables; el resto se muestra deshabilitado con su etiqueta.
// @Tags agenda
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param veterinarioId query int false "ID del veterinario"
// @Param fecha query string true "YYYY-MM-DD"
// @Success 200 {object} respond.Body
// @Failure 400 {object} respond.Body
// @Failure 502 {object} respond.Body "error al traer los slots; data trae la vista en estado ERROR"
// @Router /agenda/horarios [get]
func horariosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vetID, err := respond.QueryID(r, "veterinarioId")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}

		vista, err := svc.Horarios(r.Context(), vetID, r.URL.Query().Get("fecha"))
		if err != nil {
			if vista.Estado != VistaError {
				respond.Error(w, statusFor(err), err)
				return
			}
			t, _ := toast.FromError(err)
			respond.JSON(w, respond.Status(err), respond.Body{Data: vista, Toast: &t})
			return
		}
		respond.Data(w, http.StatusOK, vista)
	}
}

func politicaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := svc.Politica(r.Context())
		out := politicaResponse{Fuente: p.Fuente, Dias: make([]diaResponse, 0, 7)}
		for _, d := range []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday} {
			dr := diaResponse{Dia: configuracion.NombreDia(d), Cerrado: p.Cerrado(d), Ventanas: []ventanaResponse{}}
			for _, v := range p.Ventanas(d) {
				dr.Ventanas = append(dr.Ventanas, ventanaResponse{Nombre: v.Nombre, Desde: hhmm(v.Desde), Hasta: hhmm(v.Hasta)})
			}
			out.Dias = append(out.Dias, dr)
		}
		respond.Data(w, http.StatusOK, out)
	}
}

// validarHandler godoc
// @Summary Pre-validar fecha y hora
// @Description Revisa horario de atención y anticipación mínima. Las advertencias deshabilitan el envío pero no son errores.
// @Tags agenda
// @Accept json
// @Produce json
// @Param payload body validarRequest true "fechaHora"
// @Success 200 {object} respond.Body
// @Failure 422 {object} respond.Body "formato inválido"
// @Router /agenda/validar [post]
func validarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req validarRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		adv, err := svc.Validar(r.Context(), req.FechaHora)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		if adv == nil {
			adv = Advertencias{}
		}
		respond.Data(w, http.StatusOK, validarResponse{Valido: len(adv) == 0, Advertencias: adv})
	}
}

// agendarHandler godoc
// @Summary Agendar cita desde la agenda
// @Description Valida el formulario, el permiso citas:crear y las advertencias; luego verifica disponibilidad en el servidor y crea la cita. Si el slot se ocupó entretanto responde 409 y no se crea nada.
// @Tags agenda
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param payload body citas.CrearInput true "Datos de la cita"
// @Success 201 {object} respond.Body
// @Failure 403 {object} respond.Body "sin permiso citas:crear"
// @Failure 409 {object} respond.Body "el horario ya no está disponible"
// @Failure 422 {object} respond.Body "formulario inválido o advertencias"
// @Router /agenda/agendar [post]
func agendarHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req citas.CrearInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}

		c, err := svc.Agendar(r.Context(), req)
		if err != nil {
			var adv Advertencias
			if errors.As(err, &adv) {
				t, _ := toast.FromError(err)
				respond.JSON(w, http.StatusUnprocessableEntity, respond.Body{
					Data:  validarResponse{Valido: false, Advertencias: adv},
					Toast: &t,
				})
				return
			}
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, c, "Cita agendada correctamente")
	}
}
