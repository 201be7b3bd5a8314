package notificaciones

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notificaciones", func(nr chi.Router) {
		nr.Use(middleware.RequireSession)
		nr.Get("/", listHandler(svc))
		nr.Get("/resumen", resumenHandler(svc))
		nr.Put("/leidas", marcarTodasHandler(svc))
		nr.Put("/{notificacionID}/leida", marcarLeidaHandler(svc))
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

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Listar(r.Context(), r.URL.Query().Get("noLeidas") == "true")
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

// resumenHandler godoc
// @Summary Contador de no leídas y las más recientes
// @Tags notificaciones
// @Produce json
// @Success 200 {object} respond.Body
// @Router /notificaciones/resumen [get]
func resumenHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Resumen(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, res)
	}
}

func marcarLeidaHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "notificacionID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		if err := svc.MarcarLeida(r.Context(), id); err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func marcarTodasHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.MarcarTodas(r.Context()); err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, nil, "Notificaciones marcadas como leídas")
	}
}
