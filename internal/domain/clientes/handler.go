package clientes

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/clientes", func(cr chi.Router) {
		cr.With(middleware.RequireCap(session.CapClientesVer)).Get("/", listClientesHandler(svc))
		cr.With(middleware.RequireCap(session.CapClientesEdit)).Post("/", createClienteHandler(svc))
		cr.With(middleware.RequireCap(session.CapClientesVer)).Get("/{clienteID}", getClienteHandler(svc))
		cr.With(middleware.RequireCap(session.CapClientesEdit)).Put("/{clienteID}", updateClienteHandler(svc))
		cr.With(middleware.RequireCap(session.CapClientesEdit)).Delete("/{clienteID}", deleteClienteHandler(svc))
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrTienePacientes):
		return http.StatusConflict
	}
	return 0
}

func listClientesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Listar(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func getClienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "clienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Obtener(r.Context(), id)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, c)
	}
}

func createClienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Input
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Crear(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, c, "Cliente registrado correctamente")
	}
}

func updateClienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "clienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req Input
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		c, err := svc.Actualizar(r.Context(), id, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, c, "Cliente actualizado")
	}
}

func deleteClienteHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "clienteID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		if err := svc.Eliminar(r.Context(), id); err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, nil, "Cliente eliminado")
	}
}
