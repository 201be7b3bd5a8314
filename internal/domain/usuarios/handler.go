package usuarios

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// El selector de veterinarios de la agenda lo usa cualquiera que vea citas.
	r.With(middleware.RequireCap(session.CapCitasVer)).Get("/veterinarios", veterinariosHandler(svc))

	r.Route("/usuarios", func(ur chi.Router) {
		ur.Use(middleware.RequireCap(session.CapUsuarios))
		ur.Get("/", listHandler(svc))
		ur.Post("/", createHandler(svc))
		ur.Put("/{usuarioID}", updateHandler(svc))
		ur.Put("/{usuarioID}/estado", estadoHandler(svc))
	})
}

type estadoRequest struct {
	Activo bool `json:"activo"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUsuarioActual), errors.Is(err, ErrDuplicado):
		return http.StatusConflict
	}
	return 0
}

func veterinariosHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Veterinarios(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func listHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Listar(r.Context())
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Data(w, http.StatusOK, items)
	}
}

func createHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CrearInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		u, err := svc.Crear(r.Context(), req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusCreated, u, "Usuario creado")
	}
}

func updateHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "usuarioID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req ActualizarInput
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		u, err := svc.Actualizar(r.Context(), id, req)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, u, "Usuario actualizado")
	}
}

func estadoHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := respond.IDParam(r, "usuarioID")
		if err != nil {
			respond.Error(w, 0, err)
			return
		}
		var req estadoRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		u, err := svc.CambiarEstado(r.Context(), id, req.Activo)
		if err != nil {
			respond.Error(w, statusFor(err), err)
			return
		}
		msg := "Usuario desactivado"
		if u.Activo {
			msg = "Usuario activado"
		}
		respond.Mutacion(w, http.StatusOK, u, msg)
	}
}
