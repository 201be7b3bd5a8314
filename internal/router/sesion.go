package router

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/adapters/auth/backend"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/app"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/go-chi/chi/v5"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sesionResponse struct {
	Token string `json:"token,omitempty"`
	*session.Session
}

func registerSesion(r chi.Router, a *app.App) {
	r.Route("/sesion", func(sr chi.Router) {
		sr.Post("/login", loginHandler(a))
		sr.With(middleware.RequireSession).Post("/logout", logoutHandler())
		sr.With(middleware.RequireSession).Get("/me", meHandler())
	})
}

func loginStatus(err error) int {
	switch {
	case errors.Is(err, backend.ErrCredencialesVacias):
		return http.StatusBadRequest
	case errors.Is(err, backend.ErrCredenciales):
		return http.StatusUnauthorized
	}
	return 0
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Tags sesion
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credenciales"
// @Success 200 {object} respond.Body
// @Failure 401 {object} respond.Body
// @Router /sesion/login [post]
func loginHandler(a *app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := respond.Decode(r, &req); err != nil {
			respond.Error(w, 0, err)
			return
		}
		s, err := a.Login(r.Context(), strings.TrimSpace(req.Username), req.Password)
		if err != nil {
			a.Logger.Warn("login failed", map[string]any{"username": req.Username, "err": err})
			respond.Error(w, loginStatus(err), err)
			return
		}
		respond.Mutacion(w, http.StatusOK, sesionResponse{Token: s.Token, Session: s}, "Bienvenido, "+nombreVisible(s))
	}
}

// logoutHandler no tiene estado que borrar: el token lo descarta el cliente.
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respond.Mutacion(w, http.StatusOK, nil, "Sesión cerrada")
	}
}

func meHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, _ := session.FromContext(r.Context())
		respond.Data(w, http.StatusOK, sesionResponse{Session: s})
	}
}

func nombreVisible(s *session.Session) string {
	if n := strings.TrimSpace(s.Usuario.Nombre); n != "" {
		return n
	}
	return s.Usuario.Username
}
