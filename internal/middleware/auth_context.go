package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/respond"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"
)

// SessionBuilder arma la sesión a partir del bearer token.
type SessionBuilder interface {
	Build(ctx context.Context, token string) (*session.Session, error)
}

// AuthContext:
// - Si viene Bearer token y builder != nil => arma la sesión y la deja en el contexto.
// - Token inválido o expirado => el request sigue sin sesión; RequireSession decide el 401.
func AuthContext(builder SessionBuilder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" || builder == nil {
				next.ServeHTTP(w, r)
				return
			}

			s, err := builder.Build(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), s)))
		})
	}
}

// RequireSession corta con 401 si no hay sesión.
func RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := session.FromContext(r.Context()); !ok {
			respond.Error(w, http.StatusUnauthorized, session.ErrNoAutenticado)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireCap corta con 403 si la sesión no tiene la capacidad (401 si no hay sesión).
func RequireCap(capacidad string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := session.Requiere(r.Context(), capacidad); err != nil {
				respond.Error(w, 0, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
