package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBuilder struct{}

func (stubBuilder) Build(_ context.Context, token string) (*session.Session, error) {
	if token != "bueno" {
		return nil, errors.New("token inválido")
	}
	return &session.Session{Token: token, Usuario: auth.Claims{UserID: "9", Rol: auth.RolAdmin}}, nil
}

func TestAuthContext_RequireSession(t *testing.T) {
	h := AuthContext(stubBuilder{})(RequireSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := session.FromContext(r.Context())
		require.True(t, ok)
		_, _ = w.Write([]byte(s.Usuario.UserID))
	})))

	for _, tc := range []struct {
		header string
		status int
	}{
		{"Bearer bueno", http.StatusOK},
		{"bearer bueno", http.StatusOK},
		{"Bearer malo", http.StatusUnauthorized},
		{"Basic bueno", http.StatusUnauthorized},
		{"", http.StatusUnauthorized},
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, tc.header)
	}
}

func TestRecover_LogsAndRespondsJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Out: &buf})

	h := chimw.RequestID(RequestID(Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("se rompió")
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/citas", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "ocurrió un error inesperado")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Contains(t, buf.String(), "panic recovered")
	assert.Contains(t, buf.String(), "se rompió")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Info, Format: logger.FormatJSON, Out: &buf})

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/agenda/agendar", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/agenda/agendar"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}
