package respond

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/toast"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadGateway, Status(fmt.Errorf("%w: x", httpclient.ErrTransport)))
	assert.Equal(t, http.StatusConflict, Status(&httpclient.APIError{StatusCode: 409}))
	assert.Equal(t, http.StatusBadGateway, Status(&httpclient.APIError{StatusCode: 200}))
	assert.Equal(t, http.StatusUnprocessableEntity, Status(&validate.Errores{Campos: map[string]string{"a": "b"}}))
	assert.Equal(t, http.StatusBadRequest, Status(fmt.Errorf("%w: eof", ErrBadRequest)))
	assert.Equal(t, http.StatusForbidden, Status(session.ErrSinPermiso))
	assert.Equal(t, http.StatusUnauthorized, Status(session.ErrTokenInvalido))
	assert.Equal(t, http.StatusInternalServerError, Status(fmt.Errorf("x")))
}

func TestError_WritesToastAndFieldErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, 0, &validate.Errores{Campos: map[string]string{"nombre": "es obligatorio"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body Body
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Toast)
	assert.Equal(t, toast.TipoError, body.Toast.Tipo)
	assert.Equal(t, "es obligatorio", body.Errores["nombre"])
}

func TestMutacion(t *testing.T) {
	rec := httptest.NewRecorder()
	Mutacion(rec, http.StatusCreated, map[string]int{"id": 3}, "Cita creada")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json"))
	var body struct {
		Data  map[string]int `json:"data"`
		Toast toast.Toast    `json:"toast"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 3, body.Data["id"])
	assert.Equal(t, "Cita creada", body.Toast.Mensaje)
	assert.Equal(t, toast.TipoExito, body.Toast.Tipo)
}

func TestDecode(t *testing.T) {
	var v struct {
		A int `json:"a"`
	}
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	require.NoError(t, Decode(r, &v))
	assert.Equal(t, 1, v.A)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	assert.ErrorIs(t, Decode(r, &v), ErrBadRequest)
}
