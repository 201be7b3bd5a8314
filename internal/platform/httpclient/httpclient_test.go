package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cita struct {
	ID        int64  `json:"id"`
	FechaHora string `json:"fechaHora"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)

	c, err := NewWithBaseURL(ts.URL+"/api", 2*time.Second)
	require.NoError(t, err)
	c.Token = func(context.Context) string { return "tok-123" }
	return c
}

func TestCall_UnwrapsEnvelopeAndInjectsHeaders(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/citas/5", r.URL.Path)
		assert.Equal(t, "2024-06-10", r.URL.Query().Get("fecha"))
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"id":5,"fechaHora":"2024-06-10T08:00"}}`))
	})

	var out cita
	err := c.Call(context.Background(), http.MethodGet, "/citas/5", url.Values{"fecha": {"2024-06-10"}}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(5), out.ID)
	assert.Equal(t, "2024-06-10T08:00", out.FechaHora)
}

func TestCall_DecodesPlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	})

	var out []cita
	require.NoError(t, c.Call(context.Background(), http.MethodGet, "/citas", nil, nil, &out))
	assert.Len(t, out, 2)
}

func TestCall_ServerErrorUsesEnvelopeMessage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"El paciente no existe","errors":{"pacienteId":"no existe"}}`))
	})

	err := c.Call(context.Background(), http.MethodPost, "/citas", nil, map[string]any{"pacienteId": 9}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "El paciente no existe", apiErr.Message)
	assert.Equal(t, "no existe", apiErr.Errores["pacienteId"])
}

func TestCall_SuccessFalseIsAnError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success":false,"message":"Horario ocupado","data":null}`))
	})

	err := c.Call(context.Background(), http.MethodPost, "/citas", nil, struct{}{}, nil)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Horario ocupado", apiErr.Message)
}

func TestCall_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Cita no encontrada"}`))
	})

	err := c.Call(context.Background(), http.MethodGet, "/citas/99", nil, nil, nil)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "Cita no encontrada")
}

func TestCall_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	base := ts.URL
	ts.Close()

	c, err := NewWithBaseURL(base, time.Second)
	require.NoError(t, err)

	err = c.Call(context.Background(), http.MethodGet, "/citas", nil, nil, nil)
	assert.True(t, errors.Is(err, ErrTransport))
}

func TestDownload_SavesBlob(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/facturas/7/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="factura-F-0007.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	})

	blob, err := c.Download(context.Background(), "/facturas/7/pdf", nil, "factura.pdf")
	require.NoError(t, err)
	assert.Equal(t, "factura-F-0007.pdf", blob.Nombre)
	assert.Equal(t, "application/pdf", blob.ContentType)

	dir := t.TempDir()
	path, err := blob.Guardar(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "factura-F-0007.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestDownload_FallbackNameAndPathTraversal(t *testing.T) {
	blob := Blob{Nombre: "../../etc/passwd", Datos: []byte("x")}
	dir := t.TempDir()
	path, err := blob.Guardar(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "passwd"), path)

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("bytes"))
	})
	b, err := c.Download(context.Background(), "/reportes/citas/pdf", nil, "reporte.pdf")
	require.NoError(t, err)
	assert.Equal(t, "reporte.pdf", b.Nombre)
}

func TestDownload_BodyOverLimitFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("0123456789abcdef"))
	})
	c.MaxBody = 10

	_, err := c.Download(context.Background(), "/v1/configuracion/backups/3/descargar", nil, "backup.sql")
	assert.ErrorIs(t, err, ErrRespuestaMuyGrande)

	c.MaxBody = 16
	b, err := c.Download(context.Background(), "/v1/configuracion/backups/3/descargar", nil, "backup.sql")
	require.NoError(t, err)
	assert.Len(t, b.Datos, 16)
}

func TestDoJSON_HeadersOverrideTokenAndNon2xxIsHTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/me", r.URL.Path)
		if r.Header.Get("Authorization") != "Bearer otro" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte("token inválido"))
			return
		}
		_, _ = w.Write([]byte(`{"id":9}`))
	})

	var out cita
	err := c.DoJSON(context.Background(), http.MethodGet, "/auth/me", map[string]string{"Authorization": "Bearer otro"}, nil, &out)
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)

	err = c.DoJSON(context.Background(), http.MethodGet, "/auth/me", nil, nil, nil)
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
	assert.Equal(t, "token inválido", httpErr.Body)
}

func TestResourceOf(t *testing.T) {
	assert.Equal(t, "configuracion", resourceOf("/v1/configuracion/horarios"))
	assert.Equal(t, "citas", resourceOf("http://x/api/citas/5?a=b"))
	assert.Equal(t, "root", resourceOf("/"))
}
