package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/agenda"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lunes = "2099-06-08"

func testToken(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       3,
		"username": "recepcion",
		"rol":      "RECEPCIONISTA",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("solo-para-tests"))
	require.NoError(t, err)
	return tok
}

// setupBackend levanta una API falsa y apunta la configuración a ella por variables de entorno.
func setupBackend(t *testing.T) {
	t.Helper()
	token := testToken(t)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":3}`))
	})
	mux.HandleFunc("GET /v1/configuracion/permisos/rol/{rol}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("GET /v1/configuracion/horarios", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("GET /citas/horarios-disponibles", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]citas.Horario{
			{FechaHora: lunes + "T08:00:00", Disponible: true},
			{FechaHora: lunes + "T08:30:00", Disponible: false},
		})
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	t.Setenv("VET_API_URL", ts.URL)
	t.Setenv("VET_API_TOKEN", token)
	t.Setenv("CLINIC_TIMEZONE", "UTC")
	t.Setenv("CACHE_BACKEND", "memory")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out, io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAgendaHorarios_EligeSlotDisponible(t *testing.T) {
	setupBackend(t)

	out, err := run(t, "agenda", "horarios", "--veterinario", "3", "--fecha", lunes, "--elegir", "08:00")
	require.NoError(t, err)
	assert.Contains(t, out, "* 08:00")
	assert.Contains(t, out, "Ocupado")
	assert.Contains(t, out, "Elegido: "+lunes+"T08:00:00")
}

func TestAgendaHorarios_SlotOcupadoNoSeElige(t *testing.T) {
	setupBackend(t)

	_, err := run(t, "agenda", "horarios", "--veterinario", "3", "--fecha", lunes, "--elegir", "08:30")
	assert.Error(t, err)
}

func TestAgendaValidar_Domingo(t *testing.T) {
	setupBackend(t)

	out, err := run(t, "agenda", "validar", "--fecha-hora", "2099-06-07T10:00")
	require.Error(t, err)
	assert.Contains(t, out, "La clínica no atiende los domingos")

	out, err = run(t, "agenda", "validar", "--fecha-hora", lunes+"T09:00")
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestTokenRechazadoPorElServidor(t *testing.T) {
	setupBackend(t)

	ajeno, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": 3, "rol": "ADMIN"}).
		SignedString([]byte("otra-clave"))
	require.NoError(t, err)

	_, err = run(t, "--token", ajeno, "citas", "listar")
	assert.ErrorIs(t, err, session.ErrNoAutenticado)
}

func TestSinSesion(t *testing.T) {
	setupBackend(t)
	t.Setenv("VET_API_TOKEN", "")

	_, err := run(t, "citas", "listar")
	assert.Error(t, err)
}

func TestImprimirVista(t *testing.T) {
	var buf bytes.Buffer
	imprimirVista(&buf, agenda.Vista{Estado: agenda.VistaSinVeterinario})
	assert.Contains(t, buf.String(), "Selecciona un veterinario")

	buf.Reset()
	imprimirVista(&buf, agenda.Vista{Estado: agenda.VistaError, Error: "sin conexión"})
	assert.Contains(t, buf.String(), "sin conexión")

	buf.Reset()
	imprimirVista(&buf, agenda.Vista{
		Estado: agenda.VistaLista,
		Fecha:  lunes,
		Grupos: []agenda.Grupo{{Nombre: "tarde", Desde: "14:00", Hasta: "18:00"}},
	})
	assert.Contains(t, buf.String(), "TARDE (14:00 - 18:00)")
	assert.Contains(t, buf.String(), "sin horarios")
}
