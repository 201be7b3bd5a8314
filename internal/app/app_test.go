package app

import (
	"context"
	"testing"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/config"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		APIURL:             "http://127.0.0.1:1/api",
		HTTPTimeout:        time.Second,
		CacheBackend:       config.CacheMemory,
		CacheStaleTime:     time.Minute,
		ClinicTimezone:     "America/Bogota",
		AnticipacionMinima: 2 * time.Hour,
		UmbralDuplicados:   0.7,
	}
}

func TestNew_Memoria(t *testing.T) {
	a, err := New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.Agenda)
	assert.NotNil(t, a.Reportes)
	assert.Equal(t, "http://127.0.0.1:1/api", a.API.BaseURL)
	assert.Empty(t, a.API.Token(context.Background()))
}

func TestNew_TokenDeServicio(t *testing.T) {
	cfg := testConfig()
	cfg.APIToken = " svc-token "
	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, "svc-token", a.API.Token(context.Background()))
}

func TestNew_VerificacionDeTokens(t *testing.T) {
	a, err := New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	assert.NotNil(t, a.Sesiones.Verifier, "sin secreto cada token se confirma con el backend")

	cfg := testConfig()
	cfg.JWTSecret = "secreto-compartido"
	a, err = New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Sesiones.Verifier)
}

func TestNew_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.CacheBackend = config.CacheRedis
	cfg.RedisAddr = mr.Addr()

	a, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, a.Cache.Set(ctx, query.KeyDashboard, map[string]int{"citasHoy": 3}))
	assert.NotEmpty(t, mr.Keys())
	require.NoError(t, a.Close())
}

func TestNew_RedisCaido(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	cfg := testConfig()
	cfg.CacheBackend = config.CacheRedis
	cfg.RedisAddr = addr

	_, err = New(context.Background(), cfg, nil)
	assert.Error(t, err)
}
