// Package app arma el grafo de dependencias que comparten el BFF y la CLI.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/adapters/auth/backend"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/adapters/capabilities/rbac"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/adapters/rest"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/config"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/agenda"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/clientes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/facturas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/historias"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/notificaciones"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/pacientes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/proveedores"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/reportes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/usuarios"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/metrics"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Config   *config.Config
	Logger   logger.Logger
	Registry *prometheus.Registry
	Cache    *query.Cache
	API      *httpclient.Client

	Sesiones *session.Builder
	Auth     auth.Authenticator

	Citas          *citas.Service
	Agenda         *agenda.Service
	Pacientes      *pacientes.Service
	Clientes       *clientes.Service
	Facturas       *facturas.Service
	Historias      *historias.Service
	Proveedores    *proveedores.Service
	Usuarios       *usuarios.Service
	Configuracion  *configuracion.Service
	Notificaciones *notificaciones.Service
	Reportes       *reportes.Service

	closers []func() error
}

// New conecta config => logger => métricas => cache => cliente API => repos => services.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{
		Config:   cfg,
		Logger:   log,
		Registry: prometheus.NewRegistry(),
	}

	store, err := a.cacheStore(ctx)
	if err != nil {
		return nil, err
	}
	a.Cache = query.New(query.Options{
		Store:     store,
		StaleTime: cfg.CacheStaleTime,
		Scope:     session.CacheScope,
		Metrics:   metrics.NewCacheMetrics(a.Registry),
		Logger:    log.With(map[string]any{"component": "query"}),
	})

	api, err := httpclient.NewWithBaseURL(cfg.APIURL, cfg.HTTPTimeout)
	if err != nil {
		return nil, fmt.Errorf("api client: %w", err)
	}
	api.Logger = log.With(map[string]any{"component": "api"})
	api.Metrics = metrics.NewAPIMetrics(a.Registry)
	serviceToken := strings.TrimSpace(cfg.APIToken)
	api.Token = func(ctx context.Context) string {
		if t := session.Token(ctx); t != "" {
			return t
		}
		return serviceToken
	}
	a.API = api

	authClient := backend.NewClient(api)
	decoder := session.NewJWTDecoder()
	if secret := strings.TrimSpace(cfg.JWTSecret); secret != "" {
		decoder = session.NewSignedJWTDecoder(secret)
	}
	a.Auth = backend.NewAuthenticator(authClient, decoder)
	a.Sesiones = &session.Builder{
		Decoder:  decoder,
		Resolver: rbac.NewResolver(rbac.NewClient(api), a.Cache, cfg.AllowAllCapabilities),
		Logger:   log.With(map[string]any{"component": "session"}),
	}
	if !decoder.VerificaFirma() {
		// Sin secreto, los claims no son confiables hasta que el backend acepta el token.
		a.Sesiones.Verifier = authClient
	}

	loc := cfg.Location()
	a.Citas = citas.NewService(rest.NewCitasRepo(api), rest.NewSolicitudesRepo(api), a.Cache, loc)
	a.Configuracion = configuracion.NewService(rest.NewConfiguracionRepo(api), a.Cache)
	a.Agenda = agenda.NewService(agenda.Options{
		Citas:        a.Citas,
		Horarios:     a.Configuracion,
		Anticipacion: cfg.AnticipacionMinima,
		Logger:       log.With(map[string]any{"component": "agenda"}),
	})
	a.Pacientes = pacientes.NewService(rest.NewPacientesRepo(api), a.Cache, cfg.UmbralDuplicados)
	a.Clientes = clientes.NewService(rest.NewClientesRepo(api), a.Cache)
	a.Facturas = facturas.NewService(rest.NewFacturasRepo(api), a.Cache, loc)
	a.Historias = historias.NewService(rest.NewHistoriasRepo(api), a.Cache)
	a.Proveedores = proveedores.NewService(rest.NewProveedoresRepo(api), a.Cache)
	a.Usuarios = usuarios.NewService(rest.NewUsuariosRepo(api), a.Cache)
	a.Notificaciones = notificaciones.NewService(rest.NewNotificacionesRepo(api), a.Cache)
	a.Reportes = reportes.NewService(rest.NewReportesRepo(api), a.Cache)

	return a, nil
}

func (a *App) cacheStore(ctx context.Context) (query.Store, error) {
	if a.Config.CacheBackend != config.CacheRedis {
		return query.NewMemoryStore(), nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", a.Config.RedisAddr, err)
	}
	a.closers = append(a.closers, rdb.Close)
	a.Logger.Info("query cache on redis", map[string]any{"addr": a.Config.RedisAddr})
	return query.NewRedisStore(rdb), nil
}

// Login autentica y arma la sesión con las capacidades del rol.
func (a *App) Login(ctx context.Context, username, password string) (*session.Session, error) {
	res, err := a.Auth.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	// El token lo acaba de emitir el backend: no hace falta confirmarlo otra vez.
	a.Sesiones.Confirmar(res.Token, res.Claims.ExpiraEn)
	s, err := a.Sesiones.Build(ctx, res.Token)
	if err != nil {
		return nil, err
	}
	// El login completa datos que el token no siempre trae.
	s.Usuario = res.Claims
	return s, nil
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
