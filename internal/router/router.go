package router

import (
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/app"
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
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/middleware"

	_ "github.com/Brandon0304/VeterinariaHumboldt2-sub000/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	App *app.App

	// DisableSwagger oculta /swagger fuera de desarrollo.
	DisableSwagger bool
}

func NewRouter(opts Options) http.Handler {
	a := opts.App
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(a.Logger))

	// La sesión va antes del logger para que el log lleve el user_id.
	r.Use(middleware.AuthContext(a.Sesiones))
	r.Use(middleware.RequestLogger(a.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	if !opts.DisableSwagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	registerSesion(r, a)

	// Rutas por módulo
	citas.RegisterRoutes(r, a.Citas)
	agenda.RegisterRoutes(r, a.Agenda)
	pacientes.RegisterRoutes(r, a.Pacientes)
	clientes.RegisterRoutes(r, a.Clientes)
	facturas.RegisterRoutes(r, a.Facturas)
	historias.RegisterRoutes(r, a.Historias)
	proveedores.RegisterRoutes(r, a.Proveedores)
	usuarios.RegisterRoutes(r, a.Usuarios)
	configuracion.RegisterRoutes(r, a.Configuracion, a.Config.Location())
	notificaciones.RegisterRoutes(r, a.Notificaciones)
	reportes.RegisterRoutes(r, a.Reportes, a.Config.Location())

	return r
}
