// @title Veterinaria Humboldt BFF
// @version 1.0
// @description Vistas y acciones de la clínica sobre la API REST del backend.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/app"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/config"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/router"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// cli guarda lo que comparten los subcomandos durante una ejecución.
type cli struct {
	envFile  string
	token    string
	usuario  string
	password string

	cfg    *config.Config
	log    logger.Logger
	app    *app.App
	sesion *session.Store
	logOut io.Writer
}

func newRootCmd(out, logOut io.Writer) *cobra.Command {
	c := &cli{sesion: session.NewStore(), logOut: logOut}

	root := &cobra.Command{
		Use:           "vetclinic",
		Short:         "Cliente de la clínica veterinaria: BFF HTTP y comandos de consola",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.SetErr(logOut)

	pf := root.PersistentFlags()
	pf.StringVar(&c.envFile, "env-file", "", "archivo .env a cargar antes de la configuración")
	pf.StringVar(&c.token, "token", "", "bearer token del backend (por defecto VET_API_TOKEN)")
	pf.StringVarP(&c.usuario, "usuario", "u", "", "usuario para iniciar sesión en esta ejecución")
	pf.StringVarP(&c.password, "password", "p", "", "contraseña (por defecto VET_PASSWORD)")

	root.PersistentPostRunE = func(*cobra.Command, []string) error {
		if c.app != nil {
			return c.app.Close()
		}
		return nil
	}

	root.AddCommand(
		c.serveCmd(),
		c.loginCmd(),
		c.agendaCmd(),
		c.citasCmd(),
		c.pacientesCmd(),
		c.facturasCmd(),
	)
	return root
}

// init carga config, logger y el grafo de services una sola vez.
func (c *cli) init(ctx context.Context) error {
	if c.app != nil {
		return nil
	}
	cfg, err := config.Load(c.envFile)
	if err != nil {
		return err
	}
	c.cfg = cfg
	c.log = logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Out:    c.logOut,
	})
	a, err := app.New(ctx, cfg, c.log)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levanta el BFF HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := c.init(ctx); err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         c.cfg.Addr(),
				Handler:      router.NewRouter(router.Options{App: c.app, DisableSwagger: !c.cfg.IsDev()}),
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				c.log.Info("starting server", map[string]any{"addr": srv.Addr, "api": c.cfg.APIURL, "cache": c.cfg.CacheBackend})
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			c.log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}
