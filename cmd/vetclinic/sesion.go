package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"

	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Inicia sesión y muestra el token para exportarlo como VET_API_TOKEN",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := c.init(ctx); err != nil {
				return err
			}
			if c.usuario == "" {
				return fmt.Errorf("--usuario es obligatorio")
			}
			s, err := c.app.Login(ctx, c.usuario, c.clave())
			if err != nil {
				return err
			}
			c.sesion.Set(s)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sesión iniciada: %s (%s)\n", s.Usuario.Username, s.Usuario.Rol)
			fmt.Fprintf(out, "export VET_API_TOKEN=%s\n", s.Token)
			return nil
		},
	}
}

func (c *cli) clave() string {
	if c.password != "" {
		return c.password
	}
	return os.Getenv("VET_PASSWORD")
}

// autenticado devuelve ctx con la sesión de esta ejecución.
// Orden: --token, --usuario (login), VET_API_TOKEN.
func (c *cli) autenticado(ctx context.Context) (context.Context, error) {
	if err := c.init(ctx); err != nil {
		return nil, err
	}
	if _, ok := c.sesion.Get(); ok {
		return c.sesion.Context(ctx), nil
	}

	var (
		s   *session.Session
		err error
	)
	switch {
	case strings.TrimSpace(c.token) != "":
		s, err = c.app.Sesiones.Build(ctx, c.token)
	case c.usuario != "":
		s, err = c.app.Login(ctx, c.usuario, c.clave())
	case strings.TrimSpace(c.cfg.APIToken) != "":
		s, err = c.app.Sesiones.Build(ctx, c.cfg.APIToken)
	default:
		return nil, fmt.Errorf("%w: usa --usuario o exporta VET_API_TOKEN", session.ErrNoAutenticado)
	}
	if err != nil {
		return nil, err
	}
	c.sesion.Set(s)
	return c.sesion.Context(ctx), nil
}
