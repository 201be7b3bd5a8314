package rbac

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("permissions client not configured")
	ErrUpstream      = errors.New("permissions upstream error")
)

type Client struct {
	api *httpclient.Client
}

func NewClient(api *httpclient.Client) *Client {
	return &Client{api: api}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.api != nil && c.api.BaseURL != ""
}

// permisoDTO: el backend expone modulo+accion; algunos despliegues mandan el código ya armado.
type permisoDTO struct {
	Codigo     string `json:"codigo"`
	Modulo     string `json:"modulo"`
	Accion     string `json:"accion"`
	Habilitado bool   `json:"habilitado"`
}

func (p permisoDTO) codigo() string {
	if c := strings.TrimSpace(p.Codigo); c != "" {
		return strings.ToLower(c)
	}
	if p.Modulo == "" || p.Accion == "" {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(p.Modulo) + ":" + strings.TrimSpace(p.Accion))
}

// GetPermisos trae GET /v1/configuracion/permisos/rol/{rol} como mapa código => habilitado.
func (c *Client) GetPermisos(ctx context.Context, rol auth.Rol) (map[string]bool, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(string(rol)) == "" {
		return nil, errors.New("rol required")
	}

	var items []permisoDTO
	path := "/v1/configuracion/permisos/rol/" + url.PathEscape(string(rol))
	if err := c.api.Call(ctx, http.MethodGet, path, nil, nil, &items); err != nil {
		if httpclient.IsNotFound(err) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out := make(map[string]bool, len(items))
	for _, p := range items {
		if k := p.codigo(); k != "" {
			out[k] = p.Habilitado
		}
	}
	return out, nil
}
