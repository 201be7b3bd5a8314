package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
)

var (
	ErrNotConfigured  = errors.New("auth client not configured")
	ErrCredenciales   = errors.New("usuario o contraseña incorrectos")
	ErrUpstream       = errors.New("auth upstream error")
	ErrRespuestaVacia = errors.New("la respuesta de login no trae token")
)

const (
	loginPath = "/auth/login"
	mePath    = "/auth/me"
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

type usuarioDTO struct {
	ID       any    `json:"id"`
	Username string `json:"username"`
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Rol      string `json:"rol"`
}

type loginResponse struct {
	Token       string      `json:"token"`
	AccessToken string      `json:"accessToken"`
	Usuario     *usuarioDTO `json:"usuario"`
}

// Login hace POST /auth/login y devuelve la respuesta cruda del backend.
func (c *Client) Login(ctx context.Context, username, password string) (loginResponse, error) {
	if !c.IsConfigured() {
		return loginResponse{}, ErrNotConfigured
	}

	body := map[string]string{
		"username": strings.TrimSpace(username),
		"password": password,
	}

	var out loginResponse
	if err := c.api.Call(ctx, http.MethodPost, loginPath, nil, body, &out); err != nil {
		var apiErr *httpclient.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return loginResponse{}, ErrCredenciales
		}
		if errors.Is(err, httpclient.ErrTransport) {
			return loginResponse{}, err
		}
		return loginResponse{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if out.Token == "" {
		out.Token = out.AccessToken
	}
	out.Token = strings.TrimSpace(out.Token)
	if out.Token == "" {
		return loginResponse{}, ErrRespuestaVacia
	}
	return out, nil
}

// Verify confirma el token con GET /auth/me. Solo importa el status, así que no se interpreta el envelope.
// El header explícito pisa el token de la sesión o de servicio que inyectaría el cliente.
func (c *Client) Verify(ctx context.Context, token string) error {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.ErrTokenRechazado
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	err := c.api.DoJSON(ctx, http.MethodGet, mePath, headers, nil, nil)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: status %d", auth.ErrTokenRechazado, httpErr.StatusCode)
		}
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return err
}
