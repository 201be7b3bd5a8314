package backend

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
)

var ErrCredencialesVacias = errors.New("usuario y contraseña son obligatorios")

// Authenticator implementa auth.Authenticator contra el login del backend.
// Los claims salen del token; el usuario que devuelve el login completa lo que el token no trae.
type Authenticator struct {
	client  *Client
	decoder auth.TokenDecoder
}

func NewAuthenticator(client *Client, decoder auth.TokenDecoder) *Authenticator {
	return &Authenticator{client: client, decoder: decoder}
}

func (a *Authenticator) Login(ctx context.Context, username, password string) (auth.LoginResult, error) {
	if a == nil || a.client == nil {
		return auth.LoginResult{}, ErrNotConfigured
	}
	if strings.TrimSpace(username) == "" || password == "" {
		return auth.LoginResult{}, ErrCredencialesVacias
	}

	resp, err := a.client.Login(ctx, username, password)
	if err != nil {
		return auth.LoginResult{}, err
	}

	claims, err := a.decoder.Decode(ctx, resp.Token)
	if err != nil {
		return auth.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if u := resp.Usuario; u != nil {
		if id := idString(u.ID); id != "" {
			claims.UserID = id
		}
		if s := strings.TrimSpace(u.Username); s != "" {
			claims.Username = s
		}
		if s := strings.TrimSpace(u.Nombre); s != "" {
			claims.Nombre = s
		}
		if s := strings.TrimSpace(u.Email); s != "" {
			claims.Email = s
		}
		if s := strings.TrimSpace(u.Rol); s != "" {
			claims.Rol = auth.ParseRol(s)
		}
	}

	return auth.LoginResult{Token: resp.Token, Claims: claims}, nil
}

func idString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
