package auth

import (
	"context"
	"errors"
)

// ErrTokenRechazado: el backend no acepta el token (firma, expiración o revocación).
var ErrTokenRechazado = errors.New("token rechazado por el servidor")

// TokenDecoder extrae claims de un token. Según la implementación puede verificar la firma o no.
type TokenDecoder interface {
	Decode(ctx context.Context, token string) (Claims, error)
}

// TokenVerifier confirma con el backend que el token es válido.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) error
}

// LoginResult es lo que devuelve un login exitoso.
type LoginResult struct {
	Token  string
	Claims Claims
}

// Authenticator intercambia credenciales por un token del backend.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (LoginResult, error)
}
