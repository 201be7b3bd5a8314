package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenInvalido = fmt.Errorf("%w: token inválido", ErrNoAutenticado)

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID   any    `json:"userId,omitempty"`
	ID       any    `json:"id,omitempty"`
	Username string `json:"username,omitempty"`
	Nombre   string `json:"nombre,omitempty"`
	Email    string `json:"email,omitempty"`
	Rol      string `json:"rol,omitempty"`
	Role     string `json:"role,omitempty"`
}

// JWTDecoder lee los claims del JWT del backend. Sin secreto no verifica la firma; entonces la sesión
// necesita un auth.TokenVerifier que confirme el token con el servidor.
type JWTDecoder struct {
	secret []byte
}

func NewJWTDecoder() *JWTDecoder { return &JWTDecoder{} }

// NewSignedJWTDecoder verifica la firma HMAC con el secreto compartido del backend.
func NewSignedJWTDecoder(secret string) *JWTDecoder {
	return &JWTDecoder{secret: []byte(secret)}
}

// VerificaFirma indica si Decode rechaza tokens con firma inválida.
func (d *JWTDecoder) VerificaFirma() bool { return len(d.secret) > 0 }

func (d *JWTDecoder) Decode(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	var tc tokenClaims
	if d.VerificaFirma() {
		_, err := jwt.ParseWithClaims(token, &tc, func(*jwt.Token) (any, error) {
			return d.secret, nil
		}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrSesionExpirada
		}
		if err != nil {
			return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(token, &tc); err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrTokenInvalido, err)
	}

	c := auth.Claims{
		UserID:   idString(tc.UserID),
		Username: strings.TrimSpace(tc.Username),
		Nombre:   strings.TrimSpace(tc.Nombre),
		Email:    strings.TrimSpace(tc.Email),
	}
	if c.UserID == "" {
		c.UserID = idString(tc.ID)
	}
	if c.Username == "" {
		c.Username = tc.Subject
	}
	if c.UserID == "" {
		c.UserID = c.Username
	}
	if c.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: sin usuario", ErrTokenInvalido)
	}

	rol := tc.Rol
	if rol == "" {
		rol = tc.Role
	}
	c.Rol = auth.ParseRol(rol)

	if tc.ExpiresAt != nil {
		c.ExpiraEn = tc.ExpiresAt.Time
	}
	return c, nil
}

func idString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	default:
		return ""
	}
}
