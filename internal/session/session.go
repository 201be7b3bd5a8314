// Package session guarda el usuario autenticado y sus capacidades para decidir qué acciones mostrar.
// Es conveniencia de UX: el backend vuelve a autorizar cada request.
package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/capabilities"
)

var (
	ErrNoAutenticado  = errors.New("no hay una sesión activa")
	ErrSesionExpirada = errors.New("la sesión expiró")
	ErrSinPermiso     = errors.New("no tienes permisos para esta acción")
)

type Session struct {
	Token       string          `json:"-"`
	Usuario     auth.Claims     `json:"usuario"`
	Capacidades map[string]bool `json:"capacidades"`
}

func (s *Session) Puede(capacidad string) bool {
	if s == nil {
		return false
	}
	return s.Capacidades[CapTodas] || s.Capacidades[capacidad]
}

// DefaultConfirmTTL es cuánto vale una confirmación del backend antes de volver a pedirla.
const DefaultConfirmTTL = 5 * time.Minute

// Builder arma sesiones a partir de un token.
// Con Verifier, un token solo produce sesión después de que el backend lo acepta; las confirmaciones
// se recuerdan por hash del token hasta ConfirmTTL o la expiración del token.
type Builder struct {
	Decoder    auth.TokenDecoder
	Verifier   auth.TokenVerifier    // nil => la firma la valida el Decoder
	Resolver   capabilities.Resolver // opcional
	Logger     logger.Logger
	Now        func() time.Time
	ConfirmTTL time.Duration

	mu          sync.Mutex
	confirmados map[string]time.Time
}

func (b *Builder) Build(ctx context.Context, token string) (*Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrNoAutenticado
	}
	claims, err := b.Decoder.Decode(ctx, token)
	if err != nil {
		return nil, err
	}
	if claims.Expirado(b.now()) {
		return nil, ErrSesionExpirada
	}
	if err := b.confirmar(ctx, token, claims); err != nil {
		return nil, err
	}

	return &Session{
		Token:       token,
		Usuario:     claims,
		Capacidades: b.capacidades(ctx, token, claims),
	}, nil
}

// Confirmar registra un token que el backend ya aceptó, p.ej. el que acaba de emitir el login.
func (b *Builder) Confirmar(token string, expira time.Time) {
	now := b.now()
	ttl := b.ConfirmTTL
	if ttl <= 0 {
		ttl = DefaultConfirmTTL
	}
	hasta := now.Add(ttl)
	if !expira.IsZero() && expira.Before(hasta) {
		hasta = expira
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.confirmados == nil {
		b.confirmados = map[string]time.Time{}
	}
	if len(b.confirmados) >= 1024 {
		for h, v := range b.confirmados {
			if !now.Before(v) {
				delete(b.confirmados, h)
			}
		}
	}
	b.confirmados[TokenHash(token)] = hasta
}

func (b *Builder) confirmado(token string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	hasta, ok := b.confirmados[TokenHash(token)]
	return ok && b.now().Before(hasta)
}

func (b *Builder) confirmar(ctx context.Context, token string, claims auth.Claims) error {
	if b.Verifier == nil || b.confirmado(token) {
		return nil
	}
	if err := b.Verifier.Verify(ctx, token); err != nil {
		if errors.Is(err, auth.ErrTokenRechazado) {
			return fmt.Errorf("%w: %v", ErrTokenInvalido, err)
		}
		if b.Logger != nil {
			b.Logger.Warn("token confirmation failed", map[string]any{"err": err})
		}
		return fmt.Errorf("%w: no se pudo confirmar el token: %v", ErrNoAutenticado, err)
	}
	b.Confirmar(token, claims.ExpiraEn)
	return nil
}

func (b *Builder) now() time.Time {
	if b.Now != nil {
		return b.Now()
	}
	return time.Now()
}

// capacidades usa el RBAC del servidor si existe; si falla o está vacío, la matriz por defecto.
func (b *Builder) capacidades(ctx context.Context, token string, claims auth.Claims) map[string]bool {
	rol := claims.Rol
	if b.Resolver != nil {
		// El lookup de permisos viaja con el token del propio usuario.
		ctx = WithSession(ctx, &Session{Token: token, Usuario: claims})
		caps, err := b.Resolver.Resolve(ctx, rol)
		if err == nil && len(caps) > 0 {
			return caps
		}
		if err != nil && b.Logger != nil {
			b.Logger.Warn("permissions lookup failed, using role defaults", map[string]any{
				"rol": string(rol),
				"err": err,
			})
		}
	}
	return CapacidadesPorRol(rol)
}

// Store es la sesión actual del proceso (CLI). Se pierde al terminar.
type Store struct {
	mu      sync.RWMutex
	current *Session
}

func NewStore() *Store { return &Store{} }

func (st *Store) Set(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = s
}

func (st *Store) Get() (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current, st.current != nil
}

// Clear equivale al logout.
func (st *Store) Clear() {
	st.Set(nil)
}

// Context adjunta la sesión actual (si hay) a ctx.
func (st *Store) Context(ctx context.Context) context.Context {
	if s, ok := st.Get(); ok {
		return WithSession(ctx, s)
	}
	return ctx
}

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// Token devuelve el bearer token de la sesión en ctx ("" si no hay).
func Token(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Token
	}
	return ""
}

// TokenHash identifica un token sin guardarlo en claro.
func TokenHash(token string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(token)))
	return hex.EncodeToString(sum[:16])
}

// CacheScope separa el cache de queries por token: solo comparten respuestas requests con el mismo bearer.
func CacheScope(ctx context.Context) string {
	if t := Token(ctx); t != "" {
		return TokenHash(t)
	}
	return ""
}

// UserID del usuario autenticado ("" si no hay sesión).
func UserID(ctx context.Context) string {
	if s, ok := FromContext(ctx); ok {
		return s.Usuario.UserID
	}
	return ""
}

// Requiere falla si la sesión en ctx no tiene la capacidad.
func Requiere(ctx context.Context, capacidad string) error {
	s, ok := FromContext(ctx)
	if !ok {
		return ErrNoAutenticado
	}
	if !s.Puede(capacidad) {
		return ErrSinPermiso
	}
	return nil
}
