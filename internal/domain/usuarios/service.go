package usuarios

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("usuario no encontrado")
	ErrUsuarioActual = errors.New("no puedes desactivar tu propio usuario")
	ErrDuplicado     = errors.New("ya existe un usuario con ese username o email")
)

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Veterinarios alimenta el selector de la agenda.
func (s *Service) Veterinarios(ctx context.Context) ([]Usuario, error) {
	items, err := s.Listar(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Usuario, 0, len(items))
	for _, u := range items {
		if u.Activo && u.Rol == auth.RolVeterinario {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Service) Listar(ctx context.Context) ([]Usuario, error) {
	return query.Fetch(ctx, s.cache, query.KeyUsuarios.With("lista"), s.repo.List)
}

func (s *Service) Crear(ctx context.Context, in CrearInput) (Usuario, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Rol = auth.ParseRol(string(in.Rol))
	if err := validate.Struct(in); err != nil {
		return Usuario{}, err
	}
	u, err := s.repo.Create(ctx, in)
	if httpclient.IsConflict(err) {
		return Usuario{}, ErrDuplicado
	}
	if err != nil {
		return Usuario{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyUsuarios)
	return u, nil
}

func (s *Service) Actualizar(ctx context.Context, id int64, in ActualizarInput) (Usuario, error) {
	if id <= 0 {
		return Usuario{}, ErrInvalidInput
	}
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Rol = auth.ParseRol(string(in.Rol))
	if err := validate.Struct(in); err != nil {
		return Usuario{}, err
	}
	u, err := s.repo.Update(ctx, id, in)
	switch {
	case httpclient.IsNotFound(err):
		return Usuario{}, ErrNotFound
	case httpclient.IsConflict(err):
		return Usuario{}, ErrDuplicado
	case err != nil:
		return Usuario{}, err
	}
	// Un cambio de rol cambia las capacidades resueltas para ese rol.
	_ = s.cache.Invalidate(ctx, query.KeyUsuarios, query.KeyPermisos)
	return u, nil
}

// CambiarEstado activa o desactiva; el usuario en sesión no puede desactivarse a sí mismo.
func (s *Service) CambiarEstado(ctx context.Context, id int64, activo bool) (Usuario, error) {
	if id <= 0 {
		return Usuario{}, ErrInvalidInput
	}
	if !activo && session.UserID(ctx) == strconv.FormatInt(id, 10) {
		return Usuario{}, ErrUsuarioActual
	}
	u, err := s.repo.SetActivo(ctx, id, activo)
	if httpclient.IsNotFound(err) {
		return Usuario{}, ErrNotFound
	}
	if err != nil {
		return Usuario{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyUsuarios)
	return u, nil
}
