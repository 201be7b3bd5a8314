package proveedores

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("proveedor no encontrado")
)

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Listar devuelve todos; soloActivos filtra del lado del cliente sobre la misma lista cacheada.
func (s *Service) Listar(ctx context.Context, soloActivos bool) ([]Proveedor, error) {
	items, err := query.Fetch(ctx, s.cache, query.KeyProveedores.With("lista"), s.repo.List)
	if err != nil || !soloActivos {
		return items, err
	}
	out := make([]Proveedor, 0, len(items))
	for _, p := range items {
		if p.Activo {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Service) Obtener(ctx context.Context, id int64) (Proveedor, error) {
	if id <= 0 {
		return Proveedor{}, ErrInvalidInput
	}
	p, err := query.Fetch(ctx, s.cache, query.KeyProveedores.With(strconv.FormatInt(id, 10)), func(ctx context.Context) (Proveedor, error) {
		return s.repo.GetByID(ctx, id)
	})
	if httpclient.IsNotFound(err) {
		return Proveedor{}, ErrNotFound
	}
	return p, err
}

func (s *Service) Crear(ctx context.Context, in Input) (Proveedor, error) {
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Proveedor{}, err
	}
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Proveedor{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyProveedores)
	return p, nil
}

func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Proveedor, error) {
	if id <= 0 {
		return Proveedor{}, ErrInvalidInput
	}
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Proveedor{}, err
	}
	p, err := s.repo.Update(ctx, id, in)
	if httpclient.IsNotFound(err) {
		return Proveedor{}, ErrNotFound
	}
	if err != nil {
		return Proveedor{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyProveedores)
	return p, nil
}

func (s *Service) Eliminar(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.repo.Delete(ctx, id)
	if httpclient.IsNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, query.KeyProveedores)
	return nil
}

func limpiar(in Input) Input {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.NIT = strings.TrimSpace(in.NIT)
	in.Contacto = strings.TrimSpace(in.Contacto)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Direccion = strings.TrimSpace(in.Direccion)
	return in
}
