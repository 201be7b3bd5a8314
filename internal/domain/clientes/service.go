package clientes

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
	ErrNotFound     = errors.New("cliente no encontrado")

	// ErrTienePacientes: el backend rechaza borrar clientes con mascotas registradas.
	ErrTienePacientes = errors.New("el cliente tiene pacientes registrados y no se puede eliminar")
)

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func keyLista(q string) query.Key {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return query.KeyClientes.With("lista")
	}
	return query.KeyClientes.With("lista", q)
}

func (s *Service) Listar(ctx context.Context, q string) ([]Cliente, error) {
	q = strings.TrimSpace(q)
	return query.Fetch(ctx, s.cache, keyLista(q), func(ctx context.Context) ([]Cliente, error) {
		return s.repo.List(ctx, q)
	})
}

func (s *Service) Obtener(ctx context.Context, id int64) (Cliente, error) {
	if id <= 0 {
		return Cliente{}, ErrInvalidInput
	}
	c, err := query.Fetch(ctx, s.cache, query.KeyClientes.With(strconv.FormatInt(id, 10)), func(ctx context.Context) (Cliente, error) {
		return s.repo.GetByID(ctx, id)
	})
	if httpclient.IsNotFound(err) {
		return Cliente{}, ErrNotFound
	}
	return c, err
}

func (s *Service) Crear(ctx context.Context, in Input) (Cliente, error) {
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Cliente{}, err
	}
	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return Cliente{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyClientes, query.KeyDashboard)
	return c, nil
}

func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Cliente, error) {
	if id <= 0 {
		return Cliente{}, ErrInvalidInput
	}
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Cliente{}, err
	}
	c, err := s.repo.Update(ctx, id, in)
	if httpclient.IsNotFound(err) {
		return Cliente{}, ErrNotFound
	}
	if err != nil {
		return Cliente{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyClientes)
	return c, nil
}

func (s *Service) Eliminar(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.repo.Delete(ctx, id)
	switch {
	case httpclient.IsNotFound(err):
		return ErrNotFound
	case httpclient.IsConflict(err):
		return ErrTienePacientes
	case err != nil:
		return err
	}
	_ = s.cache.Invalidate(ctx, query.KeyClientes, query.KeyPacientes, query.KeyDashboard)
	return nil
}

func limpiar(in Input) Input {
	in.Nombres = strings.TrimSpace(in.Nombres)
	in.Apellidos = strings.TrimSpace(in.Apellidos)
	in.Documento = strings.TrimSpace(in.Documento)
	in.Telefono = strings.TrimSpace(in.Telefono)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Direccion = strings.TrimSpace(in.Direccion)
	in.TipoDocumento = TipoDocumento(strings.ToUpper(strings.TrimSpace(string(in.TipoDocumento))))
	return in
}
