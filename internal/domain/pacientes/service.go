package pacientes

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
	ErrNotFound     = errors.New("paciente no encontrado")
)

type Service struct {
	repo   Repository
	cache  *query.Cache
	umbral float64
}

func NewService(repo Repository, cache *query.Cache, umbral float64) *Service {
	if umbral <= 0 || umbral > 1 {
		umbral = DefaultUmbralProbable
	}
	return &Service{repo: repo, cache: cache, umbral: umbral}
}

func KeyLista(q string) query.Key {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return query.KeyPacientes.With("lista")
	}
	return query.KeyPacientes.With("lista", q)
}

func KeyPaciente(id int64) query.Key {
	return query.KeyPacientes.With(strconv.FormatInt(id, 10))
}

func KeyPorCliente(clienteID int64) query.Key {
	return query.KeyPacientes.With("cliente", strconv.FormatInt(clienteID, 10))
}

func (s *Service) Listar(ctx context.Context, q string) ([]Paciente, error) {
	q = strings.TrimSpace(q)
	return query.Fetch(ctx, s.cache, KeyLista(q), func(ctx context.Context) ([]Paciente, error) {
		return s.repo.List(ctx, q)
	})
}

func (s *Service) ListarPorCliente(ctx context.Context, clienteID int64) ([]Paciente, error) {
	if clienteID <= 0 {
		return nil, ErrInvalidInput
	}
	return query.Fetch(ctx, s.cache, KeyPorCliente(clienteID), func(ctx context.Context) ([]Paciente, error) {
		return s.repo.ListByCliente(ctx, clienteID)
	})
}

func (s *Service) Obtener(ctx context.Context, id int64) (Paciente, error) {
	if id <= 0 {
		return Paciente{}, ErrInvalidInput
	}
	p, err := query.Fetch(ctx, s.cache, KeyPaciente(id), func(ctx context.Context) (Paciente, error) {
		return s.repo.GetByID(ctx, id)
	})
	if httpclient.IsNotFound(err) {
		return Paciente{}, ErrNotFound
	}
	return p, err
}

func (s *Service) Crear(ctx context.Context, in Input) (Paciente, error) {
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Paciente{}, err
	}
	p, err := s.repo.Create(ctx, in)
	if err != nil {
		return Paciente{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyPacientes, query.KeyDashboard)
	return p, nil
}

func (s *Service) Actualizar(ctx context.Context, id int64, in Input) (Paciente, error) {
	if id <= 0 {
		return Paciente{}, ErrInvalidInput
	}
	in = limpiar(in)
	if err := validate.Struct(in); err != nil {
		return Paciente{}, err
	}
	p, err := s.repo.Update(ctx, id, in)
	if httpclient.IsNotFound(err) {
		return Paciente{}, ErrNotFound
	}
	if err != nil {
		return Paciente{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeyPacientes)
	return p, nil
}

// PosiblesDuplicados busca pacientes con nombre parecido, entre los del cliente si se indica.
func (s *Service) PosiblesDuplicados(ctx context.Context, nombre string, clienteID, excluirID int64) ([]Coincidencia, error) {
	if strings.TrimSpace(nombre) == "" {
		errs := &validate.Errores{}
		errs.Add("nombre", "es obligatorio")
		return nil, errs
	}

	var (
		candidatos []Paciente
		err        error
	)
	if clienteID > 0 {
		candidatos, err = s.ListarPorCliente(ctx, clienteID)
	} else {
		candidatos, err = s.Listar(ctx, "")
	}
	if err != nil {
		return nil, err
	}
	return Duplicados(nombre, candidatos, s.umbral, excluirID), nil
}

func limpiar(in Input) Input {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Especie = strings.TrimSpace(in.Especie)
	in.Raza = strings.TrimSpace(in.Raza)
	in.EstadoSalud = strings.TrimSpace(in.EstadoSalud)
	in.Sexo = Sexo(strings.ToUpper(strings.TrimSpace(string(in.Sexo))))
	return in
}
