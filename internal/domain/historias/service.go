package historias

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
	ErrNotFound     = errors.New("el paciente no tiene historia clínica")
)

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func keyPaciente(pacienteID int64) query.Key {
	return query.KeyHistorias.With("paciente", strconv.FormatInt(pacienteID, 10))
}

func (s *Service) ObtenerPorPaciente(ctx context.Context, pacienteID int64) (HistoriaClinica, error) {
	if pacienteID <= 0 {
		return HistoriaClinica{}, ErrInvalidInput
	}
	h, err := query.Fetch(ctx, s.cache, keyPaciente(pacienteID), func(ctx context.Context) (HistoriaClinica, error) {
		return s.repo.GetByPaciente(ctx, pacienteID)
	})
	if httpclient.IsNotFound(err) {
		return HistoriaClinica{}, ErrNotFound
	}
	if err != nil {
		return HistoriaClinica{}, err
	}
	if h.Registros == nil {
		h.Registros = []RegistroMedico{}
	}
	return h, nil
}

// AgregarRegistro añade una consulta a la historia del paciente.
func (s *Service) AgregarRegistro(ctx context.Context, pacienteID int64, in RegistroInput) (RegistroMedico, error) {
	h, err := s.ObtenerPorPaciente(ctx, pacienteID)
	if err != nil {
		return RegistroMedico{}, err
	}

	in.Motivo = strings.TrimSpace(in.Motivo)
	in.Diagnostico = strings.TrimSpace(in.Diagnostico)
	in.Tratamiento = strings.TrimSpace(in.Tratamiento)
	in.Observaciones = strings.TrimSpace(in.Observaciones)

	errs := &validate.Errores{}
	if err := validate.Struct(in); err != nil {
		var verrs *validate.Errores
		if !errors.As(err, &verrs) {
			return RegistroMedico{}, err
		}
		errs = verrs
	}
	in.SignosVitales = normalizarSignos(in.SignosVitales, errs)
	if err := errs.OrNil(); err != nil {
		return RegistroMedico{}, err
	}

	reg, err := s.repo.AddRegistro(ctx, h.ID, in)
	if err != nil {
		return RegistroMedico{}, err
	}
	_ = s.cache.Invalidate(ctx, keyPaciente(pacienteID))
	return reg, nil
}

func (s *Service) DescargarPDF(ctx context.Context, pacienteID int64) (httpclient.Blob, error) {
	h, err := s.ObtenerPorPaciente(ctx, pacienteID)
	if err != nil {
		return httpclient.Blob{}, err
	}
	return s.repo.DownloadPDF(ctx, h.ID)
}
