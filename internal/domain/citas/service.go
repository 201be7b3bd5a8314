package citas

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("cita no encontrada")
	ErrTransicionInvalida    = errors.New("solo una cita programada puede cambiar de estado")
	ErrSolicitudProcesada    = errors.New("la solicitud ya fue procesada")
	ErrSolicitudNoEncontrada = errors.New("solicitud no encontrada")
)

type Service struct {
	repo        Repository
	solicitudes SolicitudesRepository
	cache       *query.Cache
	loc         *time.Location
}

func NewService(repo Repository, solicitudes SolicitudesRepository, cache *query.Cache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:        repo,
		solicitudes: solicitudes,
		cache:       cache,
		loc:         loc,
	}
}

func KeyLista(f Filtro) query.Key {
	return query.KeyCitas.With("lista", string(f.Estado), f.Fecha, id(f.VeterinarioID), id(f.PacienteID))
}

func KeyCita(citaID int64) query.Key {
	return query.KeyCitas.With(id(citaID))
}

// KeyHorarios es la key de los slots de (veterinario, fecha).
func KeyHorarios(veterinarioID int64, fecha string) query.Key {
	return query.KeyHorarios.With(id(veterinarioID), fecha)
}

func KeySolicitudes(estado EstadoSolicitud) query.Key {
	return query.KeySolicitudes.With(string(estado))
}

func id(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Listar(ctx context.Context, f Filtro) ([]Cita, error) {
	if f.Fecha != "" {
		d, err := fechas.ParseFecha(f.Fecha, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: fecha", ErrInvalidInput)
		}
		f.Fecha = fechas.FormatFecha(d)
	}
	return query.Fetch(ctx, s.cache, KeyLista(f), func(ctx context.Context) ([]Cita, error) {
		return s.repo.List(ctx, f)
	})
}

func (s *Service) Obtener(ctx context.Context, citaID int64) (Cita, error) {
	if citaID <= 0 {
		return Cita{}, ErrInvalidInput
	}
	c, err := query.Fetch(ctx, s.cache, KeyCita(citaID), func(ctx context.Context) (Cita, error) {
		return s.repo.GetByID(ctx, citaID)
	})
	if httpclient.IsNotFound(err) {
		return Cita{}, ErrNotFound
	}
	return c, err
}

// NormalizarFechaHora lleva cualquier formato aceptado al LocalDateTime que espera el backend.
func (s *Service) NormalizarFechaHora(v string) (string, time.Time, error) {
	t, err := fechas.ParseFechaHora(v, s.loc)
	if err != nil {
		return "", time.Time{}, err
	}
	return fechas.FormatFechaHora(t), t, nil
}

// Crear valida el formulario antes de enviarlo; un formulario inválido nunca llega al servidor.
func (s *Service) Crear(ctx context.Context, in CrearInput) (Cita, error) {
	in.TipoServicio = strings.TrimSpace(in.TipoServicio)
	in.Motivo = strings.TrimSpace(in.Motivo)
	in.Observaciones = strings.TrimSpace(in.Observaciones)

	if norm, _, err := s.NormalizarFechaHora(in.FechaHora); err == nil {
		in.FechaHora = norm
	}
	if err := validate.Struct(in); err != nil {
		return Cita{}, err
	}

	c, err := s.repo.Create(ctx, in)
	if err != nil {
		return Cita{}, err
	}
	s.invalidar(ctx, in.VeterinarioID, in.FechaHora)
	return c, nil
}

func (s *Service) Reprogramar(ctx context.Context, citaID int64, fechaHora string) (Cita, error) {
	actual, err := s.actual(ctx, citaID)
	if err != nil {
		return Cita{}, err
	}
	if !actual.Programada() {
		return Cita{}, ErrTransicionInvalida
	}

	norm, _, err := s.NormalizarFechaHora(fechaHora)
	if err != nil {
		errs := &validate.Errores{}
		errs.Add("fechaHora", "no tiene el formato de fecha esperado")
		return Cita{}, errs
	}

	c, err := s.repo.Reprogramar(ctx, citaID, norm)
	if err != nil {
		return Cita{}, err
	}
	s.invalidar(ctx, actual.Veterinario.ID, actual.FechaHora)
	s.invalidar(ctx, actual.Veterinario.ID, norm)
	return c, nil
}

func (s *Service) Completar(ctx context.Context, citaID int64, observaciones string) (Cita, error) {
	actual, err := s.actual(ctx, citaID)
	if err != nil {
		return Cita{}, err
	}
	if !actual.Programada() {
		return Cita{}, ErrTransicionInvalida
	}

	c, err := s.repo.Completar(ctx, citaID, strings.TrimSpace(observaciones))
	if err != nil {
		return Cita{}, err
	}
	s.invalidar(ctx, actual.Veterinario.ID, actual.FechaHora)
	return c, nil
}

func (s *Service) Cancelar(ctx context.Context, citaID int64, motivo string) (Cita, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		errs := &validate.Errores{}
		errs.Add("motivo", "es obligatorio")
		return Cita{}, errs
	}

	actual, err := s.actual(ctx, citaID)
	if err != nil {
		return Cita{}, err
	}
	if !actual.Programada() {
		return Cita{}, ErrTransicionInvalida
	}

	c, err := s.repo.Cancelar(ctx, citaID, motivo)
	if err != nil {
		return Cita{}, err
	}
	s.invalidar(ctx, actual.Veterinario.ID, actual.FechaHora)
	return c, nil
}

// VerificarDisponibilidad nunca se cachea: es el chequeo justo antes de crear.
func (s *Service) VerificarDisponibilidad(ctx context.Context, veterinarioID int64, fechaHora string) (Disponibilidad, error) {
	if veterinarioID <= 0 {
		return Disponibilidad{}, ErrInvalidInput
	}
	norm, _, err := s.NormalizarFechaHora(fechaHora)
	if err != nil {
		return Disponibilidad{}, fmt.Errorf("%w: fechaHora", ErrInvalidInput)
	}
	return s.repo.VerificarDisponibilidad(ctx, veterinarioID, norm)
}

// HorariosDisponibles: sin veterinario seleccionado no hay slots (estado válido, no es error).
func (s *Service) HorariosDisponibles(ctx context.Context, veterinarioID int64, fecha string) ([]Horario, error) {
	if veterinarioID == 0 {
		return []Horario{}, nil
	}
	d, err := fechas.ParseFecha(fecha, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha", ErrInvalidInput)
	}
	fecha = fechas.FormatFecha(d)

	return query.Fetch(ctx, s.cache, KeyHorarios(veterinarioID, fecha), func(ctx context.Context) ([]Horario, error) {
		return s.repo.HorariosDisponibles(ctx, veterinarioID, fecha)
	})
}

func (s *Service) ListarSolicitudes(ctx context.Context, estado EstadoSolicitud) ([]Solicitud, error) {
	return query.Fetch(ctx, s.cache, KeySolicitudes(estado), func(ctx context.Context) ([]Solicitud, error) {
		return s.solicitudes.List(ctx, estado)
	})
}

func (s *Service) AprobarSolicitud(ctx context.Context, solicitudID int64, in AprobarInput) (Cita, error) {
	if norm, _, err := s.NormalizarFechaHora(in.FechaHora); err == nil {
		in.FechaHora = norm
	}
	if err := validate.Struct(in); err != nil {
		return Cita{}, err
	}
	if err := s.solicitudPendiente(ctx, solicitudID); err != nil {
		return Cita{}, err
	}

	c, err := s.solicitudes.Aprobar(ctx, solicitudID, in)
	if err != nil {
		return Cita{}, err
	}
	s.invalidar(ctx, in.VeterinarioID, in.FechaHora)
	_ = s.cache.Invalidate(ctx, query.KeySolicitudes)
	return c, nil
}

func (s *Service) RechazarSolicitud(ctx context.Context, solicitudID int64, motivo string) (Solicitud, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		errs := &validate.Errores{}
		errs.Add("motivo", "es obligatorio")
		return Solicitud{}, errs
	}
	if err := s.solicitudPendiente(ctx, solicitudID); err != nil {
		return Solicitud{}, err
	}

	sol, err := s.solicitudes.Rechazar(ctx, solicitudID, motivo)
	if err != nil {
		return Solicitud{}, err
	}
	_ = s.cache.Invalidate(ctx, query.KeySolicitudes)
	return sol, nil
}

func (s *Service) solicitudPendiente(ctx context.Context, solicitudID int64) error {
	if solicitudID <= 0 {
		return ErrInvalidInput
	}
	sol, err := s.solicitudes.GetByID(ctx, solicitudID)
	if httpclient.IsNotFound(err) {
		return ErrSolicitudNoEncontrada
	}
	if err != nil {
		return err
	}
	if sol.Estado != SolicitudPendiente {
		return ErrSolicitudProcesada
	}
	return nil
}

// actual lee la cita sin cache: el guard de transición necesita el estado vigente.
func (s *Service) actual(ctx context.Context, citaID int64) (Cita, error) {
	if citaID <= 0 {
		return Cita{}, ErrInvalidInput
	}
	c, err := s.repo.GetByID(ctx, citaID)
	if httpclient.IsNotFound(err) {
		return Cita{}, ErrNotFound
	}
	return c, err
}

// Invalidar refresca lo que depende de una cita de veterinarioID en fechaHora
// (listas, dashboard y los slots de ese día).
func (s *Service) Invalidar(ctx context.Context, veterinarioID int64, fechaHora string) {
	s.invalidar(ctx, veterinarioID, fechaHora)
}

func (s *Service) invalidar(ctx context.Context, veterinarioID int64, fechaHora string) {
	keys := []query.Key{query.KeyCitas, query.KeyDashboard}
	if veterinarioID > 0 {
		if t, err := fechas.ParseFechaHora(fechaHora, s.loc); err == nil {
			keys = append(keys, KeyHorarios(veterinarioID, fechas.FormatFecha(t)))
		} else {
			keys = append(keys, query.KeyHorarios.With(id(veterinarioID)))
		}
	}
	// Un error de invalidación no revierte la mutación; el cache expira por stale time.
	_ = s.cache.Invalidate(ctx, keys...)
}

// RefrescarHorarios descarta los slots cacheados de (veterinario, fecha) para forzar un fetch nuevo.
func (s *Service) RefrescarHorarios(ctx context.Context, veterinarioID int64, fecha string) error {
	d, err := fechas.ParseFecha(fecha, s.loc)
	if err != nil {
		return fmt.Errorf("%w: fecha", ErrInvalidInput)
	}
	return s.cache.Invalidate(ctx, KeyHorarios(veterinarioID, fechas.FormatFecha(d)))
}
