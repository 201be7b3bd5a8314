package configuracion

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
)

var ErrInvalidInput = errors.New("invalid input")

var (
	keyClinica   = query.KeyConfiguracion.With("clinica")
	keyPermisos  = query.KeyConfiguracion.With("permisos")
	keyServicios = query.KeyConfiguracion.With("servicios")
	keyHorarios  = query.KeyConfiguracion.With("horarios")
	keyBackups   = query.KeyConfiguracion.With("backups")
)

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) Clinica(ctx context.Context) (Clinica, error) {
	return query.Fetch(ctx, s.cache, keyClinica, s.repo.GetClinica)
}

func (s *Service) ActualizarClinica(ctx context.Context, c Clinica) (Clinica, error) {
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Email = strings.TrimSpace(c.Email)
	if err := validate.Struct(c); err != nil {
		return Clinica{}, err
	}
	out, err := s.repo.UpdateClinica(ctx, c)
	if err != nil {
		return Clinica{}, err
	}
	_ = s.cache.Invalidate(ctx, keyClinica)
	return out, nil
}

func (s *Service) Permisos(ctx context.Context) ([]Permiso, error) {
	return query.Fetch(ctx, s.cache, keyPermisos, s.repo.ListPermisos)
}

func (s *Service) PermisosPorRol(ctx context.Context, rol string) ([]Permiso, error) {
	rol = strings.ToUpper(strings.TrimSpace(rol))
	if rol == "" {
		return nil, ErrInvalidInput
	}
	return query.Fetch(ctx, s.cache, keyPermisos.With(rol), func(ctx context.Context) ([]Permiso, error) {
		return s.repo.ListPermisosPorRol(ctx, rol)
	})
}

// ActualizarPermisos también invalida las capacidades por rol que usa la sesión.
func (s *Service) ActualizarPermisos(ctx context.Context, items []Permiso) ([]Permiso, error) {
	errs := &validate.Errores{}
	for i, p := range items {
		if err := validate.Struct(p); err != nil {
			errs.Add("permisos["+strconv.Itoa(i)+"]", err.Error())
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	out, err := s.repo.UpdatePermisos(ctx, items)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, keyPermisos, query.KeyPermisos)
	return out, nil
}

func (s *Service) Servicios(ctx context.Context) ([]Servicio, error) {
	return query.Fetch(ctx, s.cache, keyServicios, s.repo.ListServicios)
}

func (s *Service) CrearServicio(ctx context.Context, in Servicio) (Servicio, error) {
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := validate.Struct(in); err != nil {
		return Servicio{}, err
	}
	out, err := s.repo.CreateServicio(ctx, in)
	if err != nil {
		return Servicio{}, err
	}
	_ = s.cache.Invalidate(ctx, keyServicios)
	return out, nil
}

func (s *Service) ActualizarServicio(ctx context.Context, id int64, in Servicio) (Servicio, error) {
	if id <= 0 {
		return Servicio{}, ErrInvalidInput
	}
	in.Nombre = strings.TrimSpace(in.Nombre)
	if err := validate.Struct(in); err != nil {
		return Servicio{}, err
	}
	out, err := s.repo.UpdateServicio(ctx, id, in)
	if err != nil {
		return Servicio{}, err
	}
	_ = s.cache.Invalidate(ctx, keyServicios)
	return out, nil
}

// Horarios es la política de atención que usan la agenda y su pre-validación.
func (s *Service) Horarios(ctx context.Context) ([]HorarioAtencion, error) {
	return query.Fetch(ctx, s.cache, keyHorarios, s.repo.ListHorarios)
}

// ActualizarHorarios invalida también los slots: el servidor los calcula con estos horarios.
func (s *Service) ActualizarHorarios(ctx context.Context, items []HorarioAtencion) ([]HorarioAtencion, error) {
	if err := ValidarHorarios(items); err != nil {
		return nil, err
	}
	out, err := s.repo.UpdateHorarios(ctx, items)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Invalidate(ctx, keyHorarios, query.KeyHorarios)
	return out, nil
}

// ValidarHorarios revisa día conocido y apertura < cierre en cada franja activa.
func ValidarHorarios(items []HorarioAtencion) error {
	errs := &validate.Errores{}
	for i, h := range items {
		campo := "horarios[" + strconv.Itoa(i) + "]"
		if _, ok := ParseDiaSemana(h.DiaSemana); !ok {
			errs.Add(campo+".diaSemana", "no es un día válido")
			continue
		}
		if !h.Activo {
			continue
		}
		desde, err1 := fechas.ParseHora(h.HoraApertura)
		hasta, err2 := fechas.ParseHora(h.HoraCierre)
		if err1 != nil || err2 != nil {
			errs.Add(campo, "las horas deben tener formato HH:MM")
			continue
		}
		if desde >= hasta {
			errs.Add(campo, "la hora de apertura debe ser anterior a la de cierre")
		}
	}
	return errs.OrNil()
}

func (s *Service) Auditoria(ctx context.Context, f FiltroAuditoria) ([]RegistroAuditoria, error) {
	if f.Desde != nil && f.Hasta != nil && f.Hasta.Before(*f.Desde) {
		errs := &validate.Errores{}
		errs.Add("hasta", "debe ser posterior a desde")
		return nil, errs
	}
	// La auditoría se consulta siempre fresca.
	return s.repo.ListAuditoria(ctx, f)
}

func (s *Service) Backups(ctx context.Context) ([]Backup, error) {
	return query.Fetch(ctx, s.cache, keyBackups, s.repo.ListBackups)
}

func (s *Service) CrearBackup(ctx context.Context) (Backup, error) {
	b, err := s.repo.CreateBackup(ctx)
	if err != nil {
		return Backup{}, err
	}
	_ = s.cache.Invalidate(ctx, keyBackups)
	return b, nil
}

func (s *Service) DescargarBackup(ctx context.Context, id int64) (httpclient.Blob, error) {
	if id <= 0 {
		return httpclient.Blob{}, fmt.Errorf("%w: id", ErrInvalidInput)
	}
	return s.repo.DownloadBackup(ctx, id)
}
