package agenda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/toast"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"
)

const DefaultAnticipacion = 2 * time.Hour

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrHorarioNoDisponible = errors.New("el horario seleccionado ya no está disponible, elige otro")
)

// HorariosClinica entrega las franjas de atención configuradas en el servidor.
type HorariosClinica interface {
	Horarios(ctx context.Context) ([]configuracion.HorarioAtencion, error)
}

type Options struct {
	Citas        *citas.Service
	Horarios     HorariosClinica // nil => política por defecto
	Anticipacion time.Duration
	Logger       logger.Logger
}

type Service struct {
	citas        *citas.Service
	horarios     HorariosClinica
	anticipacion time.Duration
	loc          *time.Location
	now          func() time.Time
	log          logger.Logger
}

func NewService(opts Options) *Service {
	ant := opts.Anticipacion
	if ant <= 0 {
		ant = DefaultAnticipacion
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		citas:        opts.Citas,
		horarios:     opts.Horarios,
		anticipacion: ant,
		loc:          opts.Citas.Location(),
		now:          time.Now,
		log:          log,
	}
}

// Politica trae la política del servidor; si falla o está vacía, usa la política por defecto.
func (s *Service) Politica(ctx context.Context) Politica {
	if s.horarios == nil {
		return PoliticaPorDefecto()
	}
	items, err := s.horarios.Horarios(ctx)
	if err != nil {
		s.log.Warn("business hours unavailable, using default policy", map[string]any{"err": err})
		return PoliticaPorDefecto()
	}
	p, err := PoliticaDesdeHorarios(items)
	if err != nil {
		s.log.Warn("business hours empty, using default policy", map[string]any{"err": err})
		return PoliticaPorDefecto()
	}
	return p
}

// Horarios arma la vista de slots de (veterinario, fecha).
// Un error de fetch devuelve la vista en estado ERROR, sin slots, junto con el error.
func (s *Service) Horarios(ctx context.Context, veterinarioID int64, fecha string) (Vista, error) {
	if veterinarioID == 0 {
		return Vista{Fecha: fecha, Estado: VistaSinVeterinario, Grupos: []Grupo{}}, nil
	}
	if veterinarioID < 0 {
		return Vista{}, fmt.Errorf("%w: veterinarioId", ErrInvalidInput)
	}
	dia, err := fechas.ParseFecha(fecha, s.loc)
	if err != nil {
		return Vista{}, fmt.Errorf("%w: fecha", ErrInvalidInput)
	}

	v := Vista{
		VeterinarioID: veterinarioID,
		Fecha:         fechas.FormatFecha(dia),
		Grupos:        []Grupo{},
	}

	items, err := s.citas.HorariosDisponibles(ctx, veterinarioID, v.Fecha)
	if err != nil {
		v.Estado = VistaError
		if t, ok := toast.FromError(err); ok {
			v.Error = t.Mensaje
		}
		return v, err
	}

	p := s.Politica(ctx)
	v.Estado = VistaLista
	v.FuentePolitica = p.Fuente
	v.Cerrado = p.Cerrado(dia.Weekday())
	v.Grupos = Particionar(p, dia, items)
	return v, nil
}

// Validar pre-valida fechaHora (inline, antes de enviar).
// Un formato inválido es error de formulario; fuera de horario y anticipación son advertencias.
func (s *Service) Validar(ctx context.Context, fechaHora string) (Advertencias, error) {
	t, err := fechas.ParseFechaHora(fechaHora, s.loc)
	if err != nil {
		errs := &validate.Errores{}
		errs.Add("fechaHora", "no tiene el formato de fecha esperado")
		return nil, errs
	}
	return Validar(s.Politica(ctx), t, s.now().In(s.loc), s.anticipacion), nil
}

// Agendar: formulario, permiso, advertencias, verificación en el servidor y recién ahí la creación.
// Si el servidor dice que el slot ya no está libre no se crea nada ni se invalida el cache.
func (s *Service) Agendar(ctx context.Context, in citas.CrearInput) (citas.Cita, error) {
	norm, t, err := s.citas.NormalizarFechaHora(in.FechaHora)
	if err == nil {
		in.FechaHora = norm
	}
	if err := validate.Struct(in); err != nil {
		return citas.Cita{}, err
	}

	if err := session.Requiere(ctx, session.CapCitasCrear); err != nil {
		return citas.Cita{}, err
	}

	if adv := Validar(s.Politica(ctx), t.In(s.loc), s.now().In(s.loc), s.anticipacion); len(adv) > 0 {
		return citas.Cita{}, adv
	}

	d, err := s.citas.VerificarDisponibilidad(ctx, in.VeterinarioID, in.FechaHora)
	if err != nil {
		return citas.Cita{}, err
	}
	if !d.Disponible {
		s.log.Info("slot taken before booking", map[string]any{
			"veterinario_id": in.VeterinarioID,
			"fecha_hora":     in.FechaHora,
			"mensaje":        d.Mensaje,
		})
		return citas.Cita{}, ErrHorarioNoDisponible
	}

	return s.citas.Crear(ctx, in)
}
