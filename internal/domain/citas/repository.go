package citas

import "context"

type Repository interface {
	List(ctx context.Context, f Filtro) ([]Cita, error)
	GetByID(ctx context.Context, id int64) (Cita, error)
	Create(ctx context.Context, in CrearInput) (Cita, error)
	Reprogramar(ctx context.Context, id int64, fechaHora string) (Cita, error)
	Completar(ctx context.Context, id int64, observaciones string) (Cita, error)
	Cancelar(ctx context.Context, id int64, motivo string) (Cita, error)

	VerificarDisponibilidad(ctx context.Context, veterinarioID int64, fechaHora string) (Disponibilidad, error)
	HorariosDisponibles(ctx context.Context, veterinarioID int64, fecha string) ([]Horario, error)
}

type SolicitudesRepository interface {
	List(ctx context.Context, estado EstadoSolicitud) ([]Solicitud, error)
	GetByID(ctx context.Context, id int64) (Solicitud, error)
	Aprobar(ctx context.Context, id int64, in AprobarInput) (Cita, error)
	Rechazar(ctx context.Context, id int64, motivo string) (Solicitud, error)
}
