package citas

// Estado de la cita.
// @Enum PROGRAMADA, COMPLETADA, CANCELADA
type Estado string

const (
	EstadoProgramada Estado = "PROGRAMADA"
	EstadoCompletada Estado = "COMPLETADA"
	EstadoCancelada  Estado = "CANCELADA"
)

// Triage define la prioridad asignada en recepción.
// @Enum BAJO, MEDIO, ALTO, URGENTE
type Triage string

const (
	TriageBajo    Triage = "BAJO"
	TriageMedio   Triage = "MEDIO"
	TriageAlto    Triage = "ALTO"
	TriageUrgente Triage = "URGENTE"
)

// Ref es la referencia embebida que manda el backend ({id, nombre}).
type Ref struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre,omitempty"`
}

type Cita struct {
	ID            int64  `json:"id"`
	FechaHora     string `json:"fechaHora"` // LocalDateTime del backend, sin zona
	Estado        Estado `json:"estado"`
	Paciente      Ref    `json:"paciente"`
	Veterinario   Ref    `json:"veterinario"`
	TipoServicio  string `json:"tipoServicio,omitempty"`
	Motivo        string `json:"motivo,omitempty"`
	TriageNivel   Triage `json:"triageNivel,omitempty"`
	Observaciones string `json:"observaciones,omitempty"`
}

// Programada: solo una cita programada admite reprogramar, completar o cancelar.
func (c Cita) Programada() bool {
	return c.Estado == EstadoProgramada
}

// EstadoHorario es el estado de un slot tal como lo calcula el servidor.
// @Enum DISPONIBLE, OCUPADO, FUERA_HORARIO, BLOQUEADO
type EstadoHorario string

const (
	HorarioDisponible   EstadoHorario = "DISPONIBLE"
	HorarioOcupado      EstadoHorario = "OCUPADO"
	HorarioFueraHorario EstadoHorario = "FUERA_HORARIO"
	HorarioBloqueado    EstadoHorario = "BLOQUEADO"
)

// Horario es un slot reservable para (veterinario, fecha). Efímero: nunca se persiste.
type Horario struct {
	FechaHora  string        `json:"fechaHora"`
	Disponible bool          `json:"disponible"`
	Estado     EstadoHorario `json:"estado,omitempty"`
	Motivo     string        `json:"motivo,omitempty"`
}

// Disponibilidad es la respuesta de verificar-disponibilidad.
type Disponibilidad struct {
	Disponible bool   `json:"disponible"`
	Mensaje    string `json:"mensaje,omitempty"`
}

// Filtro de listado. Campos vacíos no filtran.
type Filtro struct {
	Estado        Estado `json:"estado,omitempty"`
	Fecha         string `json:"fecha,omitempty"` // YYYY-MM-DD
	VeterinarioID int64  `json:"veterinarioId,omitempty"`
	PacienteID    int64  `json:"pacienteId,omitempty"`
}

type CrearInput struct {
	PacienteID    int64  `json:"pacienteId" validate:"required,gt=0"`
	VeterinarioID int64  `json:"veterinarioId" validate:"required,gt=0"`
	FechaHora     string `json:"fechaHora" validate:"required,datetime=2006-01-02T15:04:05"`
	TipoServicio  string `json:"tipoServicio" validate:"required,max=80"`
	Motivo        string `json:"motivo" validate:"required,min=3,max=500"`
	TriageNivel   Triage `json:"triageNivel,omitempty" validate:"omitempty,oneof=BAJO MEDIO ALTO URGENTE"`
	Observaciones string `json:"observaciones,omitempty" validate:"max=1000"`
}

// EstadoSolicitud de una solicitud de cita hecha en línea por un cliente.
// @Enum PENDIENTE, APROBADA, RECHAZADA
type EstadoSolicitud string

const (
	SolicitudPendiente EstadoSolicitud = "PENDIENTE"
	SolicitudAprobada  EstadoSolicitud = "APROBADA"
	SolicitudRechazada EstadoSolicitud = "RECHAZADA"
)

type Solicitud struct {
	ID             int64           `json:"id"`
	NombreCliente  string          `json:"nombreCliente"`
	Telefono       string          `json:"telefono,omitempty"`
	Email          string          `json:"email,omitempty"`
	NombreMascota  string          `json:"nombreMascota"`
	Especie        string          `json:"especie,omitempty"`
	FechaPreferida string          `json:"fechaPreferida,omitempty"`
	Motivo         string          `json:"motivo,omitempty"`
	Estado         EstadoSolicitud `json:"estado"`
	CitaID         int64           `json:"citaId,omitempty"`
	MotivoRechazo  string          `json:"motivoRechazo,omitempty"`
}

type AprobarInput struct {
	VeterinarioID int64  `json:"veterinarioId" validate:"required,gt=0"`
	FechaHora     string `json:"fechaHora" validate:"required,datetime=2006-01-02T15:04:05"`
	PacienteID    int64  `json:"pacienteId,omitempty"`
}
