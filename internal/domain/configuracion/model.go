package configuracion

import "time"

type Clinica struct {
	ID        int64  `json:"id,omitempty"`
	Nombre    string `json:"nombre" validate:"required,max=120"`
	NIT       string `json:"nit" validate:"required,max=30"`
	Direccion string `json:"direccion" validate:"required,max=200"`
	Telefono  string `json:"telefono" validate:"required,min=7,max=20"`
	Email     string `json:"email" validate:"required,email"`
	SitioWeb  string `json:"sitioWeb,omitempty" validate:"omitempty,url"`
}

type Permiso struct {
	ID         int64  `json:"id,omitempty"`
	Rol        string `json:"rol" validate:"required,oneof=ADMIN VETERINARIO RECEPCIONISTA AUXILIAR"`
	Modulo     string `json:"modulo" validate:"required"`
	Accion     string `json:"accion" validate:"required"`
	Habilitado bool   `json:"habilitado"`
}

// Codigo es la capacidad que controla este permiso ("citas:crear").
func (p Permiso) Codigo() string {
	return p.Modulo + ":" + p.Accion
}

type Servicio struct {
	ID              int64   `json:"id,omitempty"`
	Nombre          string  `json:"nombre" validate:"required,max=100"`
	Descripcion     string  `json:"descripcion,omitempty" validate:"max=500"`
	Precio          float64 `json:"precio" validate:"gte=0"`
	DuracionMinutos int     `json:"duracionMinutos" validate:"required,gt=0,max=480"`
	Activo          bool    `json:"activo"`
}

// HorarioAtencion es una franja de atención de un día. Un día puede tener varias (mañana y tarde).
// DiaSemana llega como LUNES..DOMINGO o MONDAY..SUNDAY según la versión del backend.
type HorarioAtencion struct {
	ID           int64  `json:"id,omitempty"`
	DiaSemana    string `json:"diaSemana" validate:"required"`
	HoraApertura string `json:"horaApertura" validate:"required"`
	HoraCierre   string `json:"horaCierre" validate:"required"`
	Activo       bool   `json:"activo"`
}

type RegistroAuditoria struct {
	ID        int64  `json:"id"`
	Fecha     string `json:"fecha"`
	Usuario   string `json:"usuario"`
	Accion    string `json:"accion"`
	Entidad   string `json:"entidad,omitempty"`
	EntidadID string `json:"entidadId,omitempty"`
	Detalle   string `json:"detalle,omitempty"`
	IP        string `json:"ip,omitempty"`
}

type FiltroAuditoria struct {
	Desde   *time.Time
	Hasta   *time.Time
	Usuario string
	Accion  string
}

type Backup struct {
	ID            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	FechaCreacion string `json:"fechaCreacion"`
	TamanoBytes   int64  `json:"tamanoBytes"`
	Estado        string `json:"estado,omitempty"`
}
