package notificaciones

import "time"

type Tipo string

const (
	TipoCita       Tipo = "CITA"
	TipoSolicitud  Tipo = "SOLICITUD"
	TipoFactura    Tipo = "FACTURA"
	TipoInventario Tipo = "INVENTARIO"
	TipoSistema    Tipo = "SISTEMA"
)

type Notificacion struct {
	ID            int64     `json:"id"`
	Titulo        string    `json:"titulo"`
	Mensaje       string    `json:"mensaje"`
	Tipo          Tipo      `json:"tipo"`
	Leida         bool      `json:"leida"`
	FechaCreacion time.Time `json:"fechaCreacion"`
	Enlace        string    `json:"enlace,omitempty"`
}

// Resumen alimenta el badge del encabezado.
type Resumen struct {
	NoLeidas  int            `json:"noLeidas"`
	Recientes []Notificacion `json:"recientes"`
}
