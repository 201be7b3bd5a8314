package facturas

import (
	"encoding/json"
	"time"
)

// Estado de la factura.
// @Enum PENDIENTE, PAGADA, ANULADA
type Estado string

const (
	EstadoPendiente Estado = "PENDIENTE"
	EstadoPagada    Estado = "PAGADA"
	EstadoAnulada   Estado = "ANULADA"
)

// MetodoPago aceptado por caja.
// @Enum EFECTIVO, TARJETA, TRANSFERENCIA
type MetodoPago string

const (
	PagoEfectivo      MetodoPago = "EFECTIVO"
	PagoTarjeta       MetodoPago = "TARJETA"
	PagoTransferencia MetodoPago = "TRANSFERENCIA"
)

type Factura struct {
	ID            int64      `json:"id"`
	Numero        string     `json:"numero"`
	FechaEmision  string     `json:"fechaEmision"`
	Total         float64    `json:"total"`
	MetodoPago    MetodoPago `json:"metodoPago,omitempty"`
	Estado        Estado     `json:"estado"`
	ClienteID     int64      `json:"clienteId"`
	ClienteNombre string     `json:"clienteNombre,omitempty"`

	// Contenido es el detalle libre que arma el backend (ítems, impuestos); se reenvía sin interpretar.
	Contenido json.RawMessage `json:"contenido,omitempty" swaggertype:"object"`
}

type Item struct {
	Descripcion    string  `json:"descripcion" validate:"required,max=200"`
	Cantidad       int     `json:"cantidad" validate:"required,gt=0"`
	PrecioUnitario float64 `json:"precioUnitario" validate:"gte=0"`
}

type CrearInput struct {
	ClienteID     int64   `json:"clienteId" validate:"required,gt=0"`
	CitaID        int64   `json:"citaId,omitempty" validate:"gte=0"`
	Items         []Item  `json:"items" validate:"required,min=1,dive"`
	Observaciones string  `json:"observaciones,omitempty" validate:"max=500"`
	Total         float64 `json:"total"`
}

// Filtro de listado. Estado y cliente los filtra el servidor; el rango de fechas se aplica acá.
type Filtro struct {
	Estado    Estado
	ClienteID int64
	Desde     *time.Time
	Hasta     *time.Time
}
