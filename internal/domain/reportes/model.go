package reportes

import "time"

type Tipo string

const (
	TipoCitas     Tipo = "citas"
	TipoFacturas  Tipo = "facturas"
	TipoPacientes Tipo = "pacientes"
	TipoIngresos  Tipo = "ingresos"
)

var tipos = map[Tipo]bool{TipoCitas: true, TipoFacturas: true, TipoPacientes: true, TipoIngresos: true}

func (t Tipo) Valido() bool { return tipos[t] }

// Dashboard es el resumen de la pantalla de inicio.
type Dashboard struct {
	CitasHoy           int     `json:"citasHoy"`
	CitasPendientes    int     `json:"citasPendientes"`
	SolicitudesNuevas  int     `json:"solicitudesNuevas"`
	TotalPacientes     int     `json:"totalPacientes"`
	TotalClientes      int     `json:"totalClientes"`
	FacturasPendientes int     `json:"facturasPendientes"`
	IngresosMes        float64 `json:"ingresosMes"`
}

type Exportacion struct {
	Tipo  Tipo
	Desde time.Time
	Hasta time.Time
}
