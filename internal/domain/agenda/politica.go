package agenda

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
)

var ErrPoliticaVacia = errors.New("el servidor no tiene horarios de atención configurados")

const (
	FuenteServidor   = "servidor"
	FuentePorDefecto = "por_defecto"
)

// Ventana es una franja [Desde, Hasta) en minutos desde las 00:00.
type Ventana struct {
	Nombre string `json:"nombre"`
	Desde  int    `json:"-"`
	Hasta  int    `json:"-"`
}

func (v Ventana) Contiene(minuto int) bool {
	return minuto >= v.Desde && minuto < v.Hasta
}

func (v Ventana) String() string {
	return hhmm(v.Desde) + " a " + hhmm(v.Hasta)
}

func hhmm(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Politica de atención por día de la semana. Un día sin ventanas está cerrado.
type Politica struct {
	Dias   map[time.Weekday][]Ventana
	Fuente string
}

// PoliticaPorDefecto: lunes a viernes de 08:00 a 12:00 y de 14:00 a 18:00, sábado de 08:00 a 12:00, domingo cerrado.
// Solo se usa cuando el servidor no entrega horarios.
func PoliticaPorDefecto() Politica {
	manana := Ventana{Nombre: "mañana", Desde: 8 * 60, Hasta: 12 * 60}
	tarde := Ventana{Nombre: "tarde", Desde: 14 * 60, Hasta: 18 * 60}

	p := Politica{Dias: map[time.Weekday][]Ventana{}, Fuente: FuentePorDefecto}
	for d := time.Monday; d <= time.Friday; d++ {
		p.Dias[d] = []Ventana{manana, tarde}
	}
	p.Dias[time.Saturday] = []Ventana{manana}
	return p
}

// PoliticaDesdeHorarios arma la política con las franjas activas del servidor.
// Filas con día u horas inválidas se ignoran; si no queda ninguna, ErrPoliticaVacia.
func PoliticaDesdeHorarios(items []configuracion.HorarioAtencion) (Politica, error) {
	p := Politica{Dias: map[time.Weekday][]Ventana{}, Fuente: FuenteServidor}
	total := 0
	for _, h := range items {
		if !h.Activo {
			continue
		}
		dia, ok := configuracion.ParseDiaSemana(h.DiaSemana)
		if !ok {
			continue
		}
		desde, err1 := fechas.ParseHora(h.HoraApertura)
		hasta, err2 := fechas.ParseHora(h.HoraCierre)
		if err1 != nil || err2 != nil || desde >= hasta {
			continue
		}
		p.Dias[dia] = append(p.Dias[dia], Ventana{Nombre: nombreVentana(desde), Desde: desde, Hasta: hasta})
		total++
	}
	if total == 0 {
		return Politica{}, ErrPoliticaVacia
	}
	for d, vs := range p.Dias {
		sort.Slice(vs, func(i, j int) bool { return vs[i].Desde < vs[j].Desde })
		p.Dias[d] = vs
	}
	return p, nil
}

func nombreVentana(desde int) string {
	switch {
	case desde < 12*60:
		return "mañana"
	case desde < 18*60:
		return "tarde"
	default:
		return "noche"
	}
}

func (p Politica) Ventanas(d time.Weekday) []Ventana {
	return p.Dias[d]
}

func (p Politica) Cerrado(d time.Weekday) bool {
	return len(p.Dias[d]) == 0
}

// VentanaDe devuelve la franja que contiene t (t ya en la zona de la clínica).
func (p Politica) VentanaDe(t time.Time) (Ventana, bool) {
	m := fechas.MinutosDelDia(t)
	for _, v := range p.Dias[t.Weekday()] {
		if v.Contiene(m) {
			return v, true
		}
	}
	return Ventana{}, false
}

// Describir arma "08:00 a 12:00 y 14:00 a 18:00" para los mensajes.
func (p Politica) Describir(d time.Weekday) string {
	vs := p.Dias[d]
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, v.String())
	}
	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], ", ") + " y " + parts[len(parts)-1]
	}
}
