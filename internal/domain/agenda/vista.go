package agenda

import (
	"sort"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/citas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
)

const GrupoFueraHorario = "fuera de horario"

type Slot struct {
	FechaHora     string              `json:"fechaHora"`
	Hora          string              `json:"hora"`
	Estado        citas.EstadoHorario `json:"estado"`
	Etiqueta      string              `json:"etiqueta"`
	Seleccionable bool                `json:"seleccionable"`
	Motivo        string              `json:"motivo,omitempty"`

	t time.Time
}

type Grupo struct {
	Nombre string `json:"nombre"`
	Desde  string `json:"desde,omitempty"`
	Hasta  string `json:"hasta,omitempty"`
	Slots  []Slot `json:"slots"`
}

// EstadoVista es el estado de render del widget.
type EstadoVista string

const (
	VistaSinVeterinario EstadoVista = "SIN_VETERINARIO"
	VistaLista          EstadoVista = "LISTA"
	VistaError          EstadoVista = "ERROR"
)

type Vista struct {
	VeterinarioID  int64       `json:"veterinarioId"`
	Fecha          string      `json:"fecha"`
	Estado         EstadoVista `json:"estado"`
	Cerrado        bool        `json:"cerrado"`
	Grupos         []Grupo     `json:"grupos"`
	Error          string      `json:"error,omitempty"`
	FuentePolitica string      `json:"fuentePolitica,omitempty"`
}

// Slots devuelve todos los slots de la vista en orden de grupo.
func (v Vista) Slots() []Slot {
	var out []Slot
	for _, g := range v.Grupos {
		out = append(out, g.Slots...)
	}
	return out
}

// Buscar localiza un slot por su fechaHora normalizada.
func (v Vista) Buscar(fechaHora string) (Slot, bool) {
	for _, s := range v.Slots() {
		if s.FechaHora == fechaHora {
			return s, true
		}
	}
	return Slot{}, false
}

// estadoDe: el estado del servidor manda; sin estado se usa el flag disponible.
func estadoDe(h citas.Horario) citas.EstadoHorario {
	if e := strings.ToUpper(strings.TrimSpace(string(h.Estado))); e != "" {
		return citas.EstadoHorario(e)
	}
	if h.Disponible {
		return citas.HorarioDisponible
	}
	return citas.HorarioOcupado
}

func etiqueta(e citas.EstadoHorario) string {
	switch e {
	case citas.HorarioDisponible:
		return "Disponible"
	case citas.HorarioOcupado:
		return "Ocupado"
	case citas.HorarioFueraHorario:
		return "Fuera de horario"
	case citas.HorarioBloqueado:
		return "Bloqueado"
	default:
		return "No disponible"
	}
}

// Particionar reparte los slots del servidor en las franjas del día según la política.
// Solo agrupa y etiqueta: la disponibilidad la decide el servidor.
// Los slots de otra fecha se descartan.
func Particionar(p Politica, fecha time.Time, horarios []citas.Horario) []Grupo {
	ventanas := p.Ventanas(fecha.Weekday())
	grupos := make([]Grupo, 0, len(ventanas)+1)
	for _, v := range ventanas {
		grupos = append(grupos, Grupo{Nombre: v.Nombre, Desde: hhmm(v.Desde), Hasta: hhmm(v.Hasta), Slots: []Slot{}})
	}
	fuera := Grupo{Nombre: GrupoFueraHorario, Slots: []Slot{}}

	dia := fechas.FormatFecha(fecha)
	for _, h := range horarios {
		t, err := fechas.ParseFechaHora(h.FechaHora, fecha.Location())
		if err != nil || fechas.FormatFecha(t) != dia {
			continue
		}

		estado := estadoDe(h)
		s := Slot{
			FechaHora:     fechas.FormatFechaHora(t),
			Hora:          fechas.FormatHora(t),
			Estado:        estado,
			Etiqueta:      etiqueta(estado),
			Seleccionable: estado == citas.HorarioDisponible,
			Motivo:        h.Motivo,
			t:             t,
		}

		m := fechas.MinutosDelDia(t)
		placed := false
		for i, v := range ventanas {
			if v.Contiene(m) {
				grupos[i].Slots = append(grupos[i].Slots, s)
				placed = true
				break
			}
		}
		if !placed {
			fuera.Slots = append(fuera.Slots, s)
		}
	}

	if len(fuera.Slots) > 0 {
		grupos = append(grupos, fuera)
	}
	for i := range grupos {
		ss := grupos[i].Slots
		sort.SliceStable(ss, func(a, b int) bool { return ss[a].t.Before(ss[b].t) })
	}
	return grupos
}
