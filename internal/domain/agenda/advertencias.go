package agenda

import (
	"fmt"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
)

const (
	CodigoDiaCerrado   = "DIA_CERRADO"
	CodigoFueraHorario = "FUERA_DE_HORARIO"
	CodigoAnticipacion = "ANTICIPACION_MINIMA"
)

type Advertencia struct {
	Codigo  string `json:"codigo"`
	Mensaje string `json:"mensaje"`
}

// Advertencias son reglas de negocio calculadas en el cliente. Deshabilitan el envío
// pero no son errores del servidor: el backend vuelve a validar todo.
type Advertencias []Advertencia

func (a Advertencias) Error() string {
	msgs := make([]string, 0, len(a))
	for _, adv := range a {
		msgs = append(msgs, adv.Mensaje)
	}
	return strings.Join(msgs, ". ")
}

func (a Advertencias) Advertencia() bool { return true }

func (a Advertencias) Tiene(codigo string) bool {
	for _, adv := range a {
		if adv.Codigo == codigo {
			return true
		}
	}
	return false
}

// Validar es la pre-validación de fechaHora contra la política y la anticipación mínima.
// La anticipación se evalúa siempre, sin importar el día.
func Validar(p Politica, t, now time.Time, anticipacion time.Duration) Advertencias {
	var out Advertencias

	dia := t.Weekday()
	switch {
	case p.Cerrado(dia):
		out = append(out, Advertencia{
			Codigo:  CodigoDiaCerrado,
			Mensaje: fmt.Sprintf("La clínica no atiende los %s", plural(configuracion.NombreDia(dia))),
		})
	default:
		if _, ok := p.VentanaDe(t); !ok {
			out = append(out, Advertencia{
				Codigo:  CodigoFueraHorario,
				Mensaje: fmt.Sprintf("Fuera del horario de atención del %s (%s)", configuracion.NombreDia(dia), p.Describir(dia)),
			})
		}
	}

	if anticipacion > 0 && t.Sub(now) < anticipacion {
		out = append(out, Advertencia{
			Codigo:  CodigoAnticipacion,
			Mensaje: fmt.Sprintf("Las citas deben agendarse con al menos %s de anticipación", duracion(anticipacion)),
		})
	}
	return out
}

// plural: "sábado" => "sábados", "lunes" => "lunes".
func plural(dia string) string {
	if strings.HasSuffix(dia, "s") {
		return dia
	}
	return dia + "s"
}

func duracion(d time.Duration) string {
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	switch {
	case m == 0 && h == 1:
		return "1 hora"
	case m == 0:
		return fmt.Sprintf("%d horas", h)
	case h == 0:
		return fmt.Sprintf("%d minutos", m)
	default:
		return fmt.Sprintf("%d h %d min", h, m)
	}
}
