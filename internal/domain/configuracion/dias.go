package configuracion

import (
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/texto"
)

var dias = map[string]time.Weekday{
	"LUNES": time.Monday, "MARTES": time.Tuesday, "MIERCOLES": time.Wednesday,
	"JUEVES": time.Thursday, "VIERNES": time.Friday, "SABADO": time.Saturday, "DOMINGO": time.Sunday,

	"MONDAY": time.Monday, "TUESDAY": time.Tuesday, "WEDNESDAY": time.Wednesday,
	"THURSDAY": time.Thursday, "FRIDAY": time.Friday, "SATURDAY": time.Saturday, "SUNDAY": time.Sunday,
}

var nombresDia = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

// ParseDiaSemana acepta el día en español (con o sin tilde) o en inglés.
func ParseDiaSemana(s string) (time.Weekday, bool) {
	d, ok := dias[strings.ToUpper(texto.Plegar(s))]
	return d, ok
}

// NombreDia devuelve el nombre en español ("sábado").
func NombreDia(d time.Weekday) string {
	return nombresDia[d]
}
