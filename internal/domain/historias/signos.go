package historias

import (
	"strconv"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
)

type rango struct{ min, max float64 }

// Signos numéricos conocidos y su rango aceptable. El resto de claves se guarda como texto libre.
var signosNumericos = map[string]rango{
	"temperatura":            {30, 45},
	"frecuenciaCardiaca":     {1, 400},
	"frecuenciaRespiratoria": {1, 200},
	"peso":                   {0.01, 1000},
}

// normalizarSignos quita claves y valores vacíos y valida los signos numéricos conocidos.
func normalizarSignos(in map[string]string, errs *validate.Errores) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k == "" || v == "" {
			continue
		}
		if r, ok := signosNumericos[k]; ok {
			n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", "."), 64)
			if err != nil || n < r.min || n > r.max {
				errs.Add("signosVitales."+k, "valor fuera de rango")
				continue
			}
			v = strconv.FormatFloat(n, 'f', -1, 64)
		}
		out[k] = v
	}
	return out
}
