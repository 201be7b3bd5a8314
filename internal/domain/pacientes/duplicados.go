package pacientes

import (
	"sort"
	"unicode/utf8"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/texto"

	"github.com/agnivade/levenshtein"
)

const (
	DefaultUmbralProbable = 0.7
	UmbralPosible         = 0.5
)

// Similitud compara dos nombres sin tildes ni mayúsculas: 1 - distancia/longitud mayor.
func Similitud(a, b string) float64 {
	a, b = texto.Plegar(a), texto.Plegar(b)
	if a == "" && b == "" {
		return 0
	}
	n := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(n)
}

// Duplicados es una ayuda de UX: marca candidatos, nunca bloquea el alta.
func Duplicados(nombre string, candidatos []Paciente, umbral float64, excluirID int64) []Coincidencia {
	if umbral <= 0 || umbral > 1 {
		umbral = DefaultUmbralProbable
	}
	posible := min(UmbralPosible, umbral)

	out := []Coincidencia{}
	for _, p := range candidatos {
		if excluirID != 0 && p.ID == excluirID {
			continue
		}
		s := Similitud(nombre, p.Nombre)
		switch {
		case s >= umbral:
			out = append(out, Coincidencia{Paciente: p, Similitud: s, Nivel: NivelProbable})
		case s >= posible:
			out = append(out, Coincidencia{Paciente: p, Similitud: s, Nivel: NivelPosible})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similitud > out[j].Similitud })
	return out
}
