package query

import "strings"

// Key identifica una consulta cacheada: recurso primero y luego parámetros ({"horarios", "7", "2024-06-10"}).
type Key []string

func (k Key) String() string {
	return strings.Join(k, ":")
}

// Resource es el primer segmento; se usa como label de métricas.
func (k Key) Resource() string {
	if len(k) == 0 {
		return ""
	}
	return k[0]
}

// matchesPrefix indica si la key serializada s cae bajo prefix (por segmentos completos).
func matchesPrefix(s, prefix string) bool {
	if prefix == "" {
		return true
	}
	return s == prefix || strings.HasPrefix(s, prefix+":")
}
