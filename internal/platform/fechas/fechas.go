// Package fechas convierte las fechas "locales" del backend (sin zona) a time.Time en la zona de la clínica.
package fechas

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	LayoutFecha     = "2006-01-02"
	LayoutFechaHora = "2006-01-02T15:04:05"
	LayoutHora      = "15:04"
)

var ErrFormato = errors.New("formato de fecha inválido")

var layoutsFechaHora = []string{
	LayoutFechaHora,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// ParseFechaHora acepta LocalDateTime (con o sin segundos) y RFC3339.
// Sin zona explícita se interpreta en loc.
func ParseFechaHora(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrFormato
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range layoutsFechaHora {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrFormato, s)
}

// ParseFecha acepta "2006-01-02" o una fecha-hora (se trunca al día).
func ParseFecha(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.ParseInLocation(LayoutFecha, s, loc); err == nil {
		return t, nil
	}
	t, err := ParseFechaHora(s, loc)
	if err != nil {
		return time.Time{}, err
	}
	return InicioDelDia(t), nil
}

func FormatFechaHora(t time.Time) string { return t.Format(LayoutFechaHora) }
func FormatFecha(t time.Time) string     { return t.Format(LayoutFecha) }
func FormatHora(t time.Time) string      { return t.Format(LayoutHora) }

func InicioDelDia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// MinutosDelDia devuelve los minutos transcurridos desde las 00:00 locales.
func MinutosDelDia(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// ParseHora convierte "08:00" o "08:00:00" a minutos desde las 00:00.
func ParseHora(s string) (int, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{LayoutHora, "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: hora %q", ErrFormato, s)
}

// EnRango compara por día calendario: desde desde las 00:00 y hasta inclusive todo el día.
// Límites nil no restringen.
func EnRango(t time.Time, desde, hasta *time.Time) bool {
	if desde != nil && t.Before(InicioDelDia(desde.In(t.Location()))) {
		return false
	}
	if hasta != nil && !t.Before(InicioDelDia(hasta.In(t.Location())).AddDate(0, 0, 1)) {
		return false
	}
	return true
}
