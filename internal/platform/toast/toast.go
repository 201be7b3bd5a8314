// Package toast arma las notificaciones transitorias que ve el usuario después de una mutación.
package toast

import (
	"errors"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"

	"github.com/google/uuid"
)

type Tipo string

const (
	TipoExito       Tipo = "success"
	TipoError       Tipo = "error"
	TipoAdvertencia Tipo = "warning"
	TipoInfo        Tipo = "info"
)

type Toast struct {
	ID      string `json:"id"`
	Tipo    Tipo   `json:"tipo"`
	Mensaje string `json:"mensaje"`
}

// Advertencia la implementan los errores de reglas de negocio calculadas en el cliente.
// Se muestran como warning, no como error.
type Advertencia interface {
	error
	Advertencia() bool
}

func nuevo(tipo Tipo, msg string) Toast {
	return Toast{ID: uuid.NewString(), Tipo: tipo, Mensaje: msg}
}

func Exito(msg string) Toast { return nuevo(TipoExito, msg) }
func Error(msg string) Toast { return nuevo(TipoError, msg) }
func Info(msg string) Toast  { return nuevo(TipoInfo, msg) }

// FromError traduce la taxonomía de errores a un toast. nil => sin toast (ok=false).
func FromError(err error) (Toast, bool) {
	if err == nil {
		return Toast{}, false
	}

	var adv Advertencia
	if errors.As(err, &adv) && adv.Advertencia() {
		return nuevo(TipoAdvertencia, adv.Error()), true
	}

	var verrs *validate.Errores
	if errors.As(err, &verrs) {
		return nuevo(TipoError, "Revisa los campos marcados del formulario"), true
	}

	if errors.Is(err, httpclient.ErrTransport) {
		return nuevo(TipoError, "No se pudo conectar con el servidor. Intenta de nuevo más tarde"), true
	}

	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.StatusCode) {
			return nuevo(TipoError, apiErr.Message), true
		}
		return nuevo(TipoError, mensajePorStatus(apiErr.StatusCode)), true
	}

	return nuevo(TipoError, err.Error()), true
}

func mensajePorStatus(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "Tu sesión expiró. Inicia sesión de nuevo"
	case http.StatusForbidden:
		return "No tienes permisos para esta acción"
	case http.StatusNotFound:
		return "El recurso no existe"
	case http.StatusConflict:
		return "El recurso fue modificado por otro usuario"
	default:
		if status >= 500 {
			return "Error interno del servidor"
		}
		return "La solicitud no pudo completarse"
	}
}
