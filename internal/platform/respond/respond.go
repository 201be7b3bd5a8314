// Package respond concentra el writeJSON que antes se repetía en cada handler.
// Todas las vistas responden {"data": ..., "toast": ...} y los errores {"toast": ..., "errores": ...}.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/toast"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/session"
)

const maxRequestBody = 1 << 20

var ErrBadRequest = errors.New("solicitud inválida")

type Body struct {
	Data    any               `json:"data,omitempty"`
	Toast   *toast.Toast      `json:"toast,omitempty"`
	Errores map[string]string `json:"errores,omitempty"`
}

// JSON escribe v tal cual.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Data(w http.ResponseWriter, status int, data any) {
	JSON(w, status, Body{Data: data})
}

// Mutacion responde data + toast de éxito.
func Mutacion(w http.ResponseWriter, status int, data any, msg string) {
	t := toast.Exito(msg)
	JSON(w, status, Body{Data: data, Toast: &t})
}

// Error escribe el toast correspondiente a err. status 0 => se deduce de la taxonomía.
func Error(w http.ResponseWriter, status int, err error) {
	if status == 0 {
		status = Status(err)
	}
	body := Body{Errores: errores(err)}
	if t, ok := toast.FromError(err); ok {
		body.Toast = &t
	}
	JSON(w, status, body)
}

// Status mapea la taxonomía común de errores a un status HTTP.
func Status(err error) int {
	var adv toast.Advertencia
	var verrs *validate.Errores
	var apiErr *httpclient.APIError

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrSinPermiso):
		return http.StatusForbidden
	case errors.Is(err, session.ErrNoAutenticado), errors.Is(err, session.ErrSesionExpirada):
		return http.StatusUnauthorized
	case errors.As(err, &adv), errors.As(err, &verrs):
		return http.StatusUnprocessableEntity
	case errors.Is(err, httpclient.ErrTransport):
		return http.StatusBadGateway
	case errors.As(err, &apiErr):
		if apiErr.StatusCode >= 400 {
			return apiErr.StatusCode
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errores(err error) map[string]string {
	var verrs *validate.Errores
	if errors.As(err, &verrs) {
		return verrs.Campos
	}
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && len(apiErr.Errores) > 0 {
		return apiErr.Errores
	}
	return nil
}

// Decode lee el body JSON del request en v.
func Decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: json inválido: %v", ErrBadRequest, err)
	}
	return nil
}
