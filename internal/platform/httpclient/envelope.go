package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var (
	// ErrTransport envuelve fallas de red/transporte (no hubo respuesta HTTP utilizable).
	ErrTransport = errors.New("error de conexión con el servidor")
)

// Envelope es el formato uniforme de respuesta del backend.
type Envelope struct {
	Success *bool             `json:"success,omitempty"`
	Message string            `json:"message,omitempty"`
	Data    json.RawMessage   `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// APIError es un error reportado por el servidor (status no-2xx o success=false).
type APIError struct {
	StatusCode int
	Message    string
	Errores    map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status=%d: %s", e.StatusCode, e.Message)
}

// IsNotFound indica si el servidor respondió 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// IsConflict indica si el servidor respondió 409.
func IsConflict(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusConflict
}

// Call hace un request JSON y desenvuelve el envelope en out.
// Si la respuesta no es un envelope, se decodifica tal cual (algunos endpoints viejos devuelven el DTO directo).
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, in, out any) error {
	resp, raw, err := c.do(ctx, method, path, query, nil, in, "application/json")
	if err != nil {
		return err
	}

	env, isEnvelope := parseEnvelope(raw)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if isEnvelope || env.Message != "" {
			apiErr.Message = env.Message
			apiErr.Errores = env.Errors
		} else {
			apiErr.Message = plainMessage(raw)
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if isEnvelope && env.Success != nil && !*env.Success {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errores:    env.Errors,
		}
	}

	if out == nil {
		return nil
	}

	payload := raw
	if isEnvelope {
		payload = env.Data
	}
	if len(bytes.TrimSpace(payload)) == 0 || bytes.Equal(bytes.TrimSpace(payload), []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("httpclient: unmarshal data: %w", err)
	}
	return nil
}

// parseEnvelope detecta el envelope por presencia de "success" o "data" en un objeto JSON.
// Un objeto con solo "message" no cuenta como envelope, pero su mensaje se devuelve igual
// para armar el APIError.
func parseEnvelope(raw []byte) (Envelope, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Envelope{}, false
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &keys); err != nil {
		return Envelope{}, false
	}
	_, hasSuccess := keys["success"]
	_, hasData := keys["data"]
	if !hasSuccess && !hasData {
		// Puede ser un error estilo {"message": "..."} sin envelope completo.
		if m, ok := keys["message"]; ok {
			var msg string
			_ = json.Unmarshal(m, &msg)
			return Envelope{Message: msg}, false
		}
		return Envelope{}, false
	}

	var env Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		// errors puede venir como lista; lo ignoramos y rescatamos lo demás.
		env = Envelope{}
		if v, ok := keys["success"]; ok {
			var b bool
			if json.Unmarshal(v, &b) == nil {
				env.Success = &b
			}
		}
		if v, ok := keys["message"]; ok {
			_ = json.Unmarshal(v, &env.Message)
		}
		env.Data = keys["data"]
	}
	return env, true
}

func plainMessage(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	if len(s) > 300 {
		s = s[:300]
	}
	return s
}
