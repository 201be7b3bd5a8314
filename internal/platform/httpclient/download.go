package httpclient

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Blob es una descarga binaria (PDF de factura, historia, reporte o backup).
type Blob struct {
	Nombre      string
	ContentType string
	Datos       []byte
}

// Download pide un recurso binario. fallbackName se usa si el servidor no manda Content-Disposition.
func (c *Client) Download(ctx context.Context, path string, query url.Values, fallbackName string) (Blob, error) {
	resp, raw, err := c.do(ctx, http.MethodGet, path, query, nil, nil, "application/pdf, application/octet-stream, */*")
	if err != nil {
		return Blob{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Los errores de endpoints binarios igual vienen en JSON.
		if env, ok := parseEnvelope(raw); ok || env.Message != "" {
			apiErr.Message = env.Message
			apiErr.Errores = env.Errors
		}
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return Blob{}, apiErr
	}
	if len(raw) == 0 {
		return Blob{}, &APIError{StatusCode: resp.StatusCode, Message: "el archivo descargado está vacío"}
	}

	name := fileNameFromDisposition(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = fallbackName
	}

	return Blob{
		Nombre:      name,
		ContentType: resp.Header.Get("Content-Type"),
		Datos:       raw,
	}, nil
}

// Guardar escribe el blob en dir y devuelve la ruta final.
// Solo se usa el nombre base para que el servidor no pueda escribir fuera de dir.
func (b Blob) Guardar(dir string) (string, error) {
	name := filepath.Base(strings.TrimSpace(b.Nombre))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "", errors.New("httpclient: blob sin nombre")
	}
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("httpclient: crear directorio: %w", err)
	}
	dst := filepath.Join(dir, name)
	if err := os.WriteFile(dst, b.Datos, 0o644); err != nil {
		return "", fmt.Errorf("httpclient: guardar archivo: %w", err)
	}
	return dst, nil
}

func fileNameFromDisposition(h string) string {
	if strings.TrimSpace(h) == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(h)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(params["filename"])
}
