package respond

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

// Archivo reenvía una descarga del backend (PDF, backup) tal cual.
func Archivo(w http.ResponseWriter, b httpclient.Blob) {
	ct := b.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Length", strconv.Itoa(len(b.Datos)))
	if b.Nombre != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": b.Nombre}))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b.Datos)
}
