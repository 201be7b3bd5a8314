package reportes

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type Repository interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	ExportPDF(ctx context.Context, e Exportacion) (httpclient.Blob, error)
}
