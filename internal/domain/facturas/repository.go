package facturas

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type Repository interface {
	List(ctx context.Context, estado Estado, clienteID int64) ([]Factura, error)
	GetByID(ctx context.Context, id int64) (Factura, error)
	Create(ctx context.Context, in CrearInput) (Factura, error)
	Pagar(ctx context.Context, id int64, metodo MetodoPago) (Factura, error)
	Anular(ctx context.Context, id int64, motivo string) (Factura, error)
	DownloadPDF(ctx context.Context, id int64) (httpclient.Blob, error)
}
