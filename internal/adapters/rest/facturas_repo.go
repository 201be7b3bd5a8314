package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/facturas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type FacturasRepo struct {
	api *httpclient.Client
}

func NewFacturasRepo(api *httpclient.Client) *FacturasRepo {
	return &FacturasRepo{api: api}
}

func (r *FacturasRepo) List(ctx context.Context, estado facturas.Estado, clienteID int64) ([]facturas.Factura, error) {
	q := params{}.set("estado", string(estado)).setID("clienteId", clienteID)

	var out []facturas.Factura
	if err := r.api.Call(ctx, http.MethodGet, "/facturas", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *FacturasRepo) GetByID(ctx context.Context, id int64) (facturas.Factura, error) {
	var out facturas.Factura
	err := r.api.Call(ctx, http.MethodGet, "/facturas/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *FacturasRepo) Create(ctx context.Context, in facturas.CrearInput) (facturas.Factura, error) {
	var out facturas.Factura
	err := r.api.Call(ctx, http.MethodPost, "/facturas", nil, in, &out)
	return out, err
}

func (r *FacturasRepo) Pagar(ctx context.Context, id int64, metodo facturas.MetodoPago) (facturas.Factura, error) {
	var out facturas.Factura
	err := r.api.Call(ctx, http.MethodPut, "/facturas/"+itoa(id)+"/pagar", nil,
		map[string]string{"metodoPago": string(metodo)}, &out)
	return out, err
}

func (r *FacturasRepo) Anular(ctx context.Context, id int64, motivo string) (facturas.Factura, error) {
	var out facturas.Factura
	err := r.api.Call(ctx, http.MethodPut, "/facturas/"+itoa(id)+"/anular", nil,
		map[string]string{"motivo": motivo}, &out)
	return out, err
}

func (r *FacturasRepo) DownloadPDF(ctx context.Context, id int64) (httpclient.Blob, error) {
	return r.api.Download(ctx, "/facturas/"+itoa(id)+"/pdf", nil, "factura-"+itoa(id)+".pdf")
}
