package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/proveedores"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type ProveedoresRepo struct {
	api *httpclient.Client
}

func NewProveedoresRepo(api *httpclient.Client) *ProveedoresRepo {
	return &ProveedoresRepo{api: api}
}

func (r *ProveedoresRepo) List(ctx context.Context) ([]proveedores.Proveedor, error) {
	var out []proveedores.Proveedor
	if err := r.api.Call(ctx, http.MethodGet, "/proveedores", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ProveedoresRepo) GetByID(ctx context.Context, id int64) (proveedores.Proveedor, error) {
	var out proveedores.Proveedor
	err := r.api.Call(ctx, http.MethodGet, "/proveedores/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *ProveedoresRepo) Create(ctx context.Context, in proveedores.Input) (proveedores.Proveedor, error) {
	var out proveedores.Proveedor
	err := r.api.Call(ctx, http.MethodPost, "/proveedores", nil, in, &out)
	return out, err
}

func (r *ProveedoresRepo) Update(ctx context.Context, id int64, in proveedores.Input) (proveedores.Proveedor, error) {
	var out proveedores.Proveedor
	err := r.api.Call(ctx, http.MethodPut, "/proveedores/"+itoa(id), nil, in, &out)
	return out, err
}

func (r *ProveedoresRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Call(ctx, http.MethodDelete, "/proveedores/"+itoa(id), nil, nil, nil)
}
