package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/clientes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type ClientesRepo struct {
	api *httpclient.Client
}

func NewClientesRepo(api *httpclient.Client) *ClientesRepo {
	return &ClientesRepo{api: api}
}

func (r *ClientesRepo) List(ctx context.Context, q string) ([]clientes.Cliente, error) {
	var out []clientes.Cliente
	if err := r.api.Call(ctx, http.MethodGet, "/clientes", params{}.set("q", q).values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ClientesRepo) GetByID(ctx context.Context, id int64) (clientes.Cliente, error) {
	var out clientes.Cliente
	err := r.api.Call(ctx, http.MethodGet, "/clientes/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *ClientesRepo) Create(ctx context.Context, in clientes.Input) (clientes.Cliente, error) {
	var out clientes.Cliente
	err := r.api.Call(ctx, http.MethodPost, "/clientes", nil, in, &out)
	return out, err
}

func (r *ClientesRepo) Update(ctx context.Context, id int64, in clientes.Input) (clientes.Cliente, error) {
	var out clientes.Cliente
	err := r.api.Call(ctx, http.MethodPut, "/clientes/"+itoa(id), nil, in, &out)
	return out, err
}

func (r *ClientesRepo) Delete(ctx context.Context, id int64) error {
	return r.api.Call(ctx, http.MethodDelete, "/clientes/"+itoa(id), nil, nil, nil)
}
