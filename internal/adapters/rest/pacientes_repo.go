package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/pacientes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type PacientesRepo struct {
	api *httpclient.Client
}

func NewPacientesRepo(api *httpclient.Client) *PacientesRepo {
	return &PacientesRepo{api: api}
}

func (r *PacientesRepo) List(ctx context.Context, q string) ([]pacientes.Paciente, error) {
	var out []pacientes.Paciente
	if err := r.api.Call(ctx, http.MethodGet, "/pacientes", params{}.set("q", q).values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PacientesRepo) ListByCliente(ctx context.Context, clienteID int64) ([]pacientes.Paciente, error) {
	var out []pacientes.Paciente
	if err := r.api.Call(ctx, http.MethodGet, "/pacientes/cliente/"+itoa(clienteID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PacientesRepo) GetByID(ctx context.Context, id int64) (pacientes.Paciente, error) {
	var out pacientes.Paciente
	err := r.api.Call(ctx, http.MethodGet, "/pacientes/"+itoa(id), nil, nil, &out)
	return out, err
}

func (r *PacientesRepo) Create(ctx context.Context, in pacientes.Input) (pacientes.Paciente, error) {
	var out pacientes.Paciente
	err := r.api.Call(ctx, http.MethodPost, "/pacientes", nil, in, &out)
	return out, err
}

func (r *PacientesRepo) Update(ctx context.Context, id int64, in pacientes.Input) (pacientes.Paciente, error) {
	var out pacientes.Paciente
	err := r.api.Call(ctx, http.MethodPut, "/pacientes/"+itoa(id), nil, in, &out)
	return out, err
}
