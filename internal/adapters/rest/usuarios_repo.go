package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/usuarios"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type UsuariosRepo struct {
	api *httpclient.Client
}

func NewUsuariosRepo(api *httpclient.Client) *UsuariosRepo {
	return &UsuariosRepo{api: api}
}

func (r *UsuariosRepo) List(ctx context.Context) ([]usuarios.Usuario, error) {
	var out []usuarios.Usuario
	if err := r.api.Call(ctx, http.MethodGet, "/usuarios", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UsuariosRepo) Create(ctx context.Context, in usuarios.CrearInput) (usuarios.Usuario, error) {
	var out usuarios.Usuario
	err := r.api.Call(ctx, http.MethodPost, "/usuarios", nil, in, &out)
	return out, err
}

func (r *UsuariosRepo) Update(ctx context.Context, id int64, in usuarios.ActualizarInput) (usuarios.Usuario, error) {
	var out usuarios.Usuario
	err := r.api.Call(ctx, http.MethodPut, "/usuarios/"+itoa(id), nil, in, &out)
	return out, err
}

// SetActivo usa los endpoints separados activar/desactivar del backend.
func (r *UsuariosRepo) SetActivo(ctx context.Context, id int64, activo bool) (usuarios.Usuario, error) {
	accion := "desactivar"
	if activo {
		accion = "activar"
	}
	var out usuarios.Usuario
	err := r.api.Call(ctx, http.MethodPut, "/usuarios/"+itoa(id)+"/"+accion, nil, nil, &out)
	return out, err
}
