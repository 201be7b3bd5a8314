package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/notificaciones"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type NotificacionesRepo struct {
	api *httpclient.Client
}

func NewNotificacionesRepo(api *httpclient.Client) *NotificacionesRepo {
	return &NotificacionesRepo{api: api}
}

func (r *NotificacionesRepo) List(ctx context.Context) ([]notificaciones.Notificacion, error) {
	var out []notificaciones.Notificacion
	if err := r.api.Call(ctx, http.MethodGet, "/notificaciones", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *NotificacionesRepo) MarcarLeida(ctx context.Context, id int64) error {
	return r.api.Call(ctx, http.MethodPut, "/notificaciones/"+itoa(id)+"/leida", nil, nil, nil)
}

func (r *NotificacionesRepo) MarcarTodas(ctx context.Context) error {
	return r.api.Call(ctx, http.MethodPut, "/notificaciones/leidas", nil, nil, nil)
}
