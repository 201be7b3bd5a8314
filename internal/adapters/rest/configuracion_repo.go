package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/configuracion"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

const configuracionPath = "/v1/configuracion"

type ConfiguracionRepo struct {
	api *httpclient.Client
}

func NewConfiguracionRepo(api *httpclient.Client) *ConfiguracionRepo {
	return &ConfiguracionRepo{api: api}
}

func (r *ConfiguracionRepo) GetClinica(ctx context.Context) (configuracion.Clinica, error) {
	var out configuracion.Clinica
	err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/clinica", nil, nil, &out)
	return out, err
}

func (r *ConfiguracionRepo) UpdateClinica(ctx context.Context, c configuracion.Clinica) (configuracion.Clinica, error) {
	var out configuracion.Clinica
	err := r.api.Call(ctx, http.MethodPut, configuracionPath+"/clinica", nil, c, &out)
	return out, err
}

func (r *ConfiguracionRepo) ListPermisos(ctx context.Context) ([]configuracion.Permiso, error) {
	var out []configuracion.Permiso
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/permisos", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) ListPermisosPorRol(ctx context.Context, rol string) ([]configuracion.Permiso, error) {
	var out []configuracion.Permiso
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/permisos/rol/"+strings.ToUpper(rol), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) UpdatePermisos(ctx context.Context, items []configuracion.Permiso) ([]configuracion.Permiso, error) {
	var out []configuracion.Permiso
	if err := r.api.Call(ctx, http.MethodPut, configuracionPath+"/permisos", nil, items, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) ListServicios(ctx context.Context) ([]configuracion.Servicio, error) {
	var out []configuracion.Servicio
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/servicios", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) CreateServicio(ctx context.Context, s configuracion.Servicio) (configuracion.Servicio, error) {
	var out configuracion.Servicio
	err := r.api.Call(ctx, http.MethodPost, configuracionPath+"/servicios", nil, s, &out)
	return out, err
}

func (r *ConfiguracionRepo) UpdateServicio(ctx context.Context, id int64, s configuracion.Servicio) (configuracion.Servicio, error) {
	var out configuracion.Servicio
	err := r.api.Call(ctx, http.MethodPut, configuracionPath+"/servicios/"+itoa(id), nil, s, &out)
	return out, err
}

func (r *ConfiguracionRepo) ListHorarios(ctx context.Context) ([]configuracion.HorarioAtencion, error) {
	var out []configuracion.HorarioAtencion
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/horarios", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) UpdateHorarios(ctx context.Context, items []configuracion.HorarioAtencion) ([]configuracion.HorarioAtencion, error) {
	var out []configuracion.HorarioAtencion
	if err := r.api.Call(ctx, http.MethodPut, configuracionPath+"/horarios", nil, items, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) ListAuditoria(ctx context.Context, f configuracion.FiltroAuditoria) ([]configuracion.RegistroAuditoria, error) {
	q := params{}.set("usuario", f.Usuario).set("accion", f.Accion)
	if f.Desde != nil {
		q.set("desde", fechas.FormatFecha(*f.Desde))
	}
	if f.Hasta != nil {
		q.set("hasta", fechas.FormatFecha(*f.Hasta))
	}

	var out []configuracion.RegistroAuditoria
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/auditoria", q.values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) ListBackups(ctx context.Context) ([]configuracion.Backup, error) {
	var out []configuracion.Backup
	if err := r.api.Call(ctx, http.MethodGet, configuracionPath+"/backups", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ConfiguracionRepo) CreateBackup(ctx context.Context) (configuracion.Backup, error) {
	var out configuracion.Backup
	err := r.api.Call(ctx, http.MethodPost, configuracionPath+"/backups", nil, struct{}{}, &out)
	return out, err
}

func (r *ConfiguracionRepo) DownloadBackup(ctx context.Context, id int64) (httpclient.Blob, error) {
	return r.api.Download(ctx, configuracionPath+"/backups/"+itoa(id)+"/descargar", nil, "backup-"+itoa(id)+".sql")
}
