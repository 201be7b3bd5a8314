package configuracion

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type Repository interface {
	GetClinica(ctx context.Context) (Clinica, error)
	UpdateClinica(ctx context.Context, c Clinica) (Clinica, error)

	ListPermisos(ctx context.Context) ([]Permiso, error)
	ListPermisosPorRol(ctx context.Context, rol string) ([]Permiso, error)
	UpdatePermisos(ctx context.Context, items []Permiso) ([]Permiso, error)

	ListServicios(ctx context.Context) ([]Servicio, error)
	CreateServicio(ctx context.Context, s Servicio) (Servicio, error)
	UpdateServicio(ctx context.Context, id int64, s Servicio) (Servicio, error)

	ListHorarios(ctx context.Context) ([]HorarioAtencion, error)
	UpdateHorarios(ctx context.Context, items []HorarioAtencion) ([]HorarioAtencion, error)

	ListAuditoria(ctx context.Context, f FiltroAuditoria) ([]RegistroAuditoria, error)

	ListBackups(ctx context.Context) ([]Backup, error)
	CreateBackup(ctx context.Context) (Backup, error)
	DownloadBackup(ctx context.Context, id int64) (httpclient.Blob, error)
}
