package historias

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type Repository interface {
	GetByPaciente(ctx context.Context, pacienteID int64) (HistoriaClinica, error)
	AddRegistro(ctx context.Context, historiaID int64, in RegistroInput) (RegistroMedico, error)
	DownloadPDF(ctx context.Context, historiaID int64) (httpclient.Blob, error)
}
