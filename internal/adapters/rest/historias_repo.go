package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/historias"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type HistoriasRepo struct {
	api *httpclient.Client
}

func NewHistoriasRepo(api *httpclient.Client) *HistoriasRepo {
	return &HistoriasRepo{api: api}
}

func (r *HistoriasRepo) GetByPaciente(ctx context.Context, pacienteID int64) (historias.HistoriaClinica, error) {
	var out historias.HistoriaClinica
	err := r.api.Call(ctx, http.MethodGet, "/historias-clinicas/paciente/"+itoa(pacienteID), nil, nil, &out)
	return out, err
}

func (r *HistoriasRepo) AddRegistro(ctx context.Context, historiaID int64, in historias.RegistroInput) (historias.RegistroMedico, error) {
	var out historias.RegistroMedico
	err := r.api.Call(ctx, http.MethodPost, "/historias-clinicas/"+itoa(historiaID)+"/registros", nil, in, &out)
	return out, err
}

func (r *HistoriasRepo) DownloadPDF(ctx context.Context, historiaID int64) (httpclient.Blob, error) {
	return r.api.Download(ctx, "/historias-clinicas/"+itoa(historiaID)+"/pdf", nil, "historia-"+itoa(historiaID)+".pdf")
}
