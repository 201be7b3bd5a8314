package rest

import (
	"context"
	"net/http"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/domain/reportes"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
)

type ReportesRepo struct {
	api *httpclient.Client
}

func NewReportesRepo(api *httpclient.Client) *ReportesRepo {
	return &ReportesRepo{api: api}
}

func (r *ReportesRepo) Dashboard(ctx context.Context) (reportes.Dashboard, error) {
	var out reportes.Dashboard
	err := r.api.Call(ctx, http.MethodGet, "/reportes/dashboard", nil, nil, &out)
	return out, err
}

func (r *ReportesRepo) ExportPDF(ctx context.Context, e reportes.Exportacion) (httpclient.Blob, error) {
	desde, hasta := fechas.FormatFecha(e.Desde), fechas.FormatFecha(e.Hasta)
	q := params{}.set("desde", desde).set("hasta", hasta).values()
	return r.api.Download(ctx, "/reportes/"+string(e.Tipo)+"/pdf", q, "reporte-"+string(e.Tipo)+"-"+desde+"_"+hasta+".pdf")
}
