package reportes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrTipo         = errors.New("tipo de reporte desconocido")
)

// maxDiasRango limita el tamaño de los PDF que genera el servidor.
const maxDiasRango = 366

type Service struct {
	repo  Repository
	cache *query.Cache
}

func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Dashboard se invalida con cualquier mutación de citas, pacientes, clientes o facturas.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	return query.Fetch(ctx, s.cache, query.KeyDashboard, s.repo.Dashboard)
}

// Exportar nunca pasa por el cache: cada PDF se genera al momento.
func (s *Service) Exportar(ctx context.Context, e Exportacion) (httpclient.Blob, error) {
	e.Tipo = Tipo(strings.ToLower(strings.TrimSpace(string(e.Tipo))))
	if !e.Tipo.Valido() {
		return httpclient.Blob{}, fmt.Errorf("%w: %q", ErrTipo, e.Tipo)
	}
	if e.Desde.IsZero() || e.Hasta.IsZero() || e.Hasta.Before(e.Desde) {
		return httpclient.Blob{}, fmt.Errorf("%w: rango de fechas", ErrInvalidInput)
	}
	if e.Hasta.Sub(e.Desde).Hours()/24 > maxDiasRango {
		return httpclient.Blob{}, fmt.Errorf("%w: el rango no puede superar un año", ErrInvalidInput)
	}
	return s.repo.ExportPDF(ctx, e)
}
