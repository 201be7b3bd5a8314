package facturas

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/fechas"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/validate"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("factura no encontrada")
	ErrTransicionInvalida = errors.New("la factura no admite esta acción en su estado actual")
)

type Service struct {
	repo  Repository
	cache *query.Cache
	loc   *time.Location
}

func NewService(repo Repository, cache *query.Cache, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{repo: repo, cache: cache, loc: loc}
}

func keyLista(estado Estado, clienteID int64) query.Key {
	k := query.KeyFacturas.With("lista")
	if estado != "" {
		k = k.With(string(estado))
	}
	if clienteID > 0 {
		k = k.With("cliente", strconv.FormatInt(clienteID, 10))
	}
	return k
}

// Listar trae del cache la lista por (estado, cliente) y filtra el rango de fechas de emisión.
func (s *Service) Listar(ctx context.Context, f Filtro) ([]Factura, error) {
	if f.Desde != nil && f.Hasta != nil && f.Hasta.Before(*f.Desde) {
		errs := &validate.Errores{}
		errs.Add("hasta", "debe ser posterior a desde")
		return nil, errs
	}
	estado := Estado(strings.ToUpper(strings.TrimSpace(string(f.Estado))))

	items, err := query.Fetch(ctx, s.cache, keyLista(estado, f.ClienteID), func(ctx context.Context) ([]Factura, error) {
		return s.repo.List(ctx, estado, f.ClienteID)
	})
	if err != nil {
		return nil, err
	}
	if f.Desde == nil && f.Hasta == nil {
		return items, nil
	}

	out := make([]Factura, 0, len(items))
	for _, fa := range items {
		t, err := fechas.ParseFecha(fa.FechaEmision, s.loc)
		if err != nil {
			continue
		}
		if fechas.EnRango(t, f.Desde, f.Hasta) {
			out = append(out, fa)
		}
	}
	return out, nil
}

func (s *Service) Obtener(ctx context.Context, id int64) (Factura, error) {
	if id <= 0 {
		return Factura{}, ErrInvalidInput
	}
	fa, err := query.Fetch(ctx, s.cache, query.KeyFacturas.With(strconv.FormatInt(id, 10)), func(ctx context.Context) (Factura, error) {
		return s.repo.GetByID(ctx, id)
	})
	if httpclient.IsNotFound(err) {
		return Factura{}, ErrNotFound
	}
	return fa, err
}

func (s *Service) Crear(ctx context.Context, in CrearInput) (Factura, error) {
	in.Observaciones = strings.TrimSpace(in.Observaciones)
	for i := range in.Items {
		in.Items[i].Descripcion = strings.TrimSpace(in.Items[i].Descripcion)
	}
	if err := validate.Struct(in); err != nil {
		return Factura{}, err
	}
	in.Total = Total(in.Items)

	fa, err := s.repo.Create(ctx, in)
	if err != nil {
		return Factura{}, err
	}
	s.invalidar(ctx)
	return fa, nil
}

// Total suma los ítems redondeando a centavos.
func Total(items []Item) float64 {
	var t float64
	for _, it := range items {
		t += float64(it.Cantidad) * it.PrecioUnitario
	}
	return math.Round(t*100) / 100
}

// Pagar solo aplica a facturas PENDIENTE.
func (s *Service) Pagar(ctx context.Context, id int64, metodo MetodoPago) (Factura, error) {
	metodo = MetodoPago(strings.ToUpper(strings.TrimSpace(string(metodo))))
	switch metodo {
	case PagoEfectivo, PagoTarjeta, PagoTransferencia:
	default:
		errs := &validate.Errores{}
		errs.Add("metodoPago", "debe ser EFECTIVO, TARJETA o TRANSFERENCIA")
		return Factura{}, errs
	}

	actual, err := s.actual(ctx, id)
	if err != nil {
		return Factura{}, err
	}
	if actual.Estado != EstadoPendiente {
		return Factura{}, fmt.Errorf("%w: %s", ErrTransicionInvalida, actual.Estado)
	}

	fa, err := s.repo.Pagar(ctx, id, metodo)
	if err != nil {
		return Factura{}, err
	}
	s.invalidar(ctx)
	return fa, nil
}

// Anular aplica a cualquier factura que no esté ya anulada y exige motivo.
func (s *Service) Anular(ctx context.Context, id int64, motivo string) (Factura, error) {
	motivo = strings.TrimSpace(motivo)
	if motivo == "" {
		errs := &validate.Errores{}
		errs.Add("motivo", "es obligatorio")
		return Factura{}, errs
	}

	actual, err := s.actual(ctx, id)
	if err != nil {
		return Factura{}, err
	}
	if actual.Estado == EstadoAnulada {
		return Factura{}, fmt.Errorf("%w: %s", ErrTransicionInvalida, actual.Estado)
	}

	fa, err := s.repo.Anular(ctx, id, motivo)
	if err != nil {
		return Factura{}, err
	}
	s.invalidar(ctx)
	return fa, nil
}

func (s *Service) DescargarPDF(ctx context.Context, id int64) (httpclient.Blob, error) {
	if id <= 0 {
		return httpclient.Blob{}, ErrInvalidInput
	}
	b, err := s.repo.DownloadPDF(ctx, id)
	if httpclient.IsNotFound(err) {
		return httpclient.Blob{}, ErrNotFound
	}
	return b, err
}

func (s *Service) actual(ctx context.Context, id int64) (Factura, error) {
	if id <= 0 {
		return Factura{}, ErrInvalidInput
	}
	fa, err := s.repo.GetByID(ctx, id)
	if httpclient.IsNotFound(err) {
		return Factura{}, ErrNotFound
	}
	return fa, err
}

func (s *Service) invalidar(ctx context.Context) {
	_ = s.cache.Invalidate(ctx, query.KeyFacturas, query.KeyDashboard)
}
