package notificaciones

import (
	"context"
	"errors"
	"sort"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/httpclient"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("notificación no encontrada")
)

const recientes = 5

type Service struct {
	repo  Repository
	cache *query.Cache
}

// NewService espera un cache con scope por usuario: la lista es del usuario autenticado.
func NewService(repo Repository, cache *query.Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Listar devuelve de la más reciente a la más antigua.
func (s *Service) Listar(ctx context.Context, soloNoLeidas bool) ([]Notificacion, error) {
	items, err := query.Fetch(ctx, s.cache, query.KeyNotificaciones.With("lista"), s.repo.List)
	if err != nil {
		return nil, err
	}
	out := make([]Notificacion, 0, len(items))
	for _, n := range items {
		if soloNoLeidas && n.Leida {
			continue
		}
		out = append(out, n)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].FechaCreacion.After(out[j].FechaCreacion)
	})
	return out, nil
}

func (s *Service) Resumen(ctx context.Context) (Resumen, error) {
	pendientes, err := s.Listar(ctx, true)
	if err != nil {
		return Resumen{}, err
	}
	res := Resumen{NoLeidas: len(pendientes), Recientes: pendientes}
	if len(res.Recientes) > recientes {
		res.Recientes = res.Recientes[:recientes]
	}
	return res, nil
}

func (s *Service) MarcarLeida(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	err := s.repo.MarcarLeida(ctx, id)
	if httpclient.IsNotFound(err) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, query.KeyNotificaciones)
	return nil
}

func (s *Service) MarcarTodas(ctx context.Context) error {
	if err := s.repo.MarcarTodas(ctx); err != nil {
		return err
	}
	_ = s.cache.Invalidate(ctx, query.KeyNotificaciones)
	return nil
}
