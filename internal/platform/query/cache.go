// Package query cachea respuestas del backend por key, deduplica fetches concurrentes
// e invalida por prefijo después de cada mutación exitosa.
package query

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/logger"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/metrics"

	"golang.org/x/sync/singleflight"
)

const DefaultStaleTime = 30 * time.Second

type Options struct {
	Store     Store
	StaleTime time.Duration

	// Scope separa el cache por usuario autenticado. nil => un único scope.
	Scope func(ctx context.Context) string

	Metrics *metrics.CacheMetrics
	Logger  logger.Logger
}

type Cache struct {
	store     Store
	staleTime time.Duration
	scope     func(ctx context.Context) string
	metrics   *metrics.CacheMetrics
	log       logger.Logger

	group singleflight.Group

	// epoch avanza con cada invalidación; un fetch que empezó antes no escribe su resultado.
	epoch atomic.Uint64
}

func New(opts Options) *Cache {
	store := opts.Store
	if store == nil {
		store = NewMemoryStore()
	}
	stale := opts.StaleTime
	if stale <= 0 {
		stale = DefaultStaleTime
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		store:     store,
		staleTime: stale,
		scope:     opts.Scope,
		metrics:   opts.Metrics,
		log:       log,
	}
}

func (c *Cache) storeKey(ctx context.Context, key Key) string {
	scope := "-"
	if c.scope != nil {
		if s := strings.TrimSpace(c.scope(ctx)); s != "" {
			scope = s
		}
	}
	return scope + scopeSep + key.String()
}

type bypassKey struct{}

// SinCache hace que Fetch ignore lo guardado y vuelva a pedir al servidor. El resultado sí se guarda.
func SinCache(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassKey{}, true)
}

// Fetch devuelve el valor fresco de key o ejecuta fn una sola vez por key aunque haya llamadas concurrentes.
// Si hubo una invalidación mientras fn corría, el resultado se entrega al llamador pero no se guarda.
// Con c == nil no hay cache: siempre ejecuta fn.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return fn(ctx)
	}

	k := c.storeKey(ctx, key)

	if sinCache, _ := ctx.Value(bypassKey{}).(bool); !sinCache {
		if raw, ok, err := c.store.Get(ctx, k); err != nil {
			c.log.Warn("query cache get failed", map[string]any{"key": key.String(), "err": err})
		} else if ok {
			var v T
			if err := json.Unmarshal(raw, &v); err == nil {
				c.metrics.ObserveLookup(key.Resource(), true)
				return v, nil
			}
			// Entrada corrupta o de otra versión del DTO: se trata como miss.
		}
	}
	c.metrics.ObserveLookup(key.Resource(), false)

	// El vuelo se identifica por key y epoch: un fetch posterior a una invalidación no se une a uno anterior.
	started := c.epoch.Load()
	flight := k + "#" + strconv.FormatUint(started, 10)

	ch := c.group.DoChan(flight, func() (any, error) {
		// Sin la cancelación del primer llamador; el timeout lo pone el cliente HTTP.
		fctx := context.WithoutCancel(ctx)

		v, err := fn(fctx)
		if err != nil {
			return v, err
		}

		if c.epoch.Load() != started {
			c.metrics.ObserveDiscard()
			c.log.Debug("query result discarded after invalidation", map[string]any{"key": key.String()})
			return v, nil
		}
		if err := c.put(fctx, k, v); err != nil {
			c.log.Warn("query cache set failed", map[string]any{"key": key.String(), "err": err})
		}
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return zero, r.Err
		}
		v, _ := r.Val.(T)
		return v, nil
	}
}

// Set escribe un valor optimista; el próximo fetch después de invalidar lo reconcilia con el servidor.
func (c *Cache) Set(ctx context.Context, key Key, v any) error {
	if c == nil {
		return nil
	}
	return c.put(ctx, c.storeKey(ctx, key), v)
}

func (c *Cache) put(ctx context.Context, k string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, k, raw, c.staleTime)
}

// Invalidate borra todas las keys bajo cada prefijo, en todos los scopes.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...Key) error {
	if c == nil {
		return nil
	}
	c.epoch.Add(1)

	var firstErr error
	for _, p := range prefixes {
		n, err := c.store.DeleteMatching(ctx, p.String())
		if err != nil {
			c.log.Warn("query cache invalidate failed", map[string]any{"prefix": p.String(), "err": err})
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		c.metrics.ObserveInvalidation(p.Resource())
		c.log.Debug("query cache invalidated", map[string]any{"prefix": p.String(), "keys": n})
	}
	return firstErr
}
