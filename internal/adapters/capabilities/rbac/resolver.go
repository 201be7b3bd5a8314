package rbac

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/platform/query"
	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
)

// Resolver implementa capabilities.Resolver con los permisos por rol del servidor.
// Con allowAll (ALLOW_ALL_CAPABILITIES=true) todo está permitido sin llamar al backend.
type Resolver struct {
	client   *Client
	cache    *query.Cache
	allowAll bool
}

func NewResolver(client *Client, cache *query.Cache, allowAll bool) *Resolver {
	return &Resolver{client: client, cache: cache, allowAll: allowAll}
}

func KeyPermisos(rol auth.Rol) query.Key {
	return query.KeyPermisos.With(string(rol))
}

func (r *Resolver) Resolve(ctx context.Context, rol auth.Rol) (map[string]bool, error) {
	if r == nil {
		return nil, ErrNotConfigured
	}
	if r.allowAll {
		return map[string]bool{"*": true}, nil
	}
	if !r.client.IsConfigured() {
		return nil, ErrNotConfigured
	}
	return query.Fetch(ctx, r.cache, KeyPermisos(rol), func(ctx context.Context) (map[string]bool, error) {
		return r.client.GetPermisos(ctx, rol)
	})
}

// Has responde si rol tiene una capability puntual.
func (r *Resolver) Has(ctx context.Context, rol auth.Rol, capability string) (bool, error) {
	caps, err := r.Resolve(ctx, rol)
	if err != nil {
		return false, err
	}
	return caps["*"] || caps[capability], nil
}
