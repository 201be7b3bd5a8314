package capabilities

import (
	"context"

	"github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"
)

// Resolver trae los permisos efectivos de un rol (RBAC configurado en el servidor).
// Un mapa vacío significa "sin configuración": se usan los permisos por defecto del rol.
type Resolver interface {
	Resolve(ctx context.Context, rol auth.Rol) (map[string]bool, error)
}
