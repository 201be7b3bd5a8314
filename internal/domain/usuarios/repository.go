package usuarios

import "context"

type Repository interface {
	List(ctx context.Context) ([]Usuario, error)
	Create(ctx context.Context, in CrearInput) (Usuario, error)
	Update(ctx context.Context, id int64, in ActualizarInput) (Usuario, error)
	SetActivo(ctx context.Context, id int64, activo bool) (Usuario, error)
}
