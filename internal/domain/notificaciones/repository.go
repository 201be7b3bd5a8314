package notificaciones

import "context"

// Repository opera siempre sobre las notificaciones del usuario del token.
type Repository interface {
	List(ctx context.Context) ([]Notificacion, error)
	MarcarLeida(ctx context.Context, id int64) error
	MarcarTodas(ctx context.Context) error
}
