package clientes

import "context"

type Repository interface {
	List(ctx context.Context, q string) ([]Cliente, error)
	GetByID(ctx context.Context, id int64) (Cliente, error)
	Create(ctx context.Context, in Input) (Cliente, error)
	Update(ctx context.Context, id int64, in Input) (Cliente, error)
	Delete(ctx context.Context, id int64) error
}
