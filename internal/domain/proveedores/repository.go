package proveedores

import "context"

type Repository interface {
	List(ctx context.Context) ([]Proveedor, error)
	GetByID(ctx context.Context, id int64) (Proveedor, error)
	Create(ctx context.Context, in Input) (Proveedor, error)
	Update(ctx context.Context, id int64, in Input) (Proveedor, error)
	Delete(ctx context.Context, id int64) error
}
