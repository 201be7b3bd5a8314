package pacientes

import "context"

type Repository interface {
	List(ctx context.Context, q string) ([]Paciente, error)
	ListByCliente(ctx context.Context, clienteID int64) ([]Paciente, error)
	GetByID(ctx context.Context, id int64) (Paciente, error)
	Create(ctx context.Context, in Input) (Paciente, error)
	Update(ctx context.Context, id int64, in Input) (Paciente, error)
}
