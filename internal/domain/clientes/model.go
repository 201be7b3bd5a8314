package clientes

// TipoDocumento de identidad del cliente.
// @Enum CC, CE, TI, NIT, PASAPORTE
type TipoDocumento string

type Cliente struct {
	ID            int64         `json:"id"`
	Nombres       string        `json:"nombres"`
	Apellidos     string        `json:"apellidos"`
	TipoDocumento TipoDocumento `json:"tipoDocumento"`
	Documento     string        `json:"documento"`
	Telefono      string        `json:"telefono"`
	Email         string        `json:"email,omitempty"`
	Direccion     string        `json:"direccion,omitempty"`
}

func (c Cliente) NombreCompleto() string {
	if c.Apellidos == "" {
		return c.Nombres
	}
	return c.Nombres + " " + c.Apellidos
}

type Input struct {
	Nombres       string        `json:"nombres" validate:"required,min=2,max=80"`
	Apellidos     string        `json:"apellidos" validate:"required,min=2,max=80"`
	TipoDocumento TipoDocumento `json:"tipoDocumento" validate:"required,oneof=CC CE TI NIT PASAPORTE"`
	Documento     string        `json:"documento" validate:"required,alphanum,min=5,max=20"`
	Telefono      string        `json:"telefono" validate:"required,min=7,max=20"`
	Email         string        `json:"email,omitempty" validate:"omitempty,email"`
	Direccion     string        `json:"direccion,omitempty" validate:"max=200"`
}
