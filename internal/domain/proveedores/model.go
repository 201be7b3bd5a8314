package proveedores

type Proveedor struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	NIT       string `json:"nit"`
	Contacto  string `json:"contacto,omitempty"`
	Telefono  string `json:"telefono,omitempty"`
	Email     string `json:"email,omitempty"`
	Direccion string `json:"direccion,omitempty"`
	Activo    bool   `json:"activo"`
}

type Input struct {
	Nombre    string `json:"nombre" validate:"required,max=120"`
	NIT       string `json:"nit" validate:"required,max=30"`
	Contacto  string `json:"contacto,omitempty" validate:"max=120"`
	Telefono  string `json:"telefono,omitempty" validate:"omitempty,min=7,max=20"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Direccion string `json:"direccion,omitempty" validate:"max=200"`
	Activo    *bool  `json:"activo,omitempty"`
}
