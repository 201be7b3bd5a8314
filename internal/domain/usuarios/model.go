package usuarios

import "github.com/Brandon0304/VeterinariaHumboldt2-sub000/internal/ports/auth"

type Usuario struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Nombre   string   `json:"nombre"`
	Email    string   `json:"email"`
	Rol      auth.Rol `json:"rol"`
	Activo   bool     `json:"activo"`
}

type CrearInput struct {
	Username string   `json:"username" validate:"required,alphanum,min=3,max=40"`
	Password string   `json:"password" validate:"required,min=8,max=72"`
	Nombre   string   `json:"nombre" validate:"required,max=120"`
	Email    string   `json:"email" validate:"required,email"`
	Rol      auth.Rol `json:"rol" validate:"required,oneof=ADMIN VETERINARIO RECEPCIONISTA AUXILIAR"`
}

type ActualizarInput struct {
	Nombre string   `json:"nombre" validate:"required,max=120"`
	Email  string   `json:"email" validate:"required,email"`
	Rol    auth.Rol `json:"rol" validate:"required,oneof=ADMIN VETERINARIO RECEPCIONISTA AUXILIAR"`
}
