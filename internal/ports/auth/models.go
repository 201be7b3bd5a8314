package auth

import (
	"strings"
	"time"
)

// Rol del usuario tal como lo emite el backend.
type Rol string

const (
	RolAdmin         Rol = "ADMIN"
	RolVeterinario   Rol = "VETERINARIO"
	RolRecepcionista Rol = "RECEPCIONISTA"
	RolAuxiliar      Rol = "AUXILIAR"
)

// ParseRol normaliza el rol ("ROLE_ADMIN", "admin" => ADMIN). Roles desconocidos se devuelven tal cual en mayúsculas.
func ParseRol(s string) Rol {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "ROLE_")
	return Rol(s)
}

func (r Rol) Valido() bool {
	switch r {
	case RolAdmin, RolVeterinario, RolRecepcionista, RolAuxiliar:
		return true
	}
	return false
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID   string    `json:"id"`
	Username string    `json:"username"`
	Nombre   string    `json:"nombre"`
	Email    string    `json:"email"`
	Rol      Rol       `json:"rol"`
	ExpiraEn time.Time `json:"expiraEn,omitzero"`
}

// Expirado: sin fecha de expiración el token se considera vigente (el servidor decide).
func (c Claims) Expirado(now time.Time) bool {
	return !c.ExpiraEn.IsZero() && !now.Before(c.ExpiraEn)
}
