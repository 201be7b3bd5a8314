package pacientes

// Sexo del paciente.
// @Enum MACHO, HEMBRA
type Sexo string

const (
	SexoMacho  Sexo = "MACHO"
	SexoHembra Sexo = "HEMBRA"
)

type Paciente struct {
	ID              int64   `json:"id"`
	Nombre          string  `json:"nombre"`
	Especie         string  `json:"especie"`
	Raza            string  `json:"raza,omitempty"`
	FechaNacimiento string  `json:"fechaNacimiento,omitempty"` // YYYY-MM-DD
	Sexo            Sexo    `json:"sexo,omitempty"`
	Peso            float64 `json:"peso,omitempty"`
	EstadoSalud     string  `json:"estadoSalud,omitempty"`
	ClienteID       int64   `json:"clienteId"`
}

// Input es el formulario de alta y edición.
type Input struct {
	Nombre          string  `json:"nombre" validate:"required,min=2,max=80"`
	Especie         string  `json:"especie" validate:"required,max=40"`
	Raza            string  `json:"raza,omitempty" validate:"max=60"`
	FechaNacimiento string  `json:"fechaNacimiento,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Sexo            Sexo    `json:"sexo,omitempty" validate:"omitempty,oneof=MACHO HEMBRA"`
	Peso            float64 `json:"peso,omitempty" validate:"gte=0,lte=1000"`
	EstadoSalud     string  `json:"estadoSalud,omitempty" validate:"max=60"`
	ClienteID       int64   `json:"clienteId" validate:"required,gt=0"`
}

// Nivel de sospecha de un posible duplicado.
// @Enum probable, posible
type Nivel string

const (
	NivelProbable Nivel = "probable"
	NivelPosible  Nivel = "posible"
)

// Coincidencia es un paciente existente con nombre parecido al del formulario.
type Coincidencia struct {
	Paciente  Paciente `json:"paciente"`
	Similitud float64  `json:"similitud"`
	Nivel     Nivel    `json:"nivel"`
}
