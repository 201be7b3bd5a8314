package historias

type HistoriaClinica struct {
	ID             int64            `json:"id"`
	PacienteID     int64            `json:"pacienteId"`
	PacienteNombre string           `json:"pacienteNombre,omitempty"`
	FechaApertura  string           `json:"fechaApertura,omitempty"`
	Registros      []RegistroMedico `json:"registros"`
}

type Insumo struct {
	Nombre   string  `json:"nombre" validate:"required,max=120"`
	Cantidad float64 `json:"cantidad" validate:"gt=0"`
	Unidad   string  `json:"unidad,omitempty" validate:"max=20"`
}

type RegistroMedico struct {
	ID                int64             `json:"id"`
	Fecha             string            `json:"fecha"`
	VeterinarioID     int64             `json:"veterinarioId,omitempty"`
	VeterinarioNombre string            `json:"veterinarioNombre,omitempty"`
	Motivo            string            `json:"motivo,omitempty"`
	Diagnostico       string            `json:"diagnostico"`
	Tratamiento       string            `json:"tratamiento,omitempty"`
	SignosVitales     map[string]string `json:"signosVitales,omitempty"`
	InsumosUtilizados []Insumo          `json:"insumosUtilizados,omitempty"`
	Observaciones     string            `json:"observaciones,omitempty"`
}

type RegistroInput struct {
	CitaID            int64             `json:"citaId,omitempty" validate:"gte=0"`
	VeterinarioID     int64             `json:"veterinarioId" validate:"required,gt=0"`
	Motivo            string            `json:"motivo" validate:"required,max=300"`
	Diagnostico       string            `json:"diagnostico" validate:"required,max=2000"`
	Tratamiento       string            `json:"tratamiento,omitempty" validate:"max=2000"`
	SignosVitales     map[string]string `json:"signosVitales,omitempty"`
	InsumosUtilizados []Insumo          `json:"insumosUtilizados,omitempty" validate:"dive"`
	Observaciones     string            `json:"observaciones,omitempty" validate:"max=1000"`
}
