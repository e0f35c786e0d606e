package medications

import "time"

// Medication representa un medicamento que el usuario toma todos los días
// en una lista fija de horarios.
type Medication struct {
	ID     string
	UserID string

	Name   string
	Dosage string // texto libre: "1 comprimido", "10mg"

	// Horarios de toma en formato HH:MM (24h, zero-padded).
	// Se validan al crear/editar; duplicados se toleran (generan
	// entradas duplicadas en la agenda del día).
	Times []string

	Instructions string
	PhotoURL     string

	CreatedAt time.Time // inmutable una vez creado
	UpdatedAt time.Time
}
