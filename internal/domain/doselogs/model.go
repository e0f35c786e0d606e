package doselogs

import "time"

// Status es el resultado registrado de una toma.
type Status string

const (
	StatusTaken   Status = "taken"
	StatusMissed  Status = "missed"
	StatusSkipped Status = "skipped"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusTaken, StatusMissed, StatusSkipped:
		return true
	}
	return false
}

// DoseLog registra el resultado de una toma programada concreta.
// A lo sumo debería existir un log por (medicamento, fecha, horario);
// eso lo garantiza el storage con un unique constraint, no este dominio.
type DoseLog struct {
	ID     string
	MedID  string
	UserID string

	ScheduledDate string // YYYY-MM-DD
	ScheduledTime string // HH:MM; debería coincidir con un horario
	// configurado del medicamento al momento de crearse (no se
	// re-valida después si el medicamento cambia)

	TakenAt *time.Time // instante real de la toma, si status=taken
	Status  Status
}
