package doselogs

import "context"

type Repository interface {
	// Create inserta el log. Si ya existe uno para el mismo
	// (med_id, scheduled_date, scheduled_time) debe devolver un error
	// que matchee ErrAlreadyLogged (unique constraint en el storage,
	// no check-then-insert).
	Create(ctx context.Context, l DoseLog) error

	GetByID(ctx context.Context, id string) (DoseLog, error)
	ListByDate(ctx context.Context, userID, date string) ([]DoseLog, error)
	ListByMed(ctx context.Context, medID string) ([]DoseLog, error)

	// ListBetween devuelve los logs con from <= scheduled_date <= to,
	// ordenados por fecha y hora descendente (historial).
	ListBetween(ctx context.Context, userID, from, to string) ([]DoseLog, error)

	UpdateStatus(ctx context.Context, id string, status Status) error
}
