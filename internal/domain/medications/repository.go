package medications

import "context"

type Repository interface {
	Create(ctx context.Context, m Medication) error
	GetByID(ctx context.Context, id string) (Medication, error)
	ListByUser(ctx context.Context, userID string) ([]Medication, error)
	Update(ctx context.Context, m Medication) error

	// Delete borra el medicamento y, en cascada, todos sus dose logs.
	// La cascada la garantiza el storage (FK ON DELETE CASCADE o
	// equivalente), no este dominio.
	Delete(ctx context.Context, id string) error

	// DeleteByUser borra todos los medicamentos del usuario (y sus logs,
	// por la misma cascada). Lo usa el "borrar todos mis datos".
	DeleteByUser(ctx context.Context, userID string) error
}
