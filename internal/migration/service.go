// Package migration copia los datos del store local (SQLite, modo sin
// cuenta) al store remoto (Postgres) cuando el usuario crea su cuenta.
// Es un proceso de una sola vez, best-effort por ítem: un registro que
// falla no aborta el resto, queda reportado en el resultado.
package migration

import (
	"context"
	"fmt"
	"time"

	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"

	"github.com/google/uuid"
)

// Source es lo que necesitamos leer del store local.
type Source struct {
	Meds medications.Repository
	Logs doselogs.Repository
}

// Target es donde escribimos (store remoto).
type Target struct {
	Meds medications.Repository
	Logs doselogs.Repository
}

// Result resume la corrida.
type Result struct {
	MedicationsMigrated int
	DoseLogsMigrated    int
	Errors              []string
	Success             bool
}

type Service struct {
	now func() time.Time
}

func NewService() *Service {
	return &Service{now: time.Now}
}

// Migrate copia todos los medicamentos de localUserID en src hacia
// remoteUserID en dst, con ids nuevos, y después los dose logs con el
// med_id remapeado. Logs cuyo medicamento no migró se reportan y se
// saltean. Success = no hubo errores, o al menos algo migró.
func (s *Service) Migrate(ctx context.Context, src Source, dst Target, localUserID, remoteUserID string) Result {
	var res Result

	meds, err := src.Meds.ListByUser(ctx, localUserID)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("list local medications: %v", err))
		return res
	}

	// viejo id -> nuevo id
	idMap := make(map[string]string, len(meds))

	now := s.now()
	for _, m := range meds {
		newMed := m
		newMed.ID = uuid.NewString()
		newMed.UserID = remoteUserID
		newMed.UpdatedAt = now
		// CreatedAt se conserva: es la fecha real de alta del medicamento

		if err := dst.Meds.Create(ctx, newMed); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("medication %q: %v", m.Name, err))
			continue
		}
		idMap[m.ID] = newMed.ID
		res.MedicationsMigrated++
	}

	for _, m := range meds {
		newMedID, ok := idMap[m.ID]
		if !ok {
			continue // el medicamento no migró (ya reportado); sus logs se saltean
		}

		logs, err := src.Logs.ListByMed(ctx, m.ID)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("list logs of %q: %v", m.Name, err))
			continue
		}

		for _, l := range logs {
			newLog := l
			newLog.ID = uuid.NewString()
			newLog.MedID = newMedID
			newLog.UserID = remoteUserID

			if err := dst.Logs.Create(ctx, newLog); err != nil {
				res.Errors = append(res.Errors, fmt.Sprintf("dose log %s %s of %q: %v",
					l.ScheduledDate, l.ScheduledTime, m.Name, err))
				continue
			}
			res.DoseLogsMigrated++
		}
	}

	res.Success = len(res.Errors) == 0 ||
		res.MedicationsMigrated > 0 || res.DoseLogsMigrated > 0
	return res
}

// HasLocalData indica si hay algo para migrar.
func HasLocalData(ctx context.Context, src Source, localUserID string) (bool, error) {
	meds, err := src.Meds.ListByUser(ctx, localUserID)
	if err != nil {
		return false, err
	}
	return len(meds) > 0, nil
}

// ClearLocal borra los datos locales después de una migración limpia
// (la cascada se lleva los logs).
func ClearLocal(ctx context.Context, src Source, localUserID string) error {
	return src.Meds.DeleteByUser(ctx, localUserID)
}
