package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"med-reminder/internal/domain/doselogs"
)

type doseLogsRepo struct {
	mu   sync.RWMutex
	byID map[string]doselogs.DoseLog

	// índice (med_id, fecha, horario) => log id; hace las veces del
	// unique constraint de sql
	byDose map[string]string
}

// DoseLogsRepo expone el repo in-memory de dose logs. El wrapper existe
// para poder compartir la instancia concreta con el repo de
// medicamentos (cascada de borrado).
type DoseLogsRepo struct {
	inner *doseLogsRepo
}

func NewDoseLogsRepo() *DoseLogsRepo {
	return &DoseLogsRepo{
		inner: &doseLogsRepo{
			byID:   make(map[string]doselogs.DoseLog),
			byDose: make(map[string]string),
		},
	}
}

var _ doselogs.Repository = (*DoseLogsRepo)(nil)

func doseKey(medID, date, clock string) string {
	return medID + "|" + date + "|" + clock
}

func (r *DoseLogsRepo) Create(ctx context.Context, l doselogs.DoseLog) error {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("dose log id required")
	}
	if _, exists := r.inner.byID[l.ID]; exists {
		return errors.New("dose log already exists")
	}

	key := doseKey(l.MedID, l.ScheduledDate, l.ScheduledTime)
	if _, exists := r.inner.byDose[key]; exists {
		return doselogs.ErrAlreadyLogged
	}

	r.inner.byID[l.ID] = l
	r.inner.byDose[key] = l.ID
	return nil
}

func (r *DoseLogsRepo) GetByID(ctx context.Context, id string) (doselogs.DoseLog, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()

	l, ok := r.inner.byID[id]
	if !ok {
		return doselogs.DoseLog{}, doselogs.ErrNotFound
	}
	return l, nil
}

func (r *DoseLogsRepo) ListByDate(ctx context.Context, userID, date string) ([]doselogs.DoseLog, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()

	out := make([]doselogs.DoseLog, 0)
	for _, l := range r.inner.byID {
		if l.UserID == userID && l.ScheduledDate == date {
			out = append(out, l)
		}
	}
	sortLogsDesc(out)
	return out, nil
}

func (r *DoseLogsRepo) ListByMed(ctx context.Context, medID string) ([]doselogs.DoseLog, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()

	out := make([]doselogs.DoseLog, 0)
	for _, l := range r.inner.byID {
		if l.MedID == medID {
			out = append(out, l)
		}
	}
	sortLogsDesc(out)
	return out, nil
}

func (r *DoseLogsRepo) ListBetween(ctx context.Context, userID, from, to string) ([]doselogs.DoseLog, error) {
	r.inner.mu.RLock()
	defer r.inner.mu.RUnlock()

	out := make([]doselogs.DoseLog, 0)
	for _, l := range r.inner.byID {
		if l.UserID != userID {
			continue
		}
		// YYYY-MM-DD compara bien lexicográficamente
		if l.ScheduledDate < from || l.ScheduledDate > to {
			continue
		}
		out = append(out, l)
	}
	sortLogsDesc(out)
	return out, nil
}

func (r *DoseLogsRepo) UpdateStatus(ctx context.Context, id string, status doselogs.Status) error {
	r.inner.mu.Lock()
	defer r.inner.mu.Unlock()

	l, ok := r.inner.byID[id]
	if !ok {
		return doselogs.ErrNotFound
	}
	l.Status = status
	r.inner.byID[id] = l
	return nil
}

// deleteByMed es la cascada que dispara el repo de medicamentos.
func (r *doseLogsRepo) deleteByMed(medID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, l := range r.byID {
		if l.MedID == medID {
			delete(r.byID, id)
			delete(r.byDose, doseKey(l.MedID, l.ScheduledDate, l.ScheduledTime))
		}
	}
}

func sortLogsDesc(logs []doselogs.DoseLog) {
	sort.Slice(logs, func(i, j int) bool {
		if logs[i].ScheduledDate != logs[j].ScheduledDate {
			return logs[i].ScheduledDate > logs[j].ScheduledDate
		}
		return logs[i].ScheduledTime > logs[j].ScheduledTime
	})
}
