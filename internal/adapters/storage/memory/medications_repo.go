// Package memory implementa los repos sobre maps en memoria.
// Se usa en dev y en los tests end-to-end del router.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"med-reminder/internal/domain/medications"
)

type medicationsRepo struct {
	mu   sync.RWMutex
	byID map[string]medications.Medication

	// los logs viven en otro repo; la cascada de Delete se resuelve
	// avisándole (mismo rol que el ON DELETE CASCADE de sql)
	logs *doseLogsRepo
}

// NewMedicationsRepo crea el repo in-memory. logs puede ser nil si no
// hace falta cascada (tests unitarios del dominio).
func NewMedicationsRepo(logs *DoseLogsRepo) medications.Repository {
	r := &medicationsRepo{byID: make(map[string]medications.Medication)}
	if logs != nil {
		r.logs = logs.inner
	}
	return r
}

func (r *medicationsRepo) Create(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(m.ID) == "" {
		return errors.New("medication id required")
	}
	if _, exists := r.byID[m.ID]; exists {
		return errors.New("medication already exists")
	}
	r.byID[m.ID] = cloneMedication(m)
	return nil
}

func (r *medicationsRepo) GetByID(ctx context.Context, id string) (medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.byID[id]
	if !ok {
		return medications.Medication{}, medications.ErrNotFound
	}
	return cloneMedication(m), nil
}

func (r *medicationsRepo) ListByUser(ctx context.Context, userID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, 0)
	for _, m := range r.byID {
		if m.UserID == userID {
			out = append(out, cloneMedication(m))
		}
	}

	// orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *medicationsRepo) Update(ctx context.Context, m medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[m.ID]; !exists {
		return medications.ErrNotFound
	}
	r.byID[m.ID] = cloneMedication(m)
	return nil
}

func (r *medicationsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	if _, exists := r.byID[id]; !exists {
		r.mu.Unlock()
		return medications.ErrNotFound
	}
	delete(r.byID, id)
	r.mu.Unlock()

	if r.logs != nil {
		r.logs.deleteByMed(id)
	}
	return nil
}

func (r *medicationsRepo) DeleteByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	ids := make([]string, 0)
	for id, m := range r.byID {
		if m.UserID == userID {
			ids = append(ids, id)
		}
	}
	for _, id := range ids {
		delete(r.byID, id)
	}
	r.mu.Unlock()

	if r.logs != nil {
		for _, id := range ids {
			r.logs.deleteByMed(id)
		}
	}
	return nil
}

func cloneMedication(m medications.Medication) medications.Medication {
	out := m
	out.Times = append([]string(nil), m.Times...)
	return out
}
