package schedule

import (
	"context"
	"fmt"
	"time"

	"med-reminder/internal/domain/doselogs"
	"med-reminder/internal/domain/medications"
	"med-reminder/internal/platform/timeutil"
)

// Service hace el fetch (medicamentos + logs de hoy) y delega en las
// funciones puras. Si el storage falla, el error se propaga: una agenda
// vacía por error sería indistinguible de "no hay medicamentos".
type Service struct {
	meds medications.Repository
	logs doselogs.Repository
	now  func() time.Time
}

func NewService(meds medications.Repository, logs doselogs.Repository) *Service {
	return &Service{
		meds: meds,
		logs: logs,
		now:  time.Now,
	}
}

// WithNow fija el reloj del service (tests).
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) fetchToday(ctx context.Context, userID string) ([]Entry, time.Time, error) {
	now := s.now()

	meds, err := s.meds.ListByUser(ctx, userID)
	if err != nil {
		return nil, now, fmt.Errorf("list medications: %w", err)
	}

	logs, err := s.logs.ListByDate(ctx, userID, timeutil.FormatDate(now))
	if err != nil {
		return nil, now, fmt.Errorf("list dose logs: %w", err)
	}

	return BuildDay(meds, logs), now, nil
}

// Today devuelve la agenda completa de hoy, ordenada por horario.
func (s *Service) Today(ctx context.Context, userID string) ([]Entry, error) {
	entries, _, err := s.fetchToday(ctx, userID)
	return entries, err
}

// Next devuelve la próxima toma de hoy, o ok=false si no queda ninguna.
func (s *Service) Next(ctx context.Context, userID string) (NextDose, bool, error) {
	entries, now, err := s.fetchToday(ctx, userID)
	if err != nil {
		return NextDose{}, false, err
	}

	e, ok := PickNext(entries, now)
	if !ok {
		return NextDose{}, false, nil
	}

	return NextDose{
		Medication:    e.Medication,
		ScheduledTime: e.ScheduledTime,
		ScheduledDate: timeutil.FormatDate(now),
	}, true, nil
}

// Summary devuelve los contadores de hoy.
func (s *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	entries, now, err := s.fetchToday(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries, now), nil
}
