package doselogs

import (
	"context"
	"errors"
	"strings"
	"time"

	"med-reminder/internal/domain/medications"
	"med-reminder/internal/platform/timeutil"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("dose log not found")

	// ErrAlreadyLogged: ya existe un log para ese
	// (medicamento, fecha, horario). Viene del unique constraint del
	// storage, así dos requests simultáneos no duplican la toma.
	ErrAlreadyLogged = errors.New("dose already logged")
)

type Service struct {
	repo Repository
	meds medications.Repository
	now  func() time.Time
}

func NewService(repo Repository, meds medications.Repository) *Service {
	return &Service{
		repo: repo,
		meds: meds,
		now:  time.Now,
	}
}

// WithNow fija el reloj del service (tests).
func (s *Service) WithNow(now func() time.Time) *Service {
	s.now = now
	return s
}

type LogInput struct {
	ScheduledDate string // vacío => hoy
	ScheduledTime string
	Status        Status     // vacío => taken
	TakenAt       *time.Time // nil + status taken => ahora
}

// Log registra una toma. Falla con medications.ErrNotFound si el
// medicamento no existe o no es del usuario, y con ErrAlreadyLogged si
// esa toma ya estaba registrada.
func (s *Service) Log(ctx context.Context, userID, medID string, in LogInput) (DoseLog, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(medID) == "" {
		return DoseLog{}, ErrInvalidInput
	}

	med, err := s.meds.GetByID(ctx, medID)
	if err != nil {
		return DoseLog{}, err
	}
	if med.UserID != userID {
		return DoseLog{}, medications.ErrNotFound
	}

	now := s.now()

	date := strings.TrimSpace(in.ScheduledDate)
	if date == "" {
		date = timeutil.FormatDate(now)
	} else if _, err := timeutil.ParseDate(date); err != nil {
		return DoseLog{}, ErrInvalidInput
	}

	clock := strings.TrimSpace(in.ScheduledTime)
	if !timeutil.IsValidClock(clock) {
		return DoseLog{}, ErrInvalidInput
	}

	status := in.Status
	if status == "" {
		status = StatusTaken
	}
	if !ValidStatus(status) {
		return DoseLog{}, ErrInvalidInput
	}

	takenAt := in.TakenAt
	if takenAt == nil && status == StatusTaken {
		takenAt = &now
	}

	l := DoseLog{
		ID:            uuid.NewString(),
		MedID:         medID,
		UserID:        userID,
		ScheduledDate: date,
		ScheduledTime: clock,
		TakenAt:       takenAt,
		Status:        status,
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return DoseLog{}, err
	}
	return l, nil
}

func (s *Service) ListByDate(ctx context.Context, userID, date string) ([]DoseLog, error) {
	if _, err := timeutil.ParseDate(date); err != nil {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDate(ctx, userID, date)
}

// UpdateStatus es la vía de edición externa del estado de un log
// (p.ej. marcar "skipped" una toma ya registrada).
func (s *Service) UpdateStatus(ctx context.Context, userID, logID string, status Status) (DoseLog, error) {
	if !ValidStatus(status) {
		return DoseLog{}, ErrInvalidInput
	}

	current, err := s.repo.GetByID(ctx, logID)
	if err != nil {
		return DoseLog{}, err
	}
	if current.UserID != userID {
		return DoseLog{}, ErrNotFound
	}

	if err := s.repo.UpdateStatus(ctx, logID, status); err != nil {
		return DoseLog{}, err
	}
	return s.repo.GetByID(ctx, logID)
}

// DayLogs agrupa los logs de un día del historial.
type DayLogs struct {
	Date string
	Logs []DoseLog
}

// History devuelve el historial rodante de los últimos days días
// (default 7), el más reciente primero. Cada día aparece aunque no tenga
// logs, igual que la pantalla de historial.
func (s *Service) History(ctx context.Context, userID string, days int) ([]DayLogs, error) {
	if days <= 0 {
		days = 7
	}

	now := s.now()
	from := timeutil.FormatDate(now.AddDate(0, 0, -(days - 1)))
	to := timeutil.FormatDate(now)

	logs, err := s.repo.ListBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string][]DoseLog, days)
	for _, l := range logs {
		byDate[l.ScheduledDate] = append(byDate[l.ScheduledDate], l)
	}

	out := make([]DayLogs, 0, days)
	for i := 0; i < days; i++ {
		date := timeutil.FormatDate(now.AddDate(0, 0, -i))
		day := DayLogs{Date: date, Logs: byDate[date]}
		if day.Logs == nil {
			day.Logs = []DoseLog{}
		}
		out = append(out, day)
	}
	return out, nil
}
