package medications

import (
	"context"
	"errors"
	"strings"
	"time"

	"med-reminder/internal/platform/timeutil"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name         string
	Dosage       string
	Times        []string
	Instructions string
	PhotoURL     string
}

func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Medication{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Dosage) == "" {
		return Medication{}, ErrInvalidInput
	}

	times, err := normalizeTimes(in.Times)
	if err != nil {
		return Medication{}, err
	}

	now := s.now()
	m := Medication{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         strings.TrimSpace(in.Name),
		Dosage:       strings.TrimSpace(in.Dosage),
		Times:        times,
		Instructions: strings.TrimSpace(in.Instructions),
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return Medication{}, err
	}
	return m, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Medication, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Medication{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Medication, error) {
	return s.repo.ListByUser(ctx, userID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name         *string
	Dosage       *string
	Times        []string // nil = no tocar; lista vacía = inválido
	Instructions *string
	PhotoURL     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Medication, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Medication{}, err
	}

	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return Medication{}, ErrInvalidInput
		}
		current.Name = strings.TrimSpace(*in.Name)
	}
	if in.Dosage != nil {
		if strings.TrimSpace(*in.Dosage) == "" {
			return Medication{}, ErrInvalidInput
		}
		current.Dosage = strings.TrimSpace(*in.Dosage)
	}
	if in.Times != nil {
		times, err := normalizeTimes(in.Times)
		if err != nil {
			return Medication{}, err
		}
		current.Times = times
	}
	if in.Instructions != nil {
		current.Instructions = strings.TrimSpace(*in.Instructions)
	}
	if in.PhotoURL != nil {
		current.PhotoURL = strings.TrimSpace(*in.PhotoURL)
	}

	current.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, current); err != nil {
		return Medication{}, err
	}
	return current, nil
}

// Delete borra el medicamento; el storage cascadea sus dose logs.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id)
}

// DeleteAllByUser borra todos los datos del usuario (pantalla de ajustes).
func (s *Service) DeleteAllByUser(ctx context.Context, userID string) error {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return ErrInvalidInput
	}
	return s.repo.DeleteByUser(ctx, userID)
}

// normalizeTimes valida horarios HH:MM. Lista vacía es inválida;
// duplicados se dejan pasar (ver comentario en el modelo).
func normalizeTimes(times []string) ([]string, error) {
	if len(times) == 0 {
		return nil, ErrInvalidInput
	}

	out := make([]string, 0, len(times))
	for _, t := range times {
		t = strings.TrimSpace(t)
		if !timeutil.IsValidClock(t) {
			return nil, ErrInvalidInput
		}
		out = append(out, t)
	}
	return out, nil
}
