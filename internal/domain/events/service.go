package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events/details"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
)

var (
	ErrNotFound       = fmt.Errorf("event %w", apperr.ErrNotFound)
	ErrNotTrainable   = fmt.Errorf("%w: only dogs receive training events", apperr.ErrValidation)
	ErrNotVaccinable  = fmt.Errorf("%w: species is not vaccinable", apperr.ErrValidation)
	ErrDuplicateEvent = fmt.Errorf("event already recorded for this animal, type and time: %w", apperr.ErrConflict)
)

// AnimalLookup lo implementa animals.Service.
type AnimalLookup interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
}

func NewService(repo Repository, animalLookup AnimalLookup) *Service {
	return &Service{
		repo:    repo,
		animals: animalLookup,
		now:     time.Now,
	}
}

type CreateInput struct {
	Type       EventType
	OccurredAt time.Time
	Notes      string

	Vaccine    *details.Vaccine
	Training   *details.Training
	Quarantine *details.Quarantine
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (CareEvent, error) {
	if !in.Type.Valid() {
		return CareEvent{}, apperr.Validation("type must be VACCINE, TRAINING or QUARANTINE")
	}
	if in.OccurredAt.IsZero() {
		return CareEvent{}, apperr.Validation("occurred_at required")
	}
	if err := validateDetails(in); err != nil {
		return CareEvent{}, err
	}

	a, err := s.animals.GetByID(ctx, animalID)
	if err != nil {
		return CareEvent{}, err
	}
	switch {
	case in.Type == EventTypeTraining && !a.Trainable():
		return CareEvent{}, ErrNotTrainable
	case in.Type == EventTypeVaccine && !a.Vaccinable():
		return CareEvent{}, ErrNotVaccinable
	}

	e := CareEvent{
		ID:         uuid.Must(uuid.NewV7()).String(),
		AnimalID:   a.ID,
		Type:       in.Type,
		OccurredAt: in.OccurredAt,
		RecordedAt: s.now(),
		Notes:      strings.TrimSpace(in.Notes),
		Vaccine:    in.Vaccine,
		Training:   in.Training,
		Quarantine: in.Quarantine,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return CareEvent{}, ErrDuplicateEvent
		}
		return CareEvent{}, err
	}
	return e, nil
}

func validateDetails(in CreateInput) error {
	set := 0
	for _, present := range []bool{in.Vaccine != nil, in.Training != nil, in.Quarantine != nil} {
		if present {
			set++
		}
	}
	if set > 1 {
		return apperr.Validation("only the details matching type may be sent")
	}

	switch in.Type {
	case EventTypeVaccine:
		if in.Vaccine == nil || strings.TrimSpace(in.Vaccine.Name) == "" {
			return apperr.Validation("vaccine.name required")
		}
		if strings.TrimSpace(in.Vaccine.Veterinarian) == "" {
			return apperr.Validation("vaccine.veterinarian required")
		}
	case EventTypeTraining:
		if in.Training == nil || in.Training.DurationMinutes <= 0 {
			return apperr.Validation("training.duration_minutes must be > 0")
		}
		if strings.TrimSpace(in.Training.Kind) == "" {
			return apperr.Validation("training.kind required")
		}
	case EventTypeQuarantine:
		if in.Quarantine == nil || strings.TrimSpace(in.Quarantine.Reason) == "" {
			return apperr.Validation("quarantine.reason required")
		}
		if u := in.Quarantine.Until; u != nil && u.Before(in.OccurredAt) {
			return apperr.Validation("quarantine.until must be after occurred_at")
		}
	}
	return nil
}

func (s *Service) GetByID(ctx context.Context, id string) (CareEvent, error) {
	e, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, storage.ErrNotFound) {
		return CareEvent{}, ErrNotFound
	}
	return e, err
}

// ListByAnimal devuelve los eventos ordenados por occurred_at asc.
func (s *Service) ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]CareEvent, error) {
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return nil, err
	}
	return s.repo.ListByAnimal(ctx, animalID, filter)
}

// SetClock reemplaza el reloj del servicio. nil no cambia nada.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
