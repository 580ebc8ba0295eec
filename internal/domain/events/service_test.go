package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events/details"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/ports/storage"
)

type testRepo struct {
	byID map[string]CareEvent
}

func (r *testRepo) Create(_ context.Context, e CareEvent) error {
	for _, cur := range r.byID {
		if cur.AnimalID == e.AnimalID && cur.Type == e.Type && cur.OccurredAt.Equal(e.OccurredAt) {
			return storage.ErrDuplicate
		}
	}
	r.byID[e.ID] = e
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (CareEvent, error) {
	e, ok := r.byID[id]
	if !ok {
		return CareEvent{}, storage.ErrNotFound
	}
	return e, nil
}

func (r *testRepo) ListByAnimal(_ context.Context, animalID string, _ ListFilter) ([]CareEvent, error) {
	out := make([]CareEvent, 0)
	for _, e := range r.byID {
		if e.AnimalID == animalID {
			out = append(out, e)
		}
	}
	return out, nil
}

type lookup map[string]animals.Animal

func (l lookup) GetByID(_ context.Context, id string) (animals.Animal, error) {
	a, ok := l[id]
	if !ok {
		return animals.Animal{}, animals.ErrNotFound
	}
	return a, nil
}

func newTestService() *Service {
	return NewService(&testRepo{byID: map[string]CareEvent{}}, lookup{
		"dog": {ID: "dog", Species: animals.SpeciesDog},
		"cat": {ID: "cat", Species: animals.SpeciesCat},
	})
}

func TestService_Create_Vaccine(t *testing.T) {
	svc := newTestService()
	at := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)

	e, err := svc.Create(context.Background(), "cat", CreateInput{
		Type:       EventTypeVaccine,
		OccurredAt: at,
		Vaccine:    &details.Vaccine{Name: "V4", Veterinarian: "Dra. Ana"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID == "" || e.AnimalID != "cat" || !e.OccurredAt.Equal(at) {
		t.Fatalf("unexpected event %+v", e)
	}

	_, err = svc.Create(context.Background(), "cat", CreateInput{
		Type:       EventTypeVaccine,
		OccurredAt: at,
		Vaccine:    &details.Vaccine{Name: "V4", Veterinarian: "Dra. Ana"},
	})
	if !errors.Is(err, ErrDuplicateEvent) || !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected duplicate conflict, got %v", err)
	}
}

func TestService_Create_TrainingOnlyForDogs(t *testing.T) {
	svc := newTestService()
	in := CreateInput{
		Type:       EventTypeTraining,
		OccurredAt: time.Now(),
		Training:   &details.Training{DurationMinutes: 30, Kind: "obediencia", Trainer: "Leo"},
	}

	if _, err := svc.Create(context.Background(), "cat", in); !errors.Is(err, ErrNotTrainable) {
		t.Fatalf("expected not trainable, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "dog", in); err != nil {
		t.Fatalf("dog training should be accepted: %v", err)
	}
}

func TestService_Create_ValidatesDetails(t *testing.T) {
	svc := newTestService()
	now := time.Now()
	before := now.Add(-time.Hour)

	cases := map[string]CreateInput{
		"unknown type":       {Type: "GROOMING", OccurredAt: now},
		"missing time":       {Type: EventTypeQuarantine, Quarantine: &details.Quarantine{Reason: "tos"}},
		"missing vaccine":    {Type: EventTypeVaccine, OccurredAt: now},
		"zero duration":      {Type: EventTypeTraining, OccurredAt: now, Training: &details.Training{Kind: "x"}},
		"until before start": {Type: EventTypeQuarantine, OccurredAt: now, Quarantine: &details.Quarantine{Reason: "tos", Until: &before}},
		"mixed details": {
			Type: EventTypeVaccine, OccurredAt: now,
			Vaccine:    &details.Vaccine{Name: "V", Veterinarian: "X"},
			Quarantine: &details.Quarantine{Reason: "tos"},
		},
	}
	for name, in := range cases {
		if _, err := svc.Create(context.Background(), "dog", in); !errors.Is(err, apperr.ErrValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestService_UnknownAnimal(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), "ghost", CreateInput{
		Type: EventTypeQuarantine, OccurredAt: time.Now(),
		Quarantine: &details.Quarantine{Reason: "tos"},
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.ListByAnimal(context.Background(), "ghost", ListFilter{}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not found listing, got %v", err)
	}
}
