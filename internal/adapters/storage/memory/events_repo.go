package memory

import (
	"context"
	"errors"
	"slices"
	"strings"

	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/ports/storage"
)

type eventRepo struct {
	s *Store
}

func (r *eventRepo) Create(ctx context.Context, e events.CareEvent) error {
	if e.ID == "" {
		return errors.New("event id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.events[e.ID]; exists {
			return storage.ErrDuplicate
		}
		for _, cur := range st.events {
			if cur.AnimalID == e.AnimalID && cur.Type == e.Type && cur.OccurredAt.Equal(e.OccurredAt) {
				return storage.ErrDuplicate
			}
		}
		st.events[e.ID] = e
		return nil
	})
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.CareEvent, error) {
	var out events.CareEvent
	err := r.s.read(ctx, func(st *state) error {
		e, ok := st.events[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r *eventRepo) ListByAnimal(ctx context.Context, animalID string, filter events.ListFilter) ([]events.CareEvent, error) {
	out := make([]events.CareEvent, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, e := range st.events {
			if e.AnimalID != animalID {
				continue
			}
			if len(filter.Types) > 0 && !slices.Contains(filter.Types, e.Type) {
				continue
			}
			if filter.From != nil && e.OccurredAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && e.OccurredAt.After(*filter.To) {
				continue
			}
			out = append(out, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// occurred_at asc, id asc
	slices.SortFunc(out, func(a, b events.CareEvent) int {
		if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
