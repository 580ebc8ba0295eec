package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"pet-shelter/internal/domain/reservations"
	"pet-shelter/internal/ports/storage"
)

type reservationRepo struct {
	s *Store
}

func (r *reservationRepo) Create(ctx context.Context, e reservations.Entry) error {
	if strings.TrimSpace(e.ID) == "" {
		return errors.New("reservation id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.reservations[e.ID]; exists {
			return storage.ErrDuplicate
		}
		// Mismo criterio que el índice único parcial de SQL.
		for _, cur := range st.reservations {
			if cur.Active() && cur.AnimalID == e.AnimalID && cur.AdopterID == e.AdopterID {
				return storage.ErrDuplicate
			}
		}
		st.reservations[e.ID] = e
		return nil
	})
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (reservations.Entry, error) {
	var out reservations.Entry
	err := r.s.read(ctx, func(st *state) error {
		e, ok := st.reservations[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = e
		return nil
	})
	return out, err
}

func (r *reservationRepo) ListOpen(ctx context.Context, animalID string) ([]reservations.Entry, error) {
	return r.list(ctx, func(e reservations.Entry) bool {
		return e.AnimalID == animalID && e.Open()
	})
}

func (r *reservationRepo) ListByAnimal(ctx context.Context, animalID string) ([]reservations.Entry, error) {
	return r.list(ctx, func(e reservations.Entry) bool {
		return e.AnimalID == animalID
	})
}

func (r *reservationRepo) list(ctx context.Context, keep func(reservations.Entry) bool) ([]reservations.Entry, error) {
	out := make([]reservations.Entry, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, e := range st.reservations {
			if keep(e) {
				out = append(out, e)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b reservations.Entry) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, err
}

func (r *reservationRepo) MarkCanceled(ctx context.Context, id string, at time.Time) error {
	return r.s.write(ctx, func(st *state) error {
		e, ok := st.reservations[id]
		if !ok {
			return storage.ErrNotFound
		}
		if e.Canceled {
			return nil
		}
		e.Canceled = true
		e.CanceledAt = &at
		st.reservations[id] = e
		return nil
	})
}

func (r *reservationRepo) Resolve(ctx context.Context, animalID string, res reservations.Resolution, at time.Time) (int, error) {
	n := 0
	err := r.s.write(ctx, func(st *state) error {
		for id, e := range st.reservations {
			if e.AnimalID != animalID || !e.Open() {
				continue
			}
			e.ResolvedAt = &at
			e.Resolution = res
			st.reservations[id] = e
			n++
		}
		return nil
	})
	return n, err
}

func (r *reservationRepo) ListOpenQueues(ctx context.Context) ([]reservations.QueueSummary, error) {
	byAnimal := map[string]*reservations.QueueSummary{}
	err := r.s.read(ctx, func(st *state) error {
		for _, e := range st.reservations {
			if !e.Open() {
				continue
			}
			q, ok := byAnimal[e.AnimalID]
			if !ok {
				q = &reservations.QueueSummary{AnimalID: e.AnimalID, FirstCreatedAt: e.CreatedAt}
				byAnimal[e.AnimalID] = q
			}
			if e.CreatedAt.Before(q.FirstCreatedAt) {
				q.FirstCreatedAt = e.CreatedAt
			}
			if e.Active() {
				q.ActiveEntries++
			}
		}
		return nil
	})

	out := make([]reservations.QueueSummary, 0, len(byAnimal))
	for _, q := range byAnimal {
		out = append(out, *q)
	}
	slices.SortFunc(out, func(a, b reservations.QueueSummary) int {
		if c := a.FirstCreatedAt.Compare(b.FirstCreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.AnimalID, b.AnimalID)
	})
	return out, err
}
