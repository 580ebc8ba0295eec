package memory

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/ports/storage"
)

type animalRepo struct {
	s *Store
}

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("animal id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.animals[a.ID]; exists {
			return storage.ErrDuplicate
		}
		st.animals[a.ID] = a
		return nil
	})
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var out animals.Animal
	err := r.s.read(ctx, func(st *state) error {
		a, ok := st.animals[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

// GetForUpdate: dentro de WithinTx el lock del store ya serializa.
func (r *animalRepo) GetForUpdate(ctx context.Context, id string) (animals.Animal, error) {
	return r.GetByID(ctx, id)
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	out := make([]animals.Animal, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, a := range st.animals {
			if f.Species != "" && a.Species != f.Species {
				continue
			}
			if len(f.Statuses) > 0 && !slices.Contains(f.Statuses, a.Status) {
				continue
			}
			out = append(out, a)
		}
		return nil
	})

	// created_at asc, id asc
	slices.SortFunc(out, func(a, b animals.Animal) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, err
}

func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.animals[a.ID]
		if !ok {
			return storage.ErrNotFound
		}
		a.Status = cur.Status
		a.CreatedAt = cur.CreatedAt
		st.animals[a.ID] = a
		return nil
	})
}

func (r *animalRepo) UpdateStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) error {
	return r.s.write(ctx, func(st *state) error {
		a, ok := st.animals[id]
		if !ok {
			return storage.ErrNotFound
		}
		if a.Status != from {
			return storage.ErrStale
		}
		a.Status = to
		a.UpdatedAt = at
		st.animals[id] = a
		return nil
	})
}
