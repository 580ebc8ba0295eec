package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/ports/storage"
)

type adopterRepo struct {
	s *Store
}

func (r *adopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adopter id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.adopters[a.ID]; exists {
			return storage.ErrDuplicate
		}
		st.adopters[a.ID] = a
		return nil
	})
}

func (r *adopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	var out adopters.Adopter
	err := r.s.read(ctx, func(st *state) error {
		a, ok := st.adopters[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (r *adopterRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	var out []adopters.Adopter
	err := r.s.read(ctx, func(st *state) error {
		out = slices.Collect(maps.Values(st.adopters))
		return nil
	})
	slices.SortFunc(out, func(a, b adopters.Adopter) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, err
}

func (r *adopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	return r.s.write(ctx, func(st *state) error {
		cur, ok := st.adopters[a.ID]
		if !ok {
			return storage.ErrNotFound
		}
		a.CreatedAt = cur.CreatedAt
		st.adopters[a.ID] = a
		return nil
	})
}
