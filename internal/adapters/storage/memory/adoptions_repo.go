package memory

import (
	"context"
	"errors"
	"slices"
	"strings"

	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/ports/storage"
)

type adoptionRepo struct {
	s *Store
}

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("adoption id required")
	}
	return r.s.write(ctx, func(st *state) error {
		if _, exists := st.adoptions[a.ID]; exists {
			return storage.ErrDuplicate
		}
		st.adoptions[a.ID] = a
		return nil
	})
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	var out adoptions.Adoption
	err := r.s.read(ctx, func(st *state) error {
		a, ok := st.adoptions[id]
		if !ok {
			return storage.ErrNotFound
		}
		out = a
		return nil
	})
	return out, err
}

func (r *adoptionRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.list(ctx, func(adoptions.Adoption) bool { return true })
}

func (r *adoptionRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Adoption, error) {
	return r.list(ctx, func(a adoptions.Adoption) bool { return a.AnimalID == animalID })
}

func (r *adoptionRepo) list(ctx context.Context, keep func(adoptions.Adoption) bool) ([]adoptions.Adoption, error) {
	out := make([]adoptions.Adoption, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, a := range st.adoptions {
			if keep(a) {
				out = append(out, a)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b adoptions.Adoption) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return out, err
}

func (r *adoptionRepo) CreateReturn(ctx context.Context, ret adoptions.Return) error {
	return r.s.write(ctx, func(st *state) error {
		if _, ok := st.adoptions[ret.AdoptionID]; !ok {
			return storage.ErrNotFound
		}
		if _, exists := st.returns[ret.AdoptionID]; exists {
			return storage.ErrDuplicate
		}
		st.returns[ret.AdoptionID] = ret
		return nil
	})
}

func (r *adoptionRepo) GetReturn(ctx context.Context, adoptionID string) (adoptions.Return, error) {
	var out adoptions.Return
	err := r.s.read(ctx, func(st *state) error {
		ret, ok := st.returns[adoptionID]
		if !ok {
			return storage.ErrNotFound
		}
		out = ret
		return nil
	})
	return out, err
}

func (r *adoptionRepo) ListReturns(ctx context.Context) ([]adoptions.Return, error) {
	return r.listReturns(ctx, func(adoptions.Return) bool { return true })
}

func (r *adoptionRepo) ListReturnsByAnimal(ctx context.Context, animalID string) ([]adoptions.Return, error) {
	return r.listReturns(ctx, func(ret adoptions.Return) bool { return ret.AnimalID == animalID })
}

func (r *adoptionRepo) listReturns(ctx context.Context, keep func(adoptions.Return) bool) ([]adoptions.Return, error) {
	out := make([]adoptions.Return, 0)
	err := r.s.read(ctx, func(st *state) error {
		for _, ret := range st.returns {
			if keep(ret) {
				out = append(out, ret)
			}
		}
		return nil
	})
	slices.SortFunc(out, func(a, b adoptions.Return) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.AdoptionID, b.AdoptionID)
	})
	return out, err
}
