package sqldb

import (
	"context"

	"pet-shelter/internal/domain/adoptions"
)

type adoptionRepo struct {
	s *DB
}

const (
	adoptionColumns = `id, animal_id, adopter_id, fee, created_at`
	returnColumns   = `adoption_id, animal_id, reason, created_at`
)

func (r *adoptionRepo) Create(ctx context.Context, a adoptions.Adoption) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO adoptions (`+adoptionColumns+`)
		VALUES ($1,$2,$3,$4,$5)`,
		a.ID, a.AnimalID, a.AdopterID, a.Fee.StringFixed(2), a.CreatedAt.UTC(),
	)
	return err
}

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Adoption, error) {
	row := r.s.queryRow(ctx, `SELECT `+adoptionColumns+` FROM adoptions WHERE id = $1`, id)
	a, err := scanAdoption(row)
	return a, r.s.mapErr(err)
}

func (r *adoptionRepo) List(ctx context.Context) ([]adoptions.Adoption, error) {
	return r.list(ctx, ``)
}

func (r *adoptionRepo) ListByAnimal(ctx context.Context, animalID string) ([]adoptions.Adoption, error) {
	return r.list(ctx, `WHERE animal_id = $1`, animalID)
}

func (r *adoptionRepo) list(ctx context.Context, where string, args ...any) ([]adoptions.Adoption, error) {
	rows, err := r.s.query(ctx, `SELECT `+adoptionColumns+` FROM adoptions `+where+` ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Adoption, 0)
	for rows.Next() {
		a, err := scanAdoption(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateReturn: adoption_id es PK de adoption_returns, así que una segunda devolución es ErrDuplicate.
func (r *adoptionRepo) CreateReturn(ctx context.Context, ret adoptions.Return) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO adoption_returns (`+returnColumns+`)
		VALUES ($1,$2,$3,$4)`,
		ret.AdoptionID, ret.AnimalID, ret.Reason, ret.CreatedAt.UTC(),
	)
	return err
}

func (r *adoptionRepo) GetReturn(ctx context.Context, adoptionID string) (adoptions.Return, error) {
	row := r.s.queryRow(ctx, `SELECT `+returnColumns+` FROM adoption_returns WHERE adoption_id = $1`, adoptionID)
	var ret adoptions.Return
	err := row.Scan(&ret.AdoptionID, &ret.AnimalID, &ret.Reason, &ret.CreatedAt)
	return ret, r.s.mapErr(err)
}

func (r *adoptionRepo) ListReturns(ctx context.Context) ([]adoptions.Return, error) {
	return r.listReturns(ctx, ``)
}

func (r *adoptionRepo) ListReturnsByAnimal(ctx context.Context, animalID string) ([]adoptions.Return, error) {
	return r.listReturns(ctx, `WHERE animal_id = $1`, animalID)
}

func (r *adoptionRepo) listReturns(ctx context.Context, where string, args ...any) ([]adoptions.Return, error) {
	rows, err := r.s.query(ctx, `SELECT `+returnColumns+` FROM adoption_returns `+where+` ORDER BY created_at ASC, adoption_id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.Return, 0)
	for rows.Next() {
		var ret adoptions.Return
		if err := rows.Scan(&ret.AdoptionID, &ret.AnimalID, &ret.Reason, &ret.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ret)
	}
	return out, rows.Err()
}

func scanAdoption(sc scanner) (adoptions.Adoption, error) {
	var a adoptions.Adoption
	if err := sc.Scan(&a.ID, &a.AnimalID, &a.AdopterID, &a.Fee, &a.CreatedAt); err != nil {
		return adoptions.Adoption{}, err
	}
	return a, nil
}
