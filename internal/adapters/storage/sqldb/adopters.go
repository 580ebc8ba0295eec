package sqldb

import (
	"context"

	"pet-shelter/internal/domain/adopters"
)

type adopterRepo struct {
	s *DB
}

const adopterColumns = `
	id, name, age, housing, usable_area,
	has_pet_experience, has_children_at_home, has_other_animals,
	created_at, updated_at`

func (r *adopterRepo) Create(ctx context.Context, a adopters.Adopter) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO adopters (`+adopterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		a.ID, a.Name, a.Age, string(a.Housing), a.UsableArea,
		a.HasPetExperience, a.HasChildrenAtHome, a.HasOtherAnimals,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return err
}

func (r *adopterRepo) GetByID(ctx context.Context, id string) (adopters.Adopter, error) {
	row := r.s.queryRow(ctx, `SELECT `+adopterColumns+` FROM adopters WHERE id = $1`, id)
	a, err := scanAdopter(row)
	return a, r.s.mapErr(err)
}

func (r *adopterRepo) List(ctx context.Context) ([]adopters.Adopter, error) {
	rows, err := r.s.query(ctx, `SELECT `+adopterColumns+` FROM adopters ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adopters.Adopter, 0)
	for rows.Next() {
		a, err := scanAdopter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *adopterRepo) Update(ctx context.Context, a adopters.Adopter) error {
	res, err := r.s.exec(ctx, `
		UPDATE adopters SET
			name = $2, age = $3, housing = $4, usable_area = $5,
			has_pet_experience = $6, has_children_at_home = $7, has_other_animals = $8,
			updated_at = $9
		WHERE id = $1`,
		a.ID, a.Name, a.Age, string(a.Housing), a.UsableArea,
		a.HasPetExperience, a.HasChildrenAtHome, a.HasOtherAnimals,
		a.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	return affected(res)
}

func scanAdopter(sc scanner) (adopters.Adopter, error) {
	var (
		a       adopters.Adopter
		housing string
	)
	if err := sc.Scan(
		&a.ID, &a.Name, &a.Age, &housing, &a.UsableArea,
		&a.HasPetExperience, &a.HasChildrenAtHome, &a.HasOtherAnimals,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return adopters.Adopter{}, err
	}
	a.Housing = adopters.HousingType(housing)
	return a, nil
}
