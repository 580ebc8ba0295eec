package sqldb

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/ports/storage"
)

type animalRepo struct {
	s *DB
}

const animalColumns = `
	id, species, breed, name, gender, age_months, size,
	temperament, status, hypoallergenic, needs_walk,
	created_at, updated_at`

func (r *animalRepo) Create(ctx context.Context, a animals.Animal) error {
	temperament, err := json.Marshal(nonNil(a.Temperament))
	if err != nil {
		return err
	}
	hypo, walk := speciesTraits(a)
	_, err = r.s.exec(ctx, `
		INSERT INTO animals (`+animalColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		a.ID, string(a.Species), a.Breed, a.Name, string(a.Gender), a.AgeMonths, string(a.Size),
		string(temperament), string(a.Status), hypo, walk,
		a.CreatedAt.UTC(), a.UpdatedAt.UTC(),
	)
	return err
}

func (r *animalRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	return r.get(ctx, id, "")
}

// GetForUpdate bloquea la fila hasta el fin de la transacción donde el motor lo soporta.
func (r *animalRepo) GetForUpdate(ctx context.Context, id string) (animals.Animal, error) {
	return r.get(ctx, id, r.s.d.ForUpdate)
}

func (r *animalRepo) get(ctx context.Context, id, suffix string) (animals.Animal, error) {
	row := r.s.queryRow(ctx, `SELECT `+animalColumns+` FROM animals WHERE id = $1 `+suffix, id)
	a, err := scanAnimal(row)
	return a, r.s.mapErr(err)
}

func (r *animalRepo) List(ctx context.Context, f animals.Filter) ([]animals.Animal, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + animalColumns + ` FROM animals WHERE 1=1`)

	var args []any
	if f.Species != "" {
		args = append(args, string(f.Species))
		sb.WriteString(fmt.Sprintf(" AND species = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		ph := make([]string, 0, len(f.Statuses))
		for _, st := range f.Statuses {
			args = append(args, string(st))
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		sb.WriteString(" AND status IN (" + strings.Join(ph, ",") + ")")
	}
	sb.WriteString(" ORDER BY created_at ASC, id ASC")

	rows, err := r.s.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update persiste el perfil; status y created_at no se tocan.
func (r *animalRepo) Update(ctx context.Context, a animals.Animal) error {
	temperament, err := json.Marshal(nonNil(a.Temperament))
	if err != nil {
		return err
	}
	hypo, walk := speciesTraits(a)
	res, err := r.s.exec(ctx, `
		UPDATE animals SET
			breed = $2, name = $3, gender = $4, age_months = $5, size = $6,
			temperament = $7, hypoallergenic = $8, needs_walk = $9, updated_at = $10
		WHERE id = $1`,
		a.ID, a.Breed, a.Name, string(a.Gender), a.AgeMonths, string(a.Size),
		string(temperament), hypo, walk, a.UpdatedAt.UTC(),
	)
	if err != nil {
		return err
	}
	return affected(res)
}

// UpdateStatus es compare-and-set sobre status.
func (r *animalRepo) UpdateStatus(ctx context.Context, id string, from, to animals.Status, at time.Time) error {
	res, err := r.s.exec(ctx, `
		UPDATE animals SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2`,
		id, string(from), string(to), at.UTC(),
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 1 {
		return nil
	}

	var exists int
	err = r.s.mapErr(r.s.queryRow(ctx, `SELECT 1 FROM animals WHERE id = $1`, id).Scan(&exists))
	if err != nil {
		return err
	}
	return storage.ErrStale
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAnimal(sc scanner) (animals.Animal, error) {
	var (
		a                                   animals.Animal
		species, gender, size, status, temp string
		hypo, walk                          sql.NullBool
	)
	if err := sc.Scan(
		&a.ID, &species, &a.Breed, &a.Name, &gender, &a.AgeMonths, &size,
		&temp, &status, &hypo, &walk,
		&a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}
	a.Species = animals.Species(species)
	a.Gender = animals.Gender(gender)
	a.Size = animals.Size(size)
	a.Status = animals.Status(status)
	if err := json.Unmarshal([]byte(temp), &a.Temperament); err != nil {
		return animals.Animal{}, fmt.Errorf("decode temperament: %w", err)
	}
	if hypo.Valid {
		a.Cat = &animals.CatTraits{Hypoallergenic: hypo.Bool}
	}
	if walk.Valid {
		a.Dog = &animals.DogTraits{NeedsWalk: walk.Bool}
	}
	return a, nil
}

func speciesTraits(a animals.Animal) (hypo, walk sql.NullBool) {
	if a.Cat != nil {
		hypo = sql.NullBool{Bool: a.Cat.Hypoallergenic, Valid: true}
	}
	if a.Dog != nil {
		walk = sql.NullBool{Bool: a.Dog.NeedsWalk, Valid: true}
	}
	return hypo, walk
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
