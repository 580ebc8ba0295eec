package sqldb

import (
	"context"
	"database/sql"
	"time"

	"pet-shelter/internal/domain/reservations"
)

type reservationRepo struct {
	s *DB
}

const reservationColumns = `
	id, animal_id, adopter_id, rate, created_at,
	canceled, canceled_at, resolved_at, resolution`

// Create: el índice único parcial (animal_id, adopter_id) sobre entradas activas
// convierte el par repetido en storage.ErrDuplicate.
func (r *reservationRepo) Create(ctx context.Context, e reservations.Entry) error {
	_, err := r.s.exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.ID, e.AnimalID, e.AdopterID, e.Rate, e.CreatedAt.UTC(),
		e.Canceled, nullTime(e.CanceledAt), nullTime(e.ResolvedAt), string(e.Resolution),
	)
	return err
}

func (r *reservationRepo) GetByID(ctx context.Context, id string) (reservations.Entry, error) {
	row := r.s.queryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id)
	e, err := scanEntry(row)
	return e, r.s.mapErr(err)
}

func (r *reservationRepo) ListOpen(ctx context.Context, animalID string) ([]reservations.Entry, error) {
	return r.list(ctx, `WHERE animal_id = $1 AND resolved_at IS NULL`, animalID)
}

func (r *reservationRepo) ListByAnimal(ctx context.Context, animalID string) ([]reservations.Entry, error) {
	return r.list(ctx, `WHERE animal_id = $1`, animalID)
}

func (r *reservationRepo) list(ctx context.Context, where string, args ...any) ([]reservations.Entry, error) {
	rows, err := r.s.query(ctx, `SELECT `+reservationColumns+` FROM reservations `+where+` ORDER BY created_at ASC, id ASC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *reservationRepo) MarkCanceled(ctx context.Context, id string, at time.Time) error {
	res, err := r.s.exec(ctx, `
		UPDATE reservations SET canceled = $2, canceled_at = $3
		WHERE id = $1 AND NOT canceled`,
		id, true, at.UTC(),
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err != nil || n == 1 {
		return err
	}
	// ya cancelada o inexistente
	_, err = r.GetByID(ctx, id)
	return err
}

func (r *reservationRepo) Resolve(ctx context.Context, animalID string, res reservations.Resolution, at time.Time) (int, error) {
	out, err := r.s.exec(ctx, `
		UPDATE reservations SET resolved_at = $2, resolution = $3
		WHERE animal_id = $1 AND resolved_at IS NULL`,
		animalID, at.UTC(), string(res),
	)
	if err != nil {
		return 0, err
	}
	n, err := out.RowsAffected()
	return int(n), err
}

func (r *reservationRepo) ListOpenQueues(ctx context.Context) ([]reservations.QueueSummary, error) {
	rows, err := r.s.query(ctx, `
		SELECT animal_id, MIN(created_at), SUM(CASE WHEN canceled THEN 0 ELSE 1 END)
		FROM reservations
		WHERE resolved_at IS NULL
		GROUP BY animal_id
		ORDER BY MIN(created_at) ASC, animal_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reservations.QueueSummary, 0)
	for rows.Next() {
		var (
			q     reservations.QueueSummary
			first timeValue
		)
		if err := rows.Scan(&q.AnimalID, &first, &q.ActiveEntries); err != nil {
			return nil, err
		}
		q.FirstCreatedAt = first.Time
		out = append(out, q)
	}
	return out, rows.Err()
}

func scanEntry(sc scanner) (reservations.Entry, error) {
	var (
		e                    reservations.Entry
		canceledAt, resolved sql.NullTime
		resolution           string
	)
	if err := sc.Scan(
		&e.ID, &e.AnimalID, &e.AdopterID, &e.Rate, &e.CreatedAt,
		&e.Canceled, &canceledAt, &resolved, &resolution,
	); err != nil {
		return reservations.Entry{}, err
	}
	e.CanceledAt = timePtr(canceledAt)
	e.ResolvedAt = timePtr(resolved)
	e.Resolution = reservations.Resolution(resolution)
	return e, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
