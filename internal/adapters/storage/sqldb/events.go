package sqldb

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/events/details"
)

type eventRepo struct {
	s *DB
}

const eventColumns = `id, animal_id, type, occurred_at, recorded_at, notes, details`

// eventDetails es el JSON de la columna details; sólo viene el bloque de su tipo.
type eventDetails struct {
	Vaccine    *details.Vaccine    `json:"vaccine,omitempty"`
	Training   *details.Training   `json:"training,omitempty"`
	Quarantine *details.Quarantine `json:"quarantine,omitempty"`
}

func (r *eventRepo) Create(ctx context.Context, e events.CareEvent) error {
	payload, err := json.Marshal(eventDetails{Vaccine: e.Vaccine, Training: e.Training, Quarantine: e.Quarantine})
	if err != nil {
		return err
	}
	_, err = r.s.exec(ctx, `
		INSERT INTO care_events (`+eventColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		e.ID, e.AnimalID, string(e.Type), e.OccurredAt.UTC(), e.RecordedAt.UTC(), e.Notes, string(payload),
	)
	return err
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (events.CareEvent, error) {
	row := r.s.queryRow(ctx, `SELECT `+eventColumns+` FROM care_events WHERE id = $1`, id)
	e, err := scanEvent(row)
	return e, r.s.mapErr(err)
}

func (r *eventRepo) ListByAnimal(ctx context.Context, animalID string, filter events.ListFilter) ([]events.CareEvent, error) {
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + eventColumns + ` FROM care_events WHERE animal_id = $1`)
	args := []any{animalID}

	if len(filter.Types) > 0 {
		ph := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			args = append(args, string(t))
			ph = append(ph, fmt.Sprintf("$%d", len(args)))
		}
		sb.WriteString(" AND type IN (" + strings.Join(ph, ",") + ")")
	}
	if filter.From != nil {
		args = append(args, filter.From.UTC())
		sb.WriteString(fmt.Sprintf(" AND occurred_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, filter.To.UTC())
		sb.WriteString(fmt.Sprintf(" AND occurred_at <= $%d", len(args)))
	}
	sb.WriteString(" ORDER BY occurred_at ASC, id ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.s.query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.CareEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEvent(sc scanner) (events.CareEvent, error) {
	var (
		e        events.CareEvent
		typ, raw string
	)
	if err := sc.Scan(&e.ID, &e.AnimalID, &typ, &e.OccurredAt, &e.RecordedAt, &e.Notes, &raw); err != nil {
		return events.CareEvent{}, err
	}
	e.Type = events.EventType(typ)

	var d eventDetails
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return events.CareEvent{}, fmt.Errorf("decode event details: %w", err)
	}
	e.Vaccine, e.Training, e.Quarantine = d.Vaccine, d.Training, d.Quarantine
	return e, nil
}
