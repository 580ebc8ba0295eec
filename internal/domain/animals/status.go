package animals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/ports/storage"
)

// Status es el estado de adopción del animal.
// @Enum AVAILABLE, RESERVED, ADOPTED, RETURNED, QUARANTINE, UNADOPTABLE
type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusReserved    Status = "RESERVED"
	StatusAdopted     Status = "ADOPTED"
	StatusReturned    Status = "RETURNED"
	StatusQuarantine  Status = "QUARANTINE"
	StatusUnadoptable Status = "UNADOPTABLE"
)

var (
	ErrInvalidTransition = fmt.Errorf("animal: %w", apperr.ErrInvalidTransition)
	ErrConcurrentUpdate  = fmt.Errorf("animal: status changed concurrently: %w", apperr.ErrConflict)
)

var transitions = map[Status][]Status{
	StatusAvailable:   {StatusReserved, StatusUnadoptable},
	StatusReserved:    {StatusAdopted},
	StatusAdopted:     {StatusReturned},
	StatusReturned:    {StatusQuarantine, StatusAvailable, StatusUnadoptable},
	StatusQuarantine:  {StatusAvailable, StatusUnadoptable},
	StatusUnadoptable: {},
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Intake indica los estados posibles al dar de alta un animal.
func (s Status) Intake() bool {
	return s == StatusAvailable || s == StatusQuarantine || s == StatusUnadoptable
}

// IsValidTransition es total: cualquier par desconocido devuelve false.
func IsValidTransition(current, proposed Status) bool {
	for _, next := range transitions[current] {
		if next == proposed {
			return true
		}
	}
	return false
}

// StatusWriter es el subconjunto del repositorio que persiste estados con compare-and-set.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}

// Transition valida y persiste el cambio de estado. a debe haberse leído dentro del
// mismo scope serializado (lock + tx) que la escritura.
func Transition(ctx context.Context, w StatusWriter, a Animal, to Status, at time.Time) (Animal, error) {
	if !IsValidTransition(a.Status, to) {
		return a, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	return write(ctx, w, a, to, at)
}

// Release devuelve un animal RESERVED a AVAILABLE cuando su cola se disuelve.
// No figura en la tabla de transiciones: sólo el motor de reservas la usa.
func Release(ctx context.Context, w StatusWriter, a Animal, at time.Time) (Animal, error) {
	if a.Status != StatusReserved {
		return a, fmt.Errorf("%w: release requires %s, got %s", ErrInvalidTransition, StatusReserved, a.Status)
	}
	return write(ctx, w, a, StatusAvailable, at)
}

func write(ctx context.Context, w StatusWriter, a Animal, to Status, at time.Time) (Animal, error) {
	if err := w.UpdateStatus(ctx, a.ID, a.Status, to, at); err != nil {
		switch {
		case errors.Is(err, storage.ErrStale):
			return a, ErrConcurrentUpdate
		case errors.Is(err, storage.ErrNotFound):
			return a, ErrNotFound
		default:
			return a, fmt.Errorf("update animal status: %w", err)
		}
	}
	a.Status = to
	a.UpdatedAt = at
	return a, nil
}
