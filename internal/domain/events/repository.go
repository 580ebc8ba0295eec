package events

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve storage.ErrDuplicate si ya existe (animal, tipo, occurred_at).
	Create(ctx context.Context, e CareEvent) error
	GetByID(ctx context.Context, id string) (CareEvent, error)
	ListByAnimal(ctx context.Context, animalID string, filter ListFilter) ([]CareEvent, error)
}

// ListFilter: Limit <= 0 significa sin límite.
type ListFilter struct {
	Types []EventType
	From  *time.Time
	To    *time.Time
	Limit int
}
