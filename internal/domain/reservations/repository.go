package reservations

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve storage.ErrDuplicate si el par (animal, adoptante) ya tiene una entrada activa.
	Create(ctx context.Context, e Entry) error
	GetByID(ctx context.Context, id string) (Entry, error)
	// ListOpen devuelve las entradas no resueltas del animal, canceladas incluidas.
	ListOpen(ctx context.Context, animalID string) ([]Entry, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Entry, error)
	MarkCanceled(ctx context.Context, id string, at time.Time) error
	// Resolve cierra todas las entradas abiertas del animal y devuelve cuántas cerró.
	Resolve(ctx context.Context, animalID string, res Resolution, at time.Time) (int, error)
	ListOpenQueues(ctx context.Context) ([]QueueSummary, error)
}
