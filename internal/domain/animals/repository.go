package animals

import (
	"context"
	"time"
)

type Filter struct {
	Statuses []Status
	Species  Species
}

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// GetForUpdate bloquea la fila cuando el backend lo soporta. Usar dentro de WithinTx.
	GetForUpdate(ctx context.Context, id string) (Animal, error)
	List(ctx context.Context, f Filter) ([]Animal, error)
	// Update persiste el perfil; nunca el estado.
	Update(ctx context.Context, a Animal) error
	UpdateStatus(ctx context.Context, id string, from, to Status, at time.Time) error
}
