// Package storage define los contratos comunes a todos los adapters de persistencia.
package storage

import (
	"context"
	"fmt"

	"pet-shelter/internal/platform/apperr"
)

var (
	ErrNotFound  = fmt.Errorf("storage: %w", apperr.ErrNotFound)
	ErrDuplicate = fmt.Errorf("storage: duplicate key: %w", apperr.ErrConflict)
	// ErrStale indica que un compare-and-set no encontró el valor esperado.
	ErrStale = fmt.Errorf("storage: stale write: %w", apperr.ErrConflict)
)

// TxRunner ejecuta fn dentro de una transacción. El ctx que recibe fn lleva la
// transacción y debe pasarse a los repositorios. Si ctx ya trae una, se reutiliza.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
