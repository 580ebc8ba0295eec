package adoptions

import "context"

type Repository interface {
	Create(ctx context.Context, a Adoption) error
	GetByID(ctx context.Context, id string) (Adoption, error)
	List(ctx context.Context) ([]Adoption, error)
	ListByAnimal(ctx context.Context, animalID string) ([]Adoption, error)

	// CreateReturn devuelve storage.ErrDuplicate si la adopción ya tiene devolución.
	CreateReturn(ctx context.Context, r Return) error
	GetReturn(ctx context.Context, adoptionID string) (Return, error)
	ListReturns(ctx context.Context) ([]Return, error)
	ListReturnsByAnimal(ctx context.Context, animalID string) ([]Return, error)
}
