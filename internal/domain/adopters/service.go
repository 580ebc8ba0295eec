package adopters

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
)

var ErrNotFound = fmt.Errorf("adopter %w", apperr.ErrNotFound)

type Service struct {
	repo   Repository
	policy Policy
	now    func() time.Time
}

func NewService(repo Repository, policy Policy) *Service {
	return &Service{
		repo:   repo,
		policy: policy,
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Adopter, error) {
	a, err := New(uuid.Must(uuid.NewV7()).String(), in, s.policy, s.now())
	if err != nil {
		return Adopter{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Adopter{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adopter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Adopter{}, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Adopter{}, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context) ([]Adopter, error) {
	return s.repo.List(ctx)
}

type UpdateInput struct {
	Name              *string
	Age               *int
	Housing           *HousingType
	UsableArea        *float64
	HasPetExperience  *bool
	HasChildrenAtHome *bool
	HasOtherAnimals   *bool
}

// Update re-valida el adoptante completo contra la política vigente.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Adopter, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Adopter{}, err
	}

	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Age != nil {
		a.Age = *in.Age
	}
	if in.Housing != nil {
		a.Housing = HousingType(strings.ToUpper(strings.TrimSpace(string(*in.Housing))))
	}
	if in.UsableArea != nil {
		a.UsableArea = *in.UsableArea
	}
	if in.HasPetExperience != nil {
		a.HasPetExperience = *in.HasPetExperience
	}
	if in.HasChildrenAtHome != nil {
		a.HasChildrenAtHome = *in.HasChildrenAtHome
	}
	if in.HasOtherAnimals != nil {
		a.HasOtherAnimals = *in.HasOtherAnimals
	}

	if err := a.validate(s.policy); err != nil {
		return Adopter{}, err
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Adopter{}, ErrNotFound
		}
		return Adopter{}, err
	}
	return a, nil
}

// SetClock reemplaza el reloj del servicio. nil no cambia nada.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
