package animals

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/ports/locking"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
)

var (
	ErrNotFound = fmt.Errorf("animal %w", apperr.ErrNotFound)
	// ErrManagedStatus: RESERVED, ADOPTED y RETURNED sólo los escriben la cola y el ledger.
	ErrManagedStatus = fmt.Errorf("%w: status is managed by reservations and adoptions", ErrInvalidTransition)
)

type Service struct {
	repo   Repository
	tx     storage.TxRunner
	locker locking.Locker
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, tx storage.TxRunner, locker locking.Locker, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		tx:     tx,
		locker: locker,
		log:    log.With(map[string]any{"module": "animals"}),
		now:    time.Now,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (Animal, error) {
	a, err := New(uuid.Must(uuid.NewV7()).String(), in, s.now())
	if err != nil {
		return Animal{}, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	s.log.Info("animal registered", map[string]any{"animal_id": a.ID, "species": a.Species, "status": a.Status})
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Animal{}, ErrNotFound
	}
	return a, err
}

func (s *Service) List(ctx context.Context, f Filter) ([]Animal, error) {
	for _, st := range f.Statuses {
		if !st.Valid() {
			return nil, apperr.Validation("unknown status %q", st)
		}
	}
	if f.Species != "" && !f.Species.Valid() {
		return nil, apperr.Validation("unknown species %q", f.Species)
	}
	return s.repo.List(ctx, f)
}

// ListReservable devuelve los animales que aceptan reservas (AVAILABLE o con cola abierta).
func (s *Service) ListReservable(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx, Filter{Statuses: []Status{StatusAvailable, StatusReserved}})
}

// UpdateInput usa punteros para PATCH: nil = no tocar.
type UpdateInput struct {
	Name           *string
	Breed          *string
	Gender         *Gender
	AgeMonths      *int
	Size           *Size
	Temperament    *[]string
	Hypoallergenic *bool
	NeedsWalk      *bool
}

func (s *Service) UpdateProfile(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	a, err := s.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.Name != nil {
		a.Name = capitalize(*in.Name)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		a.Gender = *in.Gender
	}
	if in.AgeMonths != nil {
		a.AgeMonths = *in.AgeMonths
	}
	if in.Size != nil {
		a.Size = *in.Size
	}
	if in.Temperament != nil {
		a.Temperament = NormalizeTemperament(*in.Temperament)
	}
	if in.Hypoallergenic != nil {
		if a.Cat == nil {
			return Animal{}, apperr.Validation("hypoallergenic only applies to cats")
		}
		a.Cat = &CatTraits{Hypoallergenic: *in.Hypoallergenic}
	}
	if in.NeedsWalk != nil {
		if a.Dog == nil {
			return Animal{}, apperr.Validation("needs_walk only applies to dogs")
		}
		a.Dog = &DogTraits{NeedsWalk: *in.NeedsWalk}
	}

	if err := a.validateProfile(); err != nil {
		return Animal{}, err
	}
	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Animal{}, ErrNotFound
		}
		return Animal{}, err
	}
	return a, nil
}

// ChangeStatus aplica un cambio manual (cuarentena, alta, no adoptable).
func (s *Service) ChangeStatus(ctx context.Context, id string, to Status) (Animal, error) {
	if !to.Valid() {
		return Animal{}, apperr.Validation("unknown status %q", to)
	}
	if to == StatusReserved || to == StatusAdopted || to == StatusReturned {
		return Animal{}, ErrManagedStatus
	}

	unlock, err := s.locker.Lock(ctx, locking.AnimalKey(id))
	if err != nil {
		return Animal{}, fmt.Errorf("lock animal: %w", err)
	}
	defer unlock()

	var out Animal
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.repo.GetForUpdate(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		from := a.Status
		out, err = Transition(ctx, s.repo, a, to, s.now())
		if err != nil {
			return err
		}
		s.log.Info("animal status changed", map[string]any{"animal_id": id, "from": from, "to": to})
		return nil
	})
	if err != nil {
		return Animal{}, err
	}
	return out, nil
}

// SetClock reemplaza el reloj del servicio. nil no cambia nada.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
