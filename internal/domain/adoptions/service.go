package adoptions

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/platform/metrics"
	"pet-shelter/internal/ports/locking"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = fmt.Errorf("adoption %w", apperr.ErrNotFound)
	ErrNoAdoption      = fmt.Errorf("animal has no adoption to return: %w", apperr.ErrConflict)
	ErrAlreadyReturned = fmt.Errorf("adoption already returned: %w", apperr.ErrConflict)
)

type Service struct {
	repo    Repository
	animals animals.Repository
	tx      storage.TxRunner
	locker  locking.Locker
	metrics *metrics.Metrics
	log     logger.Logger
	now     func() time.Time
}

func NewService(repo Repository, animalRepo animals.Repository, tx storage.TxRunner, locker locking.Locker, m *metrics.Metrics, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:    repo,
		animals: animalRepo,
		tx:      tx,
		locker:  locker,
		metrics: m,
		log:     log.With(map[string]any{"module": "adoptions"}),
		now:     time.Now,
	}
}

// RegisterAdoption agrega una adopción al ledger. No toma el lock del animal:
// la confirmación de reservas lo sostiene y llama dentro de su transacción.
func (s *Service) RegisterAdoption(ctx context.Context, animalID, adopterID string, fee decimal.Decimal) (Adoption, error) {
	animalID = strings.TrimSpace(animalID)
	adopterID = strings.TrimSpace(adopterID)
	if animalID == "" || adopterID == "" {
		return Adoption{}, apperr.Validation("animal_id and adopter_id are required")
	}
	if fee.IsNegative() {
		return Adoption{}, apperr.Validation("fee must be >= 0")
	}

	a := Adoption{
		ID:        uuid.Must(uuid.NewV7()).String(),
		AnimalID:  animalID,
		AdopterID: adopterID,
		Fee:       fee,
		CreatedAt: s.now(),
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, a)
	})
	if err != nil {
		return Adoption{}, err
	}
	s.log.Info("adoption registered", map[string]any{"adoption_id": a.ID, "animal_id": animalID, "adopter_id": adopterID, "fee": fee.StringFixed(2)})
	return a, nil
}

// RegisterReturn vincula una devolución a la última adopción del animal y lo pasa a RETURNED.
func (s *Service) RegisterReturn(ctx context.Context, animalID, reason string) (Return, error) {
	animalID = strings.TrimSpace(animalID)
	reason = strings.TrimSpace(reason)
	if animalID == "" {
		return Return{}, apperr.Validation("animal_id required")
	}
	if reason == "" {
		return Return{}, apperr.Validation("reason required")
	}

	unlock, err := s.locker.Lock(ctx, locking.AnimalKey(animalID))
	if err != nil {
		return Return{}, fmt.Errorf("lock animal: %w", err)
	}
	defer unlock()

	var out Return
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.animals.GetForUpdate(ctx, animalID)
		if errors.Is(err, storage.ErrNotFound) {
			return animals.ErrNotFound
		}
		if err != nil {
			return err
		}

		latest, ok, err := s.latest(ctx, animalID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoAdoption
		}
		if _, err := s.repo.GetReturn(ctx, latest.ID); err == nil {
			return ErrAlreadyReturned
		} else if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		now := s.now()
		if _, err := animals.Transition(ctx, s.animals, a, animals.StatusReturned, now); err != nil {
			return err
		}

		out = Return{AdoptionID: latest.ID, AnimalID: animalID, Reason: reason, CreatedAt: now}
		if err := s.repo.CreateReturn(ctx, out); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return ErrAlreadyReturned
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Return{}, err
	}

	s.metrics.Returned()
	s.log.Info("adoption returned", map[string]any{"adoption_id": out.AdoptionID, "animal_id": animalID})
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Adoption, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if errors.Is(err, storage.ErrNotFound) {
		return Adoption{}, ErrNotFound
	}
	return a, err
}

func (s *Service) HasReturn(ctx context.Context, adoptionID string) (bool, error) {
	_, ok, err := s.GetReturn(ctx, adoptionID)
	return ok, err
}

func (s *Service) GetReturn(ctx context.Context, adoptionID string) (Return, bool, error) {
	r, err := s.repo.GetReturn(ctx, strings.TrimSpace(adoptionID))
	if errors.Is(err, storage.ErrNotFound) {
		return Return{}, false, nil
	}
	if err != nil {
		return Return{}, false, err
	}
	return r, true, nil
}

// LatestForAnimal: la más reciente; en empate de timestamp gana el id mayor.
func (s *Service) LatestForAnimal(ctx context.Context, animalID string) (Adoption, bool, error) {
	return s.latest(ctx, strings.TrimSpace(animalID))
}

func (s *Service) latest(ctx context.Context, animalID string) (Adoption, bool, error) {
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil || len(items) == 0 {
		return Adoption{}, false, err
	}
	return slices.MaxFunc(items, func(a, b Adoption) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	}), true, nil
}

func (s *Service) ListForAnimal(ctx context.Context, animalID string) ([]Adoption, []Return, error) {
	items, err := s.repo.ListByAnimal(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}
	returns, err := s.repo.ListReturnsByAnimal(ctx, animalID)
	if err != nil {
		return nil, nil, err
	}
	return items, returns, nil
}

// List separa las adopciones vigentes de las devueltas.
func (s *Service) List(ctx context.Context) (Listing, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return Listing{}, err
	}
	returns, err := s.repo.ListReturns(ctx)
	if err != nil {
		return Listing{}, err
	}

	byAdoption := make(map[string]Return, len(returns))
	for _, r := range returns {
		byAdoption[r.AdoptionID] = r
	}

	out := Listing{Active: []Adoption{}, Returned: []ReturnedAdoption{}}
	for _, a := range items {
		if r, ok := byAdoption[a.ID]; ok {
			out.Returned = append(out.Returned, ReturnedAdoption{Adoption: a, Return: r})
			continue
		}
		out.Active = append(out.Active, a)
	}
	return out, nil
}

// SetClock reemplaza el reloj del servicio. nil no cambia nada.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
