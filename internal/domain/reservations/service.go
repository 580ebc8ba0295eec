package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/compatibility"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/platform/metrics"
	"pet-shelter/internal/ports/locking"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = fmt.Errorf("reservation %w", apperr.ErrNotFound)
	ErrDuplicateReservation = fmt.Errorf("adopter already has an active reservation for this animal: %w", apperr.ErrConflict)
	ErrQueueExpired         = fmt.Errorf("reservation queue expired, finalize it first: %w", apperr.ErrConflict)
	ErrQueueNotExpired      = fmt.Errorf("reservation queue still open: %w", apperr.ErrConflict)
	ErrNotQueueHead         = fmt.Errorf("reservation is not first in queue: %w", apperr.ErrConflict)
	ErrReservationCanceled  = fmt.Errorf("reservation canceled: %w", apperr.ErrConflict)
	ErrReservationClosed    = fmt.Errorf("reservation queue already resolved: %w", apperr.ErrConflict)
	ErrNotReservable        = fmt.Errorf("%w: animal does not accept reservations", animals.ErrInvalidTransition)
)

// Ledger es el lado del ledger de adopciones que usa la confirmación.
// Se invoca con el ctx de la transacción y el lock del animal tomado.
type Ledger interface {
	RegisterAdoption(ctx context.Context, animalID, adopterID string, fee decimal.Decimal) (adoptions.Adoption, error)
}

// FeeCalculator calcula la tasa de adopción de un animal.
type FeeCalculator interface {
	Fee(a animals.Animal) decimal.Decimal
}

// Scorer puntúa la compatibilidad de un par (animal, adoptante).
type Scorer interface {
	Breakdown(a animals.Animal, ad adopters.Adopter) compatibility.Breakdown
}

type Deps struct {
	Repo          Repository
	Animals       animals.Repository
	Adopters      adopters.Repository
	Scorer        Scorer
	Fees          FeeCalculator
	Ledger        Ledger
	Tx            storage.TxRunner
	Locker        locking.Locker
	QueueDuration time.Duration
	Metrics       *metrics.Metrics
	Log           logger.Logger
	Now           func() time.Time
}

type Service struct {
	repo     Repository
	animals  animals.Repository
	adopters adopters.Repository
	scorer   Scorer
	fees     FeeCalculator
	ledger   Ledger
	tx       storage.TxRunner
	locker   locking.Locker
	duration time.Duration
	metrics  *metrics.Metrics
	log      logger.Logger
	now      func() time.Time
}

func NewService(d Deps) (*Service, error) {
	switch {
	case d.Repo == nil, d.Animals == nil, d.Adopters == nil:
		return nil, errors.New("reservations: repositories are required")
	case d.Scorer == nil, d.Fees == nil, d.Ledger == nil:
		return nil, errors.New("reservations: scorer, fee calculator and ledger are required")
	case d.Tx == nil, d.Locker == nil:
		return nil, errors.New("reservations: tx runner and locker are required")
	case d.QueueDuration <= 0:
		return nil, errors.New("reservations: queue duration must be > 0")
	}
	if d.Log == nil {
		d.Log = logger.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &Service{
		repo:     d.Repo,
		animals:  d.Animals,
		adopters: d.Adopters,
		scorer:   d.Scorer,
		fees:     d.Fees,
		ledger:   d.Ledger,
		tx:       d.Tx,
		locker:   d.Locker,
		duration: d.QueueDuration,
		metrics:  d.Metrics,
		log:      d.Log.With(map[string]any{"module": "reservations"}),
		now:      d.Now,
	}, nil
}

// QueueDuration es la ventana configurada desde la primera reserva de la cola.
func (s *Service) QueueDuration() time.Duration { return s.duration }

// Create puntúa al adoptante y lo encola. La primera entrada activa reserva el animal.
func (s *Service) Create(ctx context.Context, animalID, adopterID string) (out Entry, err error) {
	defer func() { s.metrics.Operation("create", err) }()

	animalID = strings.TrimSpace(animalID)
	adopterID = strings.TrimSpace(adopterID)
	if animalID == "" || adopterID == "" {
		return Entry{}, apperr.Validation("animal_id and adopter_id are required")
	}

	err = s.withAnimal(ctx, animalID, func(ctx context.Context, a animals.Animal) error {
		ad, err := s.adopters.GetByID(ctx, adopterID)
		if errors.Is(err, storage.ErrNotFound) {
			return adopters.ErrNotFound
		}
		if err != nil {
			return err
		}

		q, err := s.queue(ctx, animalID)
		if err != nil {
			return err
		}
		for _, e := range q.Active() {
			if e.AdopterID == adopterID {
				return ErrDuplicateReservation
			}
		}
		now := s.now()
		if q.Expired(now, s.duration) {
			return ErrQueueExpired
		}

		if !q.HasActive() && a.Status != animals.StatusReserved {
			if !animals.IsValidTransition(a.Status, animals.StatusReserved) {
				return fmt.Errorf("%w (status %s)", ErrNotReservable, a.Status)
			}
			if _, err := animals.Transition(ctx, s.animals, a, animals.StatusReserved, now); err != nil {
				return err
			}
		}

		out = Entry{
			ID:        uuid.Must(uuid.NewV7()).String(),
			AnimalID:  animalID,
			AdopterID: adopterID,
			Rate:      s.scorer.Breakdown(a, ad).Total,
			CreatedAt: now,
		}
		if err := s.repo.Create(ctx, out); err != nil {
			if errors.Is(err, storage.ErrDuplicate) {
				return ErrDuplicateReservation
			}
			return err
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	s.metrics.Score(out.Rate)
	s.log.Info("reservation created", map[string]any{"reservation_id": out.ID, "animal_id": animalID, "adopter_id": adopterID, "rate": out.Rate})
	return out, nil
}

// Cancel es idempotente. Si ya no quedan entradas activas, la cola se disuelve
// y el animal vuelve a AVAILABLE.
func (s *Service) Cancel(ctx context.Context, id string) (out Entry, err error) {
	defer func() { s.metrics.Operation("cancel", err) }()

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}

	dissolved := false
	err = s.withAnimal(ctx, e.AnimalID, func(ctx context.Context, a animals.Animal) error {
		cur, err := s.get(ctx, e.ID)
		if err != nil {
			return err
		}
		if cur.Canceled {
			out = cur
			return nil
		}
		if !cur.Open() {
			return ErrReservationClosed
		}

		now := s.now()
		if err := s.repo.MarkCanceled(ctx, cur.ID, now); err != nil {
			return err
		}
		cur.Canceled = true
		cur.CanceledAt = &now
		out = cur

		q, err := s.queue(ctx, cur.AnimalID)
		if err != nil {
			return err
		}
		if !q.AllCanceled() {
			return nil
		}
		if _, err := s.repo.Resolve(ctx, cur.AnimalID, ResolutionDissolved, now); err != nil {
			return err
		}
		if a.Status == animals.StatusReserved {
			if _, err := animals.Release(ctx, s.animals, a, now); err != nil {
				return err
			}
		}
		dissolved = true
		return nil
	})
	if err != nil {
		return Entry{}, err
	}

	s.log.Info("reservation canceled", map[string]any{"reservation_id": out.ID, "animal_id": out.AnimalID})
	if dissolved {
		s.metrics.QueueResolved(string(ResolutionDissolved))
		s.log.Info("reservation queue dissolved", map[string]any{"animal_id": out.AnimalID})
	}
	return out, nil
}

// IsQueueExpired evalúa la expiración con la duración dada; una cola vacía nunca vence.
func (s *Service) IsQueueExpired(ctx context.Context, animalID string, d time.Duration) (bool, error) {
	if d <= 0 {
		return false, apperr.Validation("duration must be > 0")
	}
	q, err := s.queue(ctx, strings.TrimSpace(animalID))
	if err != nil {
		return false, err
	}
	return q.Expired(s.now(), d), nil
}

// Outcome es el resultado de evaluar una cola.
type Outcome struct {
	Expired   bool
	ExpiresAt *time.Time
	// Released: la cola vencida no tenía entradas activas y el animal volvió a AVAILABLE.
	Released bool
	Winner   *Entry
}

// Finalize evalúa la cola del animal. Con entradas activas sólo informa el ganador;
// la adopción se hace con Confirm.
func (s *Service) Finalize(ctx context.Context, animalID string) (out Outcome, err error) {
	defer func() { s.metrics.Operation("finalize", err) }()

	animalID = strings.TrimSpace(animalID)
	err = s.withAnimal(ctx, animalID, func(ctx context.Context, a animals.Animal) error {
		q, err := s.queue(ctx, animalID)
		if err != nil {
			return err
		}
		if at, ok := q.ExpiresAt(s.duration); ok {
			out.ExpiresAt = &at
		}
		now := s.now()
		if !q.Expired(now, s.duration) {
			return nil
		}
		out.Expired = true

		if head, ok := q.Head(); ok {
			out.Winner = &head
			return nil
		}

		if _, err := s.repo.Resolve(ctx, animalID, ResolutionExpired, now); err != nil {
			return err
		}
		if a.Status == animals.StatusReserved {
			if _, err := animals.Release(ctx, s.animals, a, now); err != nil {
				return err
			}
		}
		out.Released = true
		return nil
	})
	if err != nil {
		return Outcome{}, err
	}

	if out.Released {
		s.metrics.QueueResolved(string(ResolutionExpired))
		s.log.Info("expired reservation queue released", map[string]any{"animal_id": animalID})
	}
	return out, nil
}

// Confirm convierte la primera reserva de una cola vencida en adopción: registra la
// adopción con su tasa, resuelve la cola entera y pasa el animal a ADOPTED.
func (s *Service) Confirm(ctx context.Context, id string) (out adoptions.Adoption, err error) {
	defer func() { s.metrics.Operation("confirm", err) }()

	e, err := s.GetByID(ctx, id)
	if err != nil {
		return adoptions.Adoption{}, err
	}

	err = s.withAnimal(ctx, e.AnimalID, func(ctx context.Context, a animals.Animal) error {
		cur, err := s.get(ctx, e.ID)
		if err != nil {
			return err
		}
		switch {
		case cur.Canceled:
			return ErrReservationCanceled
		case !cur.Open():
			return ErrReservationClosed
		}

		q, err := s.queue(ctx, cur.AnimalID)
		if err != nil {
			return err
		}
		now := s.now()
		if !q.Expired(now, s.duration) {
			return ErrQueueNotExpired
		}
		head, ok := q.Head()
		if !ok || head.ID != cur.ID {
			return ErrNotQueueHead
		}

		if _, err := animals.Transition(ctx, s.animals, a, animals.StatusAdopted, now); err != nil {
			return err
		}
		out, err = s.ledger.RegisterAdoption(ctx, a.ID, cur.AdopterID, s.fees.Fee(a))
		if err != nil {
			return err
		}
		_, err = s.repo.Resolve(ctx, cur.AnimalID, ResolutionAdopted, now)
		return err
	})
	if err != nil {
		return adoptions.Adoption{}, err
	}

	s.metrics.QueueResolved(string(ResolutionAdopted))
	s.log.Info("reservation confirmed", map[string]any{"reservation_id": e.ID, "animal_id": e.AnimalID, "adopter_id": e.AdopterID, "adoption_id": out.ID, "fee": out.Fee.StringFixed(2)})
	return out, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	return s.get(ctx, id)
}

func (s *Service) get(ctx context.Context, id string) (Entry, error) {
	e, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Entry{}, ErrNotFound
	}
	return e, err
}

// QueueView es la cola vigente de un animal en orden de prioridad.
type QueueView struct {
	AnimalID  string
	Entries   []Entry
	ExpiresAt *time.Time
	Expired   bool
}

func (s *Service) ListQueue(ctx context.Context, animalID string) (QueueView, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return QueueView{}, animals.ErrNotFound
		}
		return QueueView{}, err
	}
	q, err := s.queue(ctx, animalID)
	if err != nil {
		return QueueView{}, err
	}
	out := QueueView{AnimalID: animalID, Entries: q.Active(), Expired: q.Expired(s.now(), s.duration)}
	if at, ok := q.ExpiresAt(s.duration); ok {
		out.ExpiresAt = &at
	}
	return out, nil
}

// Preview calcula la compatibilidad sin reservar.
func (s *Service) Preview(ctx context.Context, animalID, adopterID string) (compatibility.Breakdown, error) {
	a, err := s.animals.GetByID(ctx, strings.TrimSpace(animalID))
	if errors.Is(err, storage.ErrNotFound) {
		return compatibility.Breakdown{}, animals.ErrNotFound
	}
	if err != nil {
		return compatibility.Breakdown{}, err
	}
	ad, err := s.adopters.GetByID(ctx, strings.TrimSpace(adopterID))
	if errors.Is(err, storage.ErrNotFound) {
		return compatibility.Breakdown{}, adopters.ErrNotFound
	}
	if err != nil {
		return compatibility.Breakdown{}, err
	}
	return s.scorer.Breakdown(a, ad), nil
}

// ExpiredQueues lista las colas abiertas que ya vencieron y esperan Finalize o Confirm.
func (s *Service) ExpiredQueues(ctx context.Context) ([]QueueSummary, error) {
	all, err := s.repo.ListOpenQueues(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]QueueSummary, 0, len(all))
	for _, q := range all {
		if !now.Before(q.FirstCreatedAt.Add(s.duration)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *Service) queue(ctx context.Context, animalID string) (Queue, error) {
	entries, err := s.repo.ListOpen(ctx, animalID)
	if err != nil {
		return Queue{}, err
	}
	return Queue{AnimalID: animalID, Entries: entries}, nil
}

// withAnimal toma el lock del animal, abre la transacción y relee el animal dentro de ella.
func (s *Service) withAnimal(ctx context.Context, animalID string, fn func(ctx context.Context, a animals.Animal) error) error {
	if animalID == "" {
		return animals.ErrNotFound
	}
	unlock, err := s.locker.Lock(ctx, locking.AnimalKey(animalID))
	if err != nil {
		return fmt.Errorf("lock animal: %w", err)
	}
	defer unlock()

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		a, err := s.animals.GetForUpdate(ctx, animalID)
		if errors.Is(err, storage.ErrNotFound) {
			return animals.ErrNotFound
		}
		if err != nil {
			return err
		}
		return fn(ctx, a)
	})
}
