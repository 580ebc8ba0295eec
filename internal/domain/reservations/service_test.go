package reservations_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"pet-shelter/internal/adapters/locking/local"
	"pet-shelter/internal/adapters/storage/memory"
	"pet-shelter/internal/adapters/storage/sqlite"
	"pet-shelter/internal/adapters/storage/storagetest"
	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/compatibility"
	"pet-shelter/internal/domain/fees"
	"pet-shelter/internal/domain/reservations"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/config"
	"pet-shelter/internal/platform/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Fakes
// -------------------------

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// fixedScorer puntúa por nombre de adoptante.
type fixedScorer map[string]float64

func (f fixedScorer) Breakdown(_ animals.Animal, ad adopters.Adopter) compatibility.Breakdown {
	return compatibility.Breakdown{Total: f[ad.Name]}
}

const queueWindow = 72 * time.Hour

// failingLedger simula un ledger caído a mitad de la confirmación.
type failingLedger struct{}

var errLedgerDown = errors.New("ledger down")

func (failingLedger) RegisterAdoption(context.Context, string, string, decimal.Decimal) (adoptions.Adoption, error) {
	return adoptions.Adoption{}, errLedgerDown
}

type fixture struct {
	store storagetest.Store
	svc   *reservations.Service
	clock *clock
}

func newFixture(t *testing.T, scorer reservations.Scorer) *fixture {
	t.Helper()
	return newFixtureOn(t, memory.New(), scorer, nil)
}

func openSQLite(t *testing.T) storagetest.Store {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "shelter.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newFixtureOn arma el servicio sobre store; ledger nil usa el ledger real.
func newFixtureOn(t *testing.T, store storagetest.Store, scorer reservations.Scorer, ledger reservations.Ledger) *fixture {
	t.Helper()

	settings := config.DefaultSettings()
	feeCfg, err := settings.FeeConfig()
	require.NoError(t, err)
	calc, err := fees.NewCalculator(feeCfg)
	require.NoError(t, err)

	if scorer == nil {
		scorer, err = compatibility.NewScorer(settings.CompatibilityConfig())
		require.NoError(t, err)
	}

	locker := local.New()
	clk := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}

	if ledger == nil {
		ledgerSvc := adoptions.NewService(store.Adoptions(), store.Animals(), store, locker, nil, nil)
		ledgerSvc.SetClock(clk.Now)
		ledger = ledgerSvc
	}

	svc, err := reservations.NewService(reservations.Deps{
		Repo:          store.Reservations(),
		Animals:       store.Animals(),
		Adopters:      store.Adopters(),
		Scorer:        scorer,
		Fees:          calc,
		Ledger:        ledger,
		Tx:            store,
		Locker:        locker,
		QueueDuration: queueWindow,
		Metrics:       metrics.New(),
		Now:           clk.Now,
	})
	require.NoError(t, err)

	return &fixture{store: store, svc: svc, clock: clk}
}

func (f *fixture) animal(t *testing.T, status animals.Status) animals.Animal {
	t.Helper()
	a, err := animals.New(uuid.Must(uuid.NewV7()).String(), animals.Input{
		Species:     animals.SpeciesDog,
		Breed:       "Vira-lata",
		Name:        "thor",
		Gender:      animals.GenderMale,
		AgeMonths:   40,
		Size:        animals.SizeMedium,
		Temperament: []string{"brincalhão"},
		Status:      status,
	}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Animals().Create(context.Background(), a))
	return a
}

func (f *fixture) adopter(t *testing.T, name string) adopters.Adopter {
	t.Helper()
	ad, err := adopters.New(uuid.Must(uuid.NewV7()).String(), adopters.Input{
		Name:             name,
		Age:              30,
		Housing:          adopters.HousingHouse,
		UsableArea:       120,
		HasPetExperience: true,
	}, adopters.Policy{MinimumAge: 18}, f.clock.Now())
	require.NoError(t, err)
	require.NoError(t, f.store.Adopters().Create(context.Background(), ad))
	return ad
}

func (f *fixture) status(t *testing.T, animalID string) animals.Status {
	t.Helper()
	a, err := f.store.Animals().GetByID(context.Background(), animalID)
	require.NoError(t, err)
	return a.Status
}

func (f *fixture) history(t *testing.T, animalID string) []reservations.Entry {
	t.Helper()
	all, err := f.store.Reservations().ListByAnimal(context.Background(), animalID)
	require.NoError(t, err)
	return all
}

// -------------------------
// Create
// -------------------------

func TestCreate_FirstReservationReservesAnimal(t *testing.T) {
	f := newFixture(t, fixedScorer{"Ana": 72.5, "Bia": 60})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana, bia := f.adopter(t, "Ana"), f.adopter(t, "Bia")

	e, err := f.svc.Create(ctx, a.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, 72.5, e.Rate)
	assert.Equal(t, f.clock.Now(), e.CreatedAt)
	assert.True(t, e.Active())
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))

	f.clock.Advance(time.Hour)
	_, err = f.svc.Create(ctx, a.ID, bia.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
	assert.Len(t, f.history(t, a.ID), 2)
}

func TestCreate_RejectsDuplicatePair(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana, bia := f.adopter(t, "Ana"), f.adopter(t, "Bia")

	first, err := f.svc.Create(ctx, a.ID, ana.ID)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, a.ID, bia.ID)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, a.ID, ana.ID)
	assert.ErrorIs(t, err, reservations.ErrDuplicateReservation)
	assert.Equal(t, 409, apperr.HTTPStatus(err))
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
	assert.Len(t, f.history(t, a.ID), 2)

	// cancelada ya no cuenta como activa
	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, a.ID, ana.ID)
	assert.NoError(t, err)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana := f.adopter(t, "Ana")

	_, err := f.svc.Create(ctx, " ", ana.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = f.svc.Create(ctx, "missing", ana.ID)
	assert.ErrorIs(t, err, animals.ErrNotFound)

	_, err = f.svc.Create(ctx, a.ID, "missing")
	assert.ErrorIs(t, err, adopters.ErrNotFound)
	assert.Equal(t, animals.StatusAvailable, f.status(t, a.ID))
}

func TestCreate_AnimalNotReservable(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ana := f.adopter(t, "Ana")

	for _, st := range []animals.Status{animals.StatusQuarantine, animals.StatusUnadoptable} {
		a := f.animal(t, st)
		_, err := f.svc.Create(context.Background(), a.ID, ana.ID)
		assert.ErrorIs(t, err, reservations.ErrNotReservable, st)
		assert.ErrorIs(t, err, apperr.ErrInvalidTransition, st)
		assert.Empty(t, f.history(t, a.ID))
	}
}

func TestCreate_ExpiredQueueMustBeFinalizedFirst(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana, bia := f.adopter(t, "Ana"), f.adopter(t, "Bia")

	_, err := f.svc.Create(ctx, a.ID, ana.ID)
	require.NoError(t, err)

	f.clock.Advance(queueWindow)
	_, err = f.svc.Create(ctx, a.ID, bia.ID)
	assert.ErrorIs(t, err, reservations.ErrQueueExpired)
}

func TestCreate_ConcurrentAdoptersAllQueued(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	a := f.animal(t, animals.StatusAvailable)

	const n = 16
	ids := make([]string, n)
	for i := range ids {
		ids[i] = f.adopter(t, fmt.Sprintf("Adotante %d", i)).ID
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for _, id := range ids {
		wg.Add(1)
		go func(adopterID string) {
			defer wg.Done()
			_, err := f.svc.Create(context.Background(), a.ID, adopterID)
			errs <- err
		}(id)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Len(t, f.history(t, a.ID), n)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
}

// -------------------------
// Queue order and expiry
// -------------------------

func TestListQueue_OrdersByRateThenArrival(t *testing.T) {
	f := newFixture(t, fixedScorer{"Ana": 70, "Bia": 90, "Caio": 90})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)

	var ids []string
	for _, name := range []string{"Ana", "Bia", "Caio"} {
		e, err := f.svc.Create(ctx, a.ID, f.adopter(t, name).ID)
		require.NoError(t, err)
		ids = append(ids, e.ID)
		f.clock.Advance(time.Minute)
	}

	view, err := f.svc.ListQueue(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, view.Entries, 3)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, []string{view.Entries[0].ID, view.Entries[1].ID, view.Entries[2].ID})
	require.NotNil(t, view.ExpiresAt)
	assert.Equal(t, time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC), *view.ExpiresAt)
	assert.False(t, view.Expired)

	_, err = f.svc.ListQueue(ctx, "missing")
	assert.ErrorIs(t, err, animals.ErrNotFound)
}

func TestIsQueueExpired_IsInclusive(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)

	expired, err := f.svc.IsQueueExpired(ctx, a.ID, queueWindow)
	require.NoError(t, err)
	assert.False(t, expired, "empty queue never expires")

	_, err = f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)

	f.clock.Advance(queueWindow - time.Nanosecond)
	expired, err = f.svc.IsQueueExpired(ctx, a.ID, queueWindow)
	require.NoError(t, err)
	assert.False(t, expired)

	f.clock.Advance(time.Nanosecond)
	expired, err = f.svc.IsQueueExpired(ctx, a.ID, queueWindow)
	require.NoError(t, err)
	assert.True(t, expired)

	expired, err = f.svc.IsQueueExpired(ctx, a.ID, 100*time.Hour)
	require.NoError(t, err)
	assert.False(t, expired)

	_, err = f.svc.IsQueueExpired(ctx, a.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestExpiry_CountsFromFirstEntryEvenIfCanceled(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)

	first, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)
	f.clock.Advance(10 * time.Hour)
	_, err = f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	f.clock.Advance(queueWindow - 10*time.Hour)
	expired, err := f.svc.IsQueueExpired(ctx, a.ID, queueWindow)
	require.NoError(t, err)
	assert.True(t, expired)
}

func TestExpiredQueues(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	old, fresh := f.animal(t, animals.StatusAvailable), f.animal(t, animals.StatusAvailable)
	ana := f.adopter(t, "Ana")

	_, err := f.svc.Create(ctx, old.ID, ana.ID)
	require.NoError(t, err)
	f.clock.Advance(48 * time.Hour)
	_, err = f.svc.Create(ctx, fresh.ID, ana.ID)
	require.NoError(t, err)
	f.clock.Advance(24 * time.Hour)

	got, err := f.svc.ExpiredQueues(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, old.ID, got[0].AnimalID)
	assert.Equal(t, 1, got[0].ActiveEntries)
}

// -------------------------
// Cancel
// -------------------------

func TestCancel_LastActiveDissolvesQueue(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)

	e1, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)
	e2, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
	require.NoError(t, err)

	got, err := f.svc.Cancel(ctx, e1.ID)
	require.NoError(t, err)
	assert.True(t, got.Canceled)
	require.NotNil(t, got.CanceledAt)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))

	_, err = f.svc.Cancel(ctx, e2.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusAvailable, f.status(t, a.ID))

	for _, e := range f.history(t, a.ID) {
		assert.Equal(t, reservations.ResolutionDissolved, e.Resolution)
		assert.NotNil(t, e.ResolvedAt)
	}

	view, err := f.svc.ListQueue(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Nil(t, view.ExpiresAt)
}

func TestCancel_IsIdempotent(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)

	e, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)

	first, err := f.svc.Cancel(ctx, e.ID)
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	again, err := f.svc.Cancel(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.CanceledAt, *again.CanceledAt)
	assert.Equal(t, animals.StatusAvailable, f.status(t, a.ID))

	_, err = f.svc.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, reservations.ErrNotFound)
}

// -------------------------
// Finalize and Confirm
// -------------------------

func TestFinalize_NotExpired(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	_, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)

	out, err := f.svc.Finalize(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, out.Expired)
	assert.NotNil(t, out.ExpiresAt)
	assert.Nil(t, out.Winner)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
}

func TestFinalize_ExpiredReportsWinnerWithoutMutating(t *testing.T) {
	f := newFixture(t, fixedScorer{"Ana": 50, "Bia": 80})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	_, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)
	bia, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
	require.NoError(t, err)

	f.clock.Advance(queueWindow)
	out, err := f.svc.Finalize(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, out.Expired)
	assert.False(t, out.Released)
	require.NotNil(t, out.Winner)
	assert.Equal(t, bia.ID, out.Winner.ID)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
	for _, e := range f.history(t, a.ID) {
		assert.True(t, e.Open())
	}
}

func TestFinalize_ExpiredWithoutActiveEntriesReleasesAnimal(t *testing.T) {
	f := newFixture(t, fixedScorer{})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	e, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)

	// cancelación cargada por fuera del servicio: la cola queda abierta sin activas
	require.NoError(t, f.store.Reservations().MarkCanceled(ctx, e.ID, f.clock.Now()))

	f.clock.Advance(queueWindow)
	out, err := f.svc.Finalize(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, out.Expired)
	assert.True(t, out.Released)
	assert.Nil(t, out.Winner)
	assert.Equal(t, animals.StatusAvailable, f.status(t, a.ID))

	hist := f.history(t, a.ID)
	require.Len(t, hist, 1)
	assert.Equal(t, reservations.ResolutionExpired, hist[0].Resolution)
}

func TestConfirm_Flow(t *testing.T) {
	f := newFixture(t, fixedScorer{"Ana": 50, "Bia": 80, "Cid": 70})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)
	bia, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
	require.NoError(t, err)
	cid, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Cid").ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, cid.ID)
	require.NoError(t, err)

	_, err = f.svc.Confirm(ctx, bia.ID)
	assert.ErrorIs(t, err, reservations.ErrQueueNotExpired)

	f.clock.Advance(queueWindow)
	_, err = f.svc.Confirm(ctx, ana.ID)
	assert.ErrorIs(t, err, reservations.ErrNotQueueHead)

	adoption, err := f.svc.Confirm(ctx, bia.ID)
	require.NoError(t, err)
	assert.Equal(t, a.ID, adoption.AnimalID)
	assert.Equal(t, bia.AdopterID, adoption.AdopterID)
	assert.True(t, decimal.RequireFromString("150").Equal(adoption.Fee), "fee %s", adoption.Fee)
	assert.Equal(t, animals.StatusAdopted, f.status(t, a.ID))

	// la confirmación resuelve también las canceladas
	hist := f.history(t, a.ID)
	require.Len(t, hist, 3)
	for _, e := range hist {
		assert.Equal(t, reservations.ResolutionAdopted, e.Resolution, "entry %s", e.ID)
		assert.NotNil(t, e.ResolvedAt)
		if e.ID == cid.ID {
			assert.True(t, e.Canceled)
		}
	}
	view, err := f.svc.ListQueue(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.Nil(t, view.ExpiresAt)

	stored, err := f.store.Adoptions().GetByID(ctx, adoption.ID)
	require.NoError(t, err)
	assert.True(t, adoption.Fee.Equal(stored.Fee))

	_, err = f.svc.Confirm(ctx, bia.ID)
	assert.ErrorIs(t, err, reservations.ErrReservationClosed)
	_, err = f.svc.Cancel(ctx, ana.ID)
	assert.ErrorIs(t, err, reservations.ErrReservationClosed)
}

func TestConfirm_CanceledEntry(t *testing.T) {
	f := newFixture(t, fixedScorer{"Ana": 90, "Bia": 10})
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ana, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, ana.ID)
	require.NoError(t, err)

	f.clock.Advance(queueWindow)
	_, err = f.svc.Confirm(ctx, ana.ID)
	assert.ErrorIs(t, err, reservations.ErrReservationCanceled)
	assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
}

func TestConfirm_LedgerFailureRollsBack(t *testing.T) {
	backends := map[string]func(t *testing.T) storagetest.Store{
		"memory": func(*testing.T) storagetest.Store { return memory.New() },
		"sqlite": openSQLite,
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			f := newFixtureOn(t, open(t), fixedScorer{"Ana": 90, "Bia": 50}, failingLedger{})
			ctx := context.Background()
			a := f.animal(t, animals.StatusAvailable)
			ana, err := f.svc.Create(ctx, a.ID, f.adopter(t, "Ana").ID)
			require.NoError(t, err)
			_, err = f.svc.Create(ctx, a.ID, f.adopter(t, "Bia").ID)
			require.NoError(t, err)

			f.clock.Advance(queueWindow)
			_, err = f.svc.Confirm(ctx, ana.ID)
			require.ErrorIs(t, err, errLedgerDown)

			// ni ADOPTED sin adopción ni cola resuelta
			assert.Equal(t, animals.StatusReserved, f.status(t, a.ID))
			hist := f.history(t, a.ID)
			require.Len(t, hist, 2)
			for _, e := range hist {
				assert.Nil(t, e.ResolvedAt, "entry %s", e.ID)
				assert.Empty(t, e.Resolution)
			}
			view, err := f.svc.ListQueue(ctx, a.ID)
			require.NoError(t, err)
			require.Len(t, view.Entries, 2)
			assert.Equal(t, ana.ID, view.Entries[0].ID)
		})
	}
}

// -------------------------
// Preview
// -------------------------

func TestPreview_UsesConfiguredScorer(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.animal(t, animals.StatusAvailable)
	ad := f.adopter(t, "Ana")

	scorer, err := compatibility.NewScorer(config.DefaultSettings().CompatibilityConfig())
	require.NoError(t, err)

	got, err := f.svc.Preview(ctx, a.ID, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, scorer.Breakdown(a, ad), got)
	assert.GreaterOrEqual(t, got.Total, 0.0)
	assert.LessOrEqual(t, got.Total, 100.0)

	e, err := f.svc.Create(ctx, a.ID, ad.ID)
	require.NoError(t, err)
	assert.Equal(t, got.Total, e.Rate)

	_, err = f.svc.Preview(ctx, a.ID, "missing")
	assert.True(t, errors.Is(err, adopters.ErrNotFound))
}

func TestNewService_RequiresDeps(t *testing.T) {
	_, err := reservations.NewService(reservations.Deps{})
	assert.Error(t, err)
}
