// Package storagetest es la batería común que cada adapter de storage debe pasar.
package storagetest

import (
	"context"
	"testing"
	"time"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/events/details"
	"pet-shelter/internal/domain/reservations"
	"pet-shelter/internal/ports/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Store interface {
	storage.TxRunner
	Animals() animals.Repository
	Adopters() adopters.Repository
	Reservations() reservations.Repository
	Adoptions() adoptions.Repository
	Events() events.Repository
}

// Run corre la batería; open debe devolver un store vacío por subtest.
func Run(t *testing.T, open func(t *testing.T) Store) {
	t.Run("animals", func(t *testing.T) { testAnimals(t, open(t)) })
	t.Run("adopters", func(t *testing.T) { testAdopters(t, open(t)) })
	t.Run("reservations", func(t *testing.T) { testReservations(t, open(t)) })
	t.Run("adoptions", func(t *testing.T) { testAdoptions(t, open(t)) })
	t.Run("events", func(t *testing.T) { testEvents(t, open(t)) })
	t.Run("tx rollback", func(t *testing.T) { testRollback(t, open(t)) })
}

var base = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func id() string { return uuid.Must(uuid.NewV7()).String() }

func newAnimal(t *testing.T, s Store, species animals.Species, at time.Time) animals.Animal {
	t.Helper()
	a := animals.Animal{
		ID: id(), Species: species, Breed: "SRD", Name: "Luna", Gender: animals.GenderFemale,
		AgeMonths: 14, Size: animals.SizeSmall, Temperament: []string{"Calmo", "Medroso"},
		Status: animals.StatusAvailable, CreatedAt: at, UpdatedAt: at,
	}
	if species == animals.SpeciesCat {
		a.Cat = &animals.CatTraits{Hypoallergenic: true}
	} else {
		a.Dog = &animals.DogTraits{NeedsWalk: true}
	}
	require.NoError(t, s.Animals().Create(context.Background(), a))
	return a
}

func newAdopter(t *testing.T, s Store, at time.Time) adopters.Adopter {
	t.Helper()
	a := adopters.Adopter{
		ID: id(), Name: "Ana", Age: 34, Housing: adopters.HousingApartment, UsableArea: 48.5,
		HasPetExperience: true, HasOtherAnimals: true, CreatedAt: at, UpdatedAt: at,
	}
	require.NoError(t, s.Adopters().Create(context.Background(), a))
	return a
}

func testAnimals(t *testing.T, s Store) {
	ctx := context.Background()
	repo := s.Animals()

	cat := newAnimal(t, s, animals.SpeciesCat, base)
	dog := newAnimal(t, s, animals.SpeciesDog, base.Add(time.Minute))

	err := repo.Create(ctx, cat)
	assert.ErrorIs(t, err, storage.ErrDuplicate)

	got, err := repo.GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.Name, got.Name)
	assert.Equal(t, []string{"Calmo", "Medroso"}, got.Temperament)
	require.NotNil(t, got.Cat)
	assert.True(t, got.Cat.Hypoallergenic)
	assert.Nil(t, got.Dog)
	assert.True(t, cat.CreatedAt.Equal(got.CreatedAt))

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err := repo.List(ctx, animals.Filter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, cat.ID, list[0].ID)
	assert.Equal(t, dog.ID, list[1].ID)

	list, err = repo.List(ctx, animals.Filter{Species: animals.SpeciesDog})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, dog.ID, list[0].ID)

	// CAS
	require.NoError(t, repo.UpdateStatus(ctx, cat.ID, animals.StatusAvailable, animals.StatusReserved, base.Add(time.Hour)))
	err = repo.UpdateStatus(ctx, cat.ID, animals.StatusAvailable, animals.StatusReserved, base.Add(time.Hour))
	assert.ErrorIs(t, err, storage.ErrStale)
	err = repo.UpdateStatus(ctx, "missing", animals.StatusAvailable, animals.StatusReserved, base)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	list, err = repo.List(ctx, animals.Filter{Statuses: []animals.Status{animals.StatusReserved}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, cat.ID, list[0].ID)

	// Update no toca status
	cat.Name = "Lua"
	cat.Status = animals.StatusAvailable
	cat.UpdatedAt = base.Add(2 * time.Hour)
	require.NoError(t, repo.Update(ctx, cat))
	got, err = repo.GetForUpdate(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lua", got.Name)
	assert.Equal(t, animals.StatusReserved, got.Status)

	assert.ErrorIs(t, repo.Update(ctx, animals.Animal{ID: "missing"}), storage.ErrNotFound)
}

func testAdopters(t *testing.T, s Store) {
	ctx := context.Background()
	repo := s.Adopters()

	a := newAdopter(t, s, base)
	b := newAdopter(t, s, base.Add(time.Second))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Housing, got.Housing)
	assert.InDelta(t, 48.5, got.UsableArea, 1e-9)
	assert.True(t, got.HasPetExperience)
	assert.False(t, got.HasChildrenAtHome)

	a.HasChildrenAtHome = true
	a.UpdatedAt = base.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, a))
	got, err = repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.HasChildrenAtHome)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []string{a.ID, b.ID}, []string{list[0].ID, list[1].ID})

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func testReservations(t *testing.T, s Store) {
	ctx := context.Background()
	repo := s.Reservations()

	cat := newAnimal(t, s, animals.SpeciesCat, base)
	dog := newAnimal(t, s, animals.SpeciesDog, base)
	ana := newAdopter(t, s, base)
	bia := newAdopter(t, s, base)

	e1 := reservations.Entry{ID: id(), AnimalID: cat.ID, AdopterID: ana.ID, Rate: 80.5, CreatedAt: base.Add(time.Minute)}
	e2 := reservations.Entry{ID: id(), AnimalID: cat.ID, AdopterID: bia.ID, Rate: 91, CreatedAt: base.Add(2 * time.Minute)}
	e3 := reservations.Entry{ID: id(), AnimalID: dog.ID, AdopterID: ana.ID, Rate: 60, CreatedAt: base.Add(3 * time.Minute)}
	for _, e := range []reservations.Entry{e1, e2, e3} {
		require.NoError(t, repo.Create(ctx, e))
	}

	// par activo repetido
	dup := reservations.Entry{ID: id(), AnimalID: cat.ID, AdopterID: ana.ID, Rate: 10, CreatedAt: base.Add(4 * time.Minute)}
	assert.ErrorIs(t, repo.Create(ctx, dup), storage.ErrDuplicate)

	got, err := repo.GetByID(ctx, e1.ID)
	require.NoError(t, err)
	assert.Equal(t, 80.5, got.Rate)
	assert.True(t, got.Active())

	open, err := repo.ListOpen(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, open, 2)
	assert.Equal(t, e1.ID, open[0].ID)

	require.NoError(t, repo.MarkCanceled(ctx, e1.ID, base.Add(5*time.Minute)))
	require.NoError(t, repo.MarkCanceled(ctx, e1.ID, base.Add(6*time.Minute)))
	got, err = repo.GetByID(ctx, e1.ID)
	require.NoError(t, err)
	assert.True(t, got.Canceled)
	require.NotNil(t, got.CanceledAt)
	assert.True(t, base.Add(5*time.Minute).Equal(*got.CanceledAt))
	assert.ErrorIs(t, repo.MarkCanceled(ctx, "missing", base), storage.ErrNotFound)

	// cancelada libera el par
	require.NoError(t, repo.Create(ctx, dup))
	open, err = repo.ListOpen(ctx, cat.ID)
	require.NoError(t, err)
	assert.Len(t, open, 3)

	queues, err := repo.ListOpenQueues(ctx)
	require.NoError(t, err)
	require.Len(t, queues, 2)
	assert.Equal(t, cat.ID, queues[0].AnimalID)
	assert.True(t, e1.CreatedAt.Equal(queues[0].FirstCreatedAt))
	assert.Equal(t, 2, queues[0].ActiveEntries)
	assert.Equal(t, dog.ID, queues[1].AnimalID)

	n, err := repo.Resolve(ctx, cat.ID, reservations.ResolutionAdopted, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	open, err = repo.ListOpen(ctx, cat.ID)
	require.NoError(t, err)
	assert.Empty(t, open)

	all, err := repo.ListByAnimal(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, e := range all {
		assert.Equal(t, reservations.ResolutionAdopted, e.Resolution)
		require.NotNil(t, e.ResolvedAt)
	}

	// resuelta libera el par
	again := reservations.Entry{ID: id(), AnimalID: cat.ID, AdopterID: bia.ID, Rate: 91, CreatedAt: base.Add(2 * time.Hour)}
	require.NoError(t, repo.Create(ctx, again))
}

func testAdoptions(t *testing.T, s Store) {
	ctx := context.Background()
	repo := s.Adoptions()

	cat := newAnimal(t, s, animals.SpeciesCat, base)
	ana := newAdopter(t, s, base)

	a1 := adoptions.Adoption{ID: id(), AnimalID: cat.ID, AdopterID: ana.ID, Fee: decimal.RequireFromString("150.50"), CreatedAt: base.Add(time.Hour)}
	a2 := adoptions.Adoption{ID: id(), AnimalID: cat.ID, AdopterID: ana.ID, Fee: decimal.Zero, CreatedAt: base.Add(48 * time.Hour)}
	require.NoError(t, repo.Create(ctx, a1))
	require.NoError(t, repo.Create(ctx, a2))
	assert.ErrorIs(t, repo.Create(ctx, a1), storage.ErrDuplicate)

	got, err := repo.GetByID(ctx, a1.ID)
	require.NoError(t, err)
	assert.True(t, a1.Fee.Equal(got.Fee), "fee %s", got.Fee)

	byAnimal, err := repo.ListByAnimal(ctx, cat.ID)
	require.NoError(t, err)
	require.Len(t, byAnimal, 2)
	assert.Equal(t, a1.ID, byAnimal[0].ID)

	_, err = repo.GetReturn(ctx, a1.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	ret := adoptions.Return{AdoptionID: a1.ID, AnimalID: cat.ID, Reason: "alergia", CreatedAt: base.Add(24 * time.Hour)}
	require.NoError(t, repo.CreateReturn(ctx, ret))
	assert.ErrorIs(t, repo.CreateReturn(ctx, ret), storage.ErrDuplicate)

	gotRet, err := repo.GetReturn(ctx, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, "alergia", gotRet.Reason)

	rets, err := repo.ListReturnsByAnimal(ctx, cat.ID)
	require.NoError(t, err)
	assert.Len(t, rets, 1)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	allRets, err := repo.ListReturns(ctx)
	require.NoError(t, err)
	assert.Len(t, allRets, 1)
}

func testEvents(t *testing.T, s Store) {
	ctx := context.Background()
	repo := s.Events()

	dog := newAnimal(t, s, animals.SpeciesDog, base)
	until := base.Add(10 * 24 * time.Hour)

	vac := events.CareEvent{
		ID: id(), AnimalID: dog.ID, Type: events.EventTypeVaccine,
		OccurredAt: base.Add(time.Hour), RecordedAt: base.Add(time.Hour), Notes: "anual",
		Vaccine: &details.Vaccine{Name: "V10", Veterinarian: "Dra. Paz", Dose: "1/3"},
	}
	tr := events.CareEvent{
		ID: id(), AnimalID: dog.ID, Type: events.EventTypeTraining,
		OccurredAt: base.Add(2 * time.Hour), RecordedAt: base.Add(2 * time.Hour),
		Training: &details.Training{DurationMinutes: 45, Kind: "obediencia", Trainer: "Leo"},
	}
	qu := events.CareEvent{
		ID: id(), AnimalID: dog.ID, Type: events.EventTypeQuarantine,
		OccurredAt: base.Add(3 * time.Hour), RecordedAt: base.Add(3 * time.Hour),
		Quarantine: &details.Quarantine{Reason: "ingreso", Until: &until},
	}
	for _, e := range []events.CareEvent{qu, vac, tr} {
		require.NoError(t, repo.Create(ctx, e))
	}

	dup := vac
	dup.ID = id()
	assert.ErrorIs(t, repo.Create(ctx, dup), storage.ErrDuplicate)

	got, err := repo.GetByID(ctx, vac.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Vaccine)
	assert.Equal(t, "V10", got.Vaccine.Name)
	assert.Nil(t, got.Training)

	list, err := repo.ListByAnimal(ctx, dog.ID, events.ListFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{vac.ID, tr.ID, qu.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
	require.NotNil(t, list[2].Quarantine)
	require.NotNil(t, list[2].Quarantine.Until)
	assert.True(t, until.Equal(*list[2].Quarantine.Until))

	list, err = repo.ListByAnimal(ctx, dog.ID, events.ListFilter{Types: []events.EventType{events.EventTypeTraining, events.EventTypeQuarantine}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tr.ID, list[0].ID)

	from, to := base.Add(90*time.Minute), base.Add(2*time.Hour)
	list, err = repo.ListByAnimal(ctx, dog.ID, events.ListFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, tr.ID, list[0].ID)
}

func testRollback(t *testing.T, s Store) {
	ctx := context.Background()
	cat := newAnimal(t, s, animals.SpeciesCat, base)

	boom := assert.AnError
	err := s.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.Animals().UpdateStatus(ctx, cat.ID, animals.StatusAvailable, animals.StatusReserved, base); err != nil {
			return err
		}
		// transacción anidada: reutiliza la de afuera
		return s.WithinTx(ctx, func(ctx context.Context) error {
			got, err := s.Animals().GetByID(ctx, cat.ID)
			if err != nil {
				return err
			}
			assert.Equal(t, animals.StatusReserved, got.Status)
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	got, err := s.Animals().GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusAvailable, got.Status)

	require.NoError(t, s.WithinTx(ctx, func(ctx context.Context) error {
		return s.Animals().UpdateStatus(ctx, cat.ID, animals.StatusAvailable, animals.StatusQuarantine, base)
	}))
	got, err = s.Animals().GetByID(ctx, cat.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusQuarantine, got.Status)
}
