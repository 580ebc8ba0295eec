package adoptions_test

import (
	"context"
	"testing"
	"time"

	"pet-shelter/internal/adapters/locking/local"
	"pet-shelter/internal/adapters/storage/memory"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*memory.Store, *adoptions.Service, *time.Time) {
	t.Helper()
	store := memory.New()
	svc := adoptions.NewService(store.Adoptions(), store.Animals(), store, local.New(), metrics.New(), nil)
	now := t0
	svc.SetClock(func() time.Time { return now })
	return store, svc, &now
}

func adoptedAnimal(t *testing.T, store *memory.Store) animals.Animal {
	t.Helper()
	a := animals.Animal{
		ID: "animal-1", Species: animals.SpeciesCat, Breed: "Siamês", Name: "Mia",
		Gender: animals.GenderFemale, AgeMonths: 30, Size: animals.SizeSmall,
		Status: animals.StatusAdopted, Cat: &animals.CatTraits{}, CreatedAt: t0, UpdatedAt: t0,
	}
	require.NoError(t, store.Animals().Create(context.Background(), a))
	return a
}

func TestRegisterAdoption(t *testing.T) {
	store, svc, _ := setup(t)
	ctx := context.Background()

	got, err := svc.RegisterAdoption(ctx, "animal-1", "adopter-1", decimal.RequireFromString("99.90"))
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, t0, got.CreatedAt)

	stored, err := store.Adoptions().GetByID(ctx, got.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("99.9").Equal(stored.Fee))

	_, err = svc.RegisterAdoption(ctx, "animal-1", "adopter-1", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.RegisterAdoption(ctx, "", "adopter-1", decimal.Zero)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, adoptions.ErrNotFound)
}

func TestRegisterReturn_LinksLatestAdoption(t *testing.T) {
	store, svc, now := setup(t)
	ctx := context.Background()
	a := adoptedAnimal(t, store)

	first, err := svc.RegisterAdoption(ctx, a.ID, "adopter-1", decimal.NewFromInt(150))
	require.NoError(t, err)
	*now = now.Add(24 * time.Hour)
	second, err := svc.RegisterAdoption(ctx, a.ID, "adopter-2", decimal.NewFromInt(50))
	require.NoError(t, err)

	latest, ok, err := svc.LatestForAnimal(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, second.ID, latest.ID)

	*now = now.Add(time.Hour)
	ret, err := svc.RegisterReturn(ctx, a.ID, "  mudança de cidade ")
	require.NoError(t, err)
	assert.Equal(t, second.ID, ret.AdoptionID)
	assert.Equal(t, "mudança de cidade", ret.Reason)

	got, err := store.Animals().GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, animals.StatusReturned, got.Status)

	has, err := svc.HasReturn(ctx, second.ID)
	require.NoError(t, err)
	assert.True(t, has)
	has, err = svc.HasReturn(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, has)

	listing, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listing.Active, 1)
	assert.Equal(t, first.ID, listing.Active[0].ID)
	require.Len(t, listing.Returned, 1)
	assert.Equal(t, second.ID, listing.Returned[0].Adoption.ID)
	assert.Equal(t, ret, listing.Returned[0].Return)
}

func TestRegisterReturn_SameTimestampPicksGreaterID(t *testing.T) {
	store, svc, _ := setup(t)
	ctx := context.Background()
	a := adoptedAnimal(t, store)

	for _, id := range []string{"b", "c", "a"} {
		require.NoError(t, store.Adoptions().Create(ctx, adoptions.Adoption{
			ID: id, AnimalID: a.ID, AdopterID: "adopter-1", Fee: decimal.Zero, CreatedAt: t0,
		}))
	}

	ret, err := svc.RegisterReturn(ctx, a.ID, "alergia")
	require.NoError(t, err)
	assert.Equal(t, "c", ret.AdoptionID)
}

func TestRegisterReturn_Errors(t *testing.T) {
	store, svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.RegisterReturn(ctx, "missing", "alergia")
	assert.ErrorIs(t, err, animals.ErrNotFound)

	a := adoptedAnimal(t, store)
	_, err = svc.RegisterReturn(ctx, a.ID, " ")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.RegisterReturn(ctx, a.ID, "alergia")
	assert.ErrorIs(t, err, adoptions.ErrNoAdoption)
	assert.Equal(t, 409, apperr.HTTPStatus(err))

	_, err = svc.RegisterAdoption(ctx, a.ID, "adopter-1", decimal.NewFromInt(150))
	require.NoError(t, err)
	_, err = svc.RegisterReturn(ctx, a.ID, "alergia")
	require.NoError(t, err)

	_, err = svc.RegisterReturn(ctx, a.ID, "de novo")
	assert.ErrorIs(t, err, adoptions.ErrAlreadyReturned)

	rets, err := store.Adoptions().ListReturnsByAnimal(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, rets, 1)
}

func TestRegisterReturn_RequiresAdoptedStatus(t *testing.T) {
	store, svc, _ := setup(t)
	ctx := context.Background()
	a := adoptedAnimal(t, store)
	require.NoError(t, store.Animals().UpdateStatus(ctx, a.ID, animals.StatusAdopted, animals.StatusReturned, t0))
	require.NoError(t, store.Animals().UpdateStatus(ctx, a.ID, animals.StatusReturned, animals.StatusAvailable, t0))

	_, err := svc.RegisterAdoption(ctx, a.ID, "adopter-1", decimal.Zero)
	require.NoError(t, err)

	_, err = svc.RegisterReturn(ctx, a.ID, "alergia")
	assert.ErrorIs(t, err, apperr.ErrInvalidTransition)
}
