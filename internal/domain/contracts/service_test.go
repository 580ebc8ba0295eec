package contracts_test

import (
	"context"
	"testing"
	"time"

	blobmem "pet-shelter/internal/adapters/blob/memory"
	"pet-shelter/internal/adapters/storage/memory"
	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/contracts"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adoptedAt = time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)

type fixture struct {
	svc   *contracts.Service
	blobs *blobmem.Store
}

func setup(t *testing.T, species animals.Species, temperament ...string) fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	a := animals.Animal{
		ID: "animal-1", Species: species, Breed: "SRD", Name: "Pipoca",
		Gender: animals.GenderFemale, AgeMonths: 18, Size: animals.SizeLarge,
		Temperament: temperament, Status: animals.StatusAdopted,
		CreatedAt: adoptedAt, UpdatedAt: adoptedAt,
	}
	if species == animals.SpeciesCat {
		a.Cat = &animals.CatTraits{Hypoallergenic: true}
	} else {
		a.Dog = &animals.DogTraits{NeedsWalk: true}
	}
	require.NoError(t, store.Animals().Create(ctx, a))
	require.NoError(t, store.Adopters().Create(ctx, adopters.Adopter{
		ID: "adopter-1", Name: "Joana Lima", Age: 41, Housing: adopters.HousingHouse, UsableArea: 85.5,
		HasChildrenAtHome: true, CreatedAt: adoptedAt, UpdatedAt: adoptedAt,
	}))
	require.NoError(t, store.Adoptions().Create(ctx, adoptions.Adoption{
		ID: "adoption-1", AnimalID: a.ID, AdopterID: "adopter-1",
		Fee: decimal.RequireFromString("150"), CreatedAt: adoptedAt,
	}))

	blobs := blobmem.New()
	svc := contracts.NewService(store.Adoptions(), store.Animals(), store.Adopters(), blobs, []string{"Arisco", "Bravo"}, nil)
	svc.SetClock(func() time.Time { return adoptedAt.Add(time.Hour) })
	return fixture{svc: svc, blobs: blobs}
}

func TestRender_Dog(t *testing.T) {
	f := setup(t, animals.SpeciesDog, "Calmo", "Arisco")

	text, err := f.svc.Render(context.Background(), "adoption-1")
	require.NoError(t, err)

	for _, want := range []string{
		"CONTRATO DE ADOPCIÓN DE ANIMAL",
		"Fecha de adopción: 02/06/2025 15:30",
		"Nombre: Joana Lima",
		"Edad: 41 años",
		"Tipo de vivienda: Casa",
		"Superficie útil: 85.50 m²",
		"¿Hay niños en la vivienda?: Sí",
		"¿Tiene otros animales?: No",
		"Especie: Perro",
		"Sexo: Hembra",
		"Tamaño: Grande",
		"Edad: 18 meses",
		"Necesita paseos: Sí",
		"¿Es arisco?: Sí",
		"Temperamento: Calmo, Arisco",
		"Importe abonado: $ 150.00",
		"Fecha: 02/06/2025 16:30",
	} {
		assert.Contains(t, text, want)
	}
	assert.NotContains(t, text, "Hipoalergénico")
}

func TestRender_Cat(t *testing.T) {
	f := setup(t, animals.SpeciesCat, "Dócil")

	text, err := f.svc.Render(context.Background(), "adoption-1")
	require.NoError(t, err)
	assert.Contains(t, text, "Especie: Gato")
	assert.Contains(t, text, "Hipoalergénico: Sí")
	assert.Contains(t, text, "¿Es arisco?: No")
	assert.NotContains(t, text, "Necesita paseos")
}

func TestRender_UnknownAdoption(t *testing.T) {
	f := setup(t, animals.SpeciesDog)

	_, err := f.svc.Render(context.Background(), "missing")
	assert.Error(t, err)
}

func TestArchive_IsCreateOnly(t *testing.T) {
	f := setup(t, animals.SpeciesDog, "Calmo")
	ctx := context.Background()

	_, err := f.svc.Archived(ctx, "adoption-1")
	assert.ErrorIs(t, err, contracts.ErrNotArchived)

	obj, err := f.svc.Archive(ctx, "adoption-1")
	require.NoError(t, err)
	assert.Equal(t, "contracts/adoption-1.txt", obj.Key)
	assert.Equal(t, contracts.Key("adoption-1"), obj.Key)
	assert.Positive(t, obj.Size)

	_, err = f.svc.Archive(ctx, "adoption-1")
	assert.ErrorIs(t, err, contracts.ErrAlreadyArchived)

	stored, err := f.svc.Archived(ctx, "adoption-1")
	require.NoError(t, err)
	assert.Equal(t, "text/plain; charset=utf-8", stored.ContentType)

	text, err := f.svc.Render(ctx, "adoption-1")
	require.NoError(t, err)
	assert.Equal(t, text, string(stored.Body))
}
