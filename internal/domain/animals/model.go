package animals

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"pet-shelter/internal/platform/apperr"
)

// Species define las especies soportadas.
// @Enum CAT, DOG
type Species string

const (
	SpeciesCat Species = "CAT"
	SpeciesDog Species = "DOG"
)

// Size define el porte del animal.
// @Enum SMALL, MEDIUM, LARGE
type Size string

const (
	SizeSmall  Size = "SMALL"
	SizeMedium Size = "MEDIUM"
	SizeLarge  Size = "LARGE"
)

// Gender define el sexo del animal.
// @Enum MALE, FEMALE
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
)

// AgeGroup es la franja etaria usada por las tablas de compatibilidad y tarifa.
type AgeGroup string

const (
	AgeYoung  AgeGroup = "young_pet"
	AgeAdult  AgeGroup = "adult_pet"
	AgeSenior AgeGroup = "senior_pet"
)

const (
	youngUntilMonths = 12
	adultUntilMonths = 96
)

// CatTraits son los datos propios de gatos.
type CatTraits struct {
	Hypoallergenic bool
}

// DogTraits son los datos propios de perros.
type DogTraits struct {
	NeedsWalk bool
}

// Animal es un animal del refugio. Exactamente uno de Cat/Dog viene informado, según Species.
type Animal struct {
	ID string

	Species     Species
	Breed       string
	Name        string
	Gender      Gender
	AgeMonths   int
	Size        Size
	Temperament []string

	Status Status

	Cat *CatTraits
	Dog *DogTraits

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Animal) AgeGroup() AgeGroup {
	switch {
	case a.AgeMonths < youngUntilMonths:
		return AgeYoung
	case a.AgeMonths < adultUntilMonths:
		return AgeAdult
	default:
		return AgeSenior
	}
}

// HasAnyTemperament compara sin distinguir mayúsculas.
func (a Animal) HasAnyTemperament(tags []string) bool {
	for _, have := range a.Temperament {
		for _, want := range tags {
			if strings.EqualFold(have, strings.TrimSpace(want)) {
				return true
			}
		}
	}
	return false
}

// Trainable: sólo los perros reciben eventos de adiestramiento.
func (a Animal) Trainable() bool { return a.Species == SpeciesDog }

// Vaccinable: todas las especies.
func (a Animal) Vaccinable() bool { return a.Species == SpeciesDog || a.Species == SpeciesCat }

// Input agrupa los datos de alta. Status vacío = AVAILABLE.
type Input struct {
	Species        Species
	Breed          string
	Name           string
	Gender         Gender
	AgeMonths      int
	Size           Size
	Temperament    []string
	Status         Status
	Hypoallergenic bool
	NeedsWalk      bool
}

// New valida y normaliza un animal nuevo.
func New(id string, in Input, now time.Time) (Animal, error) {
	if strings.TrimSpace(id) == "" {
		return Animal{}, apperr.Validation("animal id required")
	}
	if !in.Species.Valid() {
		return Animal{}, apperr.Validation("species must be CAT or DOG")
	}

	a := Animal{
		ID:          id,
		Species:     in.Species,
		Breed:       strings.TrimSpace(in.Breed),
		Name:        capitalize(in.Name),
		Gender:      in.Gender,
		AgeMonths:   in.AgeMonths,
		Size:        in.Size,
		Temperament: NormalizeTemperament(in.Temperament),
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if a.Status == "" {
		a.Status = StatusAvailable
	}
	if !a.Status.Intake() {
		return Animal{}, apperr.Validation("intake status must be AVAILABLE, QUARANTINE or UNADOPTABLE")
	}

	switch a.Species {
	case SpeciesCat:
		a.Cat = &CatTraits{Hypoallergenic: in.Hypoallergenic}
	case SpeciesDog:
		a.Dog = &DogTraits{NeedsWalk: in.NeedsWalk}
	}

	if err := a.validateProfile(); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (a Animal) validateProfile() error {
	if a.Name == "" {
		return apperr.Validation("name required")
	}
	if a.Breed == "" {
		return apperr.Validation("breed required")
	}
	if a.Gender != GenderMale && a.Gender != GenderFemale {
		return apperr.Validation("gender must be MALE or FEMALE")
	}
	if a.AgeMonths < 0 {
		return apperr.Validation("age_months must be >= 0")
	}
	if !a.Size.Valid() {
		return apperr.Validation("size must be SMALL, MEDIUM or LARGE")
	}
	return nil
}

func (s Species) Valid() bool { return s == SpeciesCat || s == SpeciesDog }

func (s Size) Valid() bool {
	return s == SizeSmall || s == SizeMedium || s == SizeLarge
}

// NormalizeTemperament recorta, capitaliza y descarta tags vacíos.
func NormalizeTemperament(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if c := capitalize(t); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
