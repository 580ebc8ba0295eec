package adopters

import (
	"fmt"
	"strings"
	"time"

	"pet-shelter/internal/platform/apperr"
)

// HousingType es el tipo de vivienda del adoptante.
// @Enum HOUSE, APARTMENT
type HousingType string

const (
	HousingHouse     HousingType = "HOUSE"
	HousingApartment HousingType = "APARTMENT"
)

type AgeGroup string

const (
	AgeYoung  AgeGroup = "young"
	AgeAdult  AgeGroup = "adult"
	AgeSenior AgeGroup = "senior"
)

const (
	MaxAge          = 128
	youngUntilYears = 25
	adultUntilYears = 60
)

var ErrPolicyNotMet = fmt.Errorf("adopter: %w", apperr.ErrPolicy)

// Policy son las reglas del refugio que aplican al alta de adoptantes.
type Policy struct {
	MinimumAge int
}

type Adopter struct {
	ID   string
	Name string
	Age  int

	Housing    HousingType
	UsableArea float64 // m²

	HasPetExperience  bool
	HasChildrenAtHome bool
	HasOtherAnimals   bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Adopter) AgeGroup() AgeGroup {
	switch {
	case a.Age < youngUntilYears:
		return AgeYoung
	case a.Age < adultUntilYears:
		return AgeAdult
	default:
		return AgeSenior
	}
}

type Input struct {
	Name              string
	Age               int
	Housing           HousingType
	UsableArea        float64
	HasPetExperience  bool
	HasChildrenAtHome bool
	HasOtherAnimals   bool
}

// New valida un adoptante. Edad fuera de 0..128 es error de validación; por debajo
// del mínimo de la política es ErrPolicyNotMet.
func New(id string, in Input, p Policy, now time.Time) (Adopter, error) {
	if strings.TrimSpace(id) == "" {
		return Adopter{}, apperr.Validation("adopter id required")
	}
	a := Adopter{
		ID:                id,
		Name:              strings.TrimSpace(in.Name),
		Age:               in.Age,
		Housing:           HousingType(strings.ToUpper(strings.TrimSpace(string(in.Housing)))),
		UsableArea:        in.UsableArea,
		HasPetExperience:  in.HasPetExperience,
		HasChildrenAtHome: in.HasChildrenAtHome,
		HasOtherAnimals:   in.HasOtherAnimals,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := a.validate(p); err != nil {
		return Adopter{}, err
	}
	return a, nil
}

func (a Adopter) validate(p Policy) error {
	if a.Name == "" {
		return apperr.Validation("name required")
	}
	if a.Age < 0 || a.Age > MaxAge {
		return apperr.Validation("age must be between 0 and %d", MaxAge)
	}
	if a.Age < p.MinimumAge {
		return fmt.Errorf("%w: minimum age is %d", ErrPolicyNotMet, p.MinimumAge)
	}
	if a.Housing != HousingHouse && a.Housing != HousingApartment {
		return apperr.Validation("housing_type must be HOUSE or APARTMENT")
	}
	if a.UsableArea <= 0 {
		return apperr.Validation("usable_area must be > 0")
	}
	return nil
}
