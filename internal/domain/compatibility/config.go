package compatibility

import (
	"fmt"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/platform/apperr"
)

// Weights multiplica cada sub-score (0..100) antes de sumar.
type Weights struct {
	SizeVsArea            float64
	SizeVsHousing         float64
	PetAgeVsExperience    float64
	TemperamentVsChildren float64
	AdopterAge            float64
	OtherAnimals          float64
}

type AreaScore struct {
	AboveMin float64
	BelowMin float64
}

type ExperienceScore struct {
	HasExperience float64
	None          float64
}

type ChildrenScore struct {
	HasChildren float64
	None        float64
}

type OtherAnimalsScore struct {
	Yes float64
	No  float64
}

// Config son las tablas y pesos del scorer. Se inyecta; no hay estado global.
type Config struct {
	Weights Weights

	MinimumArea        map[animals.Size]float64
	SizeVsArea         map[animals.Size]AreaScore
	SizeVsHousing      map[animals.Size]map[adopters.HousingType]float64
	PetAgeVsExperience map[animals.AgeGroup]ExperienceScore

	WaryTemperaments  []string
	WaryVsChildren    ChildrenScore
	RegularVsChildren ChildrenScore

	AdopterAge   map[adopters.AgeGroup]float64
	OtherAnimals OtherAnimalsScore
}

var (
	sizes       = []animals.Size{animals.SizeSmall, animals.SizeMedium, animals.SizeLarge}
	housings    = []adopters.HousingType{adopters.HousingHouse, adopters.HousingApartment}
	petAges     = []animals.AgeGroup{animals.AgeYoung, animals.AgeAdult, animals.AgeSenior}
	adopterAges = []adopters.AgeGroup{adopters.AgeYoung, adopters.AgeAdult, adopters.AgeSenior}
)

// Validate exige tablas completas, scores en [0,100] y pesos no negativos.
func (c Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"size_vs_area":                w.SizeVsArea,
		"size_vs_housing":             w.SizeVsHousing,
		"pet_age_vs_has_experience":   w.PetAgeVsExperience,
		"temperament_vs_has_children": w.TemperamentVsChildren,
		"adopter_age":                 w.AdopterAge,
		"other_animals":               w.OtherAnimals,
	} {
		if v < 0 {
			return apperr.Validation("weight %s must be >= 0", name)
		}
	}

	for _, sz := range sizes {
		if v, ok := c.MinimumArea[sz]; !ok || v < 0 {
			return apperr.Validation("minimum_area missing or negative for %s", sz)
		}
		as, ok := c.SizeVsArea[sz]
		if !ok {
			return apperr.Validation("size_vs_area missing %s", sz)
		}
		if err := scores(fmt.Sprintf("size_vs_area.%s", sz), as.AboveMin, as.BelowMin); err != nil {
			return err
		}
		for _, h := range housings {
			v, ok := c.SizeVsHousing[sz][h]
			if !ok {
				return apperr.Validation("size_vs_housing missing %s/%s", sz, h)
			}
			if err := scores(fmt.Sprintf("size_vs_housing.%s.%s", sz, h), v); err != nil {
				return err
			}
		}
	}
	for _, g := range petAges {
		es, ok := c.PetAgeVsExperience[g]
		if !ok {
			return apperr.Validation("pet_age_vs_has_experience missing %s", g)
		}
		if err := scores(fmt.Sprintf("pet_age_vs_has_experience.%s", g), es.HasExperience, es.None); err != nil {
			return err
		}
	}
	for _, g := range adopterAges {
		v, ok := c.AdopterAge[g]
		if !ok {
			return apperr.Validation("adopter_age missing %s", g)
		}
		if err := scores(fmt.Sprintf("adopter_age.%s", g), v); err != nil {
			return err
		}
	}
	if err := scores("temperament_vs_has_children", c.WaryVsChildren.HasChildren, c.WaryVsChildren.None,
		c.RegularVsChildren.HasChildren, c.RegularVsChildren.None); err != nil {
		return err
	}
	return scores("has_other_animals", c.OtherAnimals.Yes, c.OtherAnimals.No)
}

func scores(name string, vs ...float64) error {
	for _, v := range vs {
		if v < 0 || v > 100 {
			return apperr.Validation("score %s must be within 0..100", name)
		}
	}
	return nil
}
