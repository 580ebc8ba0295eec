package compatibility

import (
	"math"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/animals"

	"github.com/shopspring/decimal"
)

const maxRate = 100.0

// Breakdown detalla los seis sub-scores ya ponderados.
type Breakdown struct {
	SizeVsArea            float64 `json:"size_vs_area"`
	SizeVsHousing         float64 `json:"size_vs_housing"`
	PetAgeVsExperience    float64 `json:"pet_age_vs_has_experience"`
	TemperamentVsChildren float64 `json:"temperament_vs_has_children"`
	AdopterAge            float64 `json:"adopter_age"`
	OtherAnimals          float64 `json:"other_animals"`
	Total                 float64 `json:"total"`
}

type Scorer struct {
	cfg Config
}

func NewScorer(cfg Config) (*Scorer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{cfg: cfg}, nil
}

// Rate devuelve la compatibilidad en [0,100] redondeada a 2 decimales.
func (s *Scorer) Rate(a animals.Animal, ad adopters.Adopter) float64 {
	return s.Breakdown(a, ad).Total
}

func (s *Scorer) Breakdown(a animals.Animal, ad adopters.Adopter) Breakdown {
	w := s.cfg.Weights
	b := Breakdown{
		SizeVsArea:            s.sizeVsArea(a, ad) * w.SizeVsArea,
		SizeVsHousing:         s.cfg.SizeVsHousing[a.Size][ad.Housing] * w.SizeVsHousing,
		PetAgeVsExperience:    s.petAgeVsExperience(a, ad) * w.PetAgeVsExperience,
		TemperamentVsChildren: s.temperamentVsChildren(a, ad) * w.TemperamentVsChildren,
		AdopterAge:            s.cfg.AdopterAge[ad.AgeGroup()] * w.AdopterAge,
		OtherAnimals:          s.otherAnimals(ad) * w.OtherAnimals,
	}

	total := b.SizeVsArea + b.SizeVsHousing + b.PetAgeVsExperience +
		b.TemperamentVsChildren + b.AdopterAge + b.OtherAnimals
	total = math.Max(0, math.Min(total, maxRate))
	b.Total = decimal.NewFromFloat(total).Round(2).InexactFloat64()
	return b
}

func (s *Scorer) sizeVsArea(a animals.Animal, ad adopters.Adopter) float64 {
	table := s.cfg.SizeVsArea[a.Size]
	if ad.UsableArea >= s.cfg.MinimumArea[a.Size] {
		return table.AboveMin
	}
	return table.BelowMin
}

func (s *Scorer) petAgeVsExperience(a animals.Animal, ad adopters.Adopter) float64 {
	row := s.cfg.PetAgeVsExperience[a.AgeGroup()]
	if ad.HasPetExperience {
		return row.HasExperience
	}
	return row.None
}

func (s *Scorer) temperamentVsChildren(a animals.Animal, ad adopters.Adopter) float64 {
	row := s.cfg.RegularVsChildren
	if a.HasAnyTemperament(s.cfg.WaryTemperaments) {
		row = s.cfg.WaryVsChildren
	}
	if ad.HasChildrenAtHome {
		return row.HasChildren
	}
	return row.None
}

func (s *Scorer) otherAnimals(ad adopters.Adopter) float64 {
	if ad.HasOtherAnimals {
		return s.cfg.OtherAnimals.Yes
	}
	return s.cfg.OtherAnimals.No
}
