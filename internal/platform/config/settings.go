package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/compatibility"
	"pet-shelter/internal/domain/fees"
	"pet-shelter/internal/platform/apperr"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"
)

//go:embed default_settings.yaml
var defaultSettings []byte

// Settings es el archivo de reglas de negocio. Los montos van como string
// para no pasar por float.
type Settings struct {
	Policies      PolicySettings        `yaml:"policies"`
	Compatibility CompatibilitySettings `yaml:"compatibility"`
	Fees          FeeSettings           `yaml:"fees"`
}

type PolicySettings struct {
	MinimumAdopterAge  int `yaml:"minimum_adopter_age"`
	QueueDurationHours int `yaml:"queue_duration_hours"`
}

type CompatibilitySettings struct {
	Weights struct {
		SizeVsArea            float64 `yaml:"size_vs_area"`
		SizeVsHousing         float64 `yaml:"size_vs_housing"`
		PetAgeVsExperience    float64 `yaml:"pet_age_vs_has_experience"`
		TemperamentVsChildren float64 `yaml:"temperament_vs_has_children"`
		AdopterAge            float64 `yaml:"adopter_age"`
		OtherAnimals          float64 `yaml:"other_animals"`
	} `yaml:"weights"`

	MinimumArea map[animals.Size]float64 `yaml:"minimum_area"`
	SizeVsArea  map[animals.Size]struct {
		AboveMin float64 `yaml:"above_min"`
		BelowMin float64 `yaml:"below_min"`
	} `yaml:"size_vs_area"`
	SizeVsHousing      map[animals.Size]map[adopters.HousingType]float64 `yaml:"size_vs_housing"`
	PetAgeVsExperience map[animals.AgeGroup]struct {
		HasExperience float64 `yaml:"has_experience"`
		None          float64 `yaml:"none"`
	} `yaml:"pet_age_vs_has_experience"`

	WaryTemperaments      []string `yaml:"wary_temperaments"`
	TemperamentVsChildren struct {
		Wary    childrenSettings `yaml:"wary"`
		Regular childrenSettings `yaml:"regular"`
	} `yaml:"temperament_vs_has_children"`

	AdopterAge   map[adopters.AgeGroup]float64 `yaml:"adopter_age"`
	OtherAnimals struct {
		With    float64 `yaml:"with_other_animals"`
		Without float64 `yaml:"without_other_animals"`
	} `yaml:"other_animals"`
}

type childrenSettings struct {
	HasChildren float64 `yaml:"has_children"`
	None        float64 `yaml:"none"`
}

type FeeSettings struct {
	BaseFee        string                      `yaml:"base_fee"`
	AgeAdjustments map[animals.AgeGroup]string `yaml:"age_adjustments"`
	MinimumFee     string                      `yaml:"minimum_fee"`
	MaximumFee     string                      `yaml:"maximum_fee"`
}

// LoadSettings lee path; con path vacío usa las reglas embebidas.
func LoadSettings(path string) (Settings, error) {
	if path == "" {
		return ParseSettings(bytes.NewReader(defaultSettings))
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()
	return ParseSettings(f)
}

func DefaultSettings() Settings {
	s, err := ParseSettings(bytes.NewReader(defaultSettings))
	if err != nil {
		panic(fmt.Sprintf("embedded settings: %v", err))
	}
	return s
}

// ParseSettings decodifica YAML (o JSON) rechazando claves desconocidas y valida el resultado.
func ParseSettings(r io.Reader) (Settings, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return Settings{}, apperr.Validation("settings file is empty")
		}
		return Settings{}, fmt.Errorf("%w: decode settings: %v", apperr.ErrValidation, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Policies.MinimumAdopterAge < 0 || s.Policies.MinimumAdopterAge > adopters.MaxAge {
		return apperr.Validation("minimum_adopter_age must be within 0..%d", adopters.MaxAge)
	}
	if s.Policies.QueueDurationHours <= 0 {
		return apperr.Validation("queue_duration_hours must be > 0")
	}
	if err := s.CompatibilityConfig().Validate(); err != nil {
		return err
	}
	cfg, err := s.FeeConfig()
	if err != nil {
		return err
	}
	return cfg.Validate()
}

func (s Settings) AdopterPolicy() adopters.Policy {
	return adopters.Policy{MinimumAge: s.Policies.MinimumAdopterAge}
}

func (s Settings) QueueDuration() time.Duration {
	return time.Duration(s.Policies.QueueDurationHours) * time.Hour
}

func (s Settings) CompatibilityConfig() compatibility.Config {
	c := s.Compatibility
	out := compatibility.Config{
		Weights: compatibility.Weights{
			SizeVsArea:            c.Weights.SizeVsArea,
			SizeVsHousing:         c.Weights.SizeVsHousing,
			PetAgeVsExperience:    c.Weights.PetAgeVsExperience,
			TemperamentVsChildren: c.Weights.TemperamentVsChildren,
			AdopterAge:            c.Weights.AdopterAge,
			OtherAnimals:          c.Weights.OtherAnimals,
		},
		MinimumArea:        c.MinimumArea,
		SizeVsArea:         make(map[animals.Size]compatibility.AreaScore, len(c.SizeVsArea)),
		SizeVsHousing:      c.SizeVsHousing,
		PetAgeVsExperience: make(map[animals.AgeGroup]compatibility.ExperienceScore, len(c.PetAgeVsExperience)),
		WaryTemperaments:   c.WaryTemperaments,
		WaryVsChildren: compatibility.ChildrenScore{
			HasChildren: c.TemperamentVsChildren.Wary.HasChildren,
			None:        c.TemperamentVsChildren.Wary.None,
		},
		RegularVsChildren: compatibility.ChildrenScore{
			HasChildren: c.TemperamentVsChildren.Regular.HasChildren,
			None:        c.TemperamentVsChildren.Regular.None,
		},
		AdopterAge:   c.AdopterAge,
		OtherAnimals: compatibility.OtherAnimalsScore{Yes: c.OtherAnimals.With, No: c.OtherAnimals.Without},
	}
	for k, v := range c.SizeVsArea {
		out.SizeVsArea[k] = compatibility.AreaScore{AboveMin: v.AboveMin, BelowMin: v.BelowMin}
	}
	for k, v := range c.PetAgeVsExperience {
		out.PetAgeVsExperience[k] = compatibility.ExperienceScore{HasExperience: v.HasExperience, None: v.None}
	}
	return out
}

func (s Settings) FeeConfig() (fees.Config, error) {
	f := s.Fees
	base, err := money("base_fee", f.BaseFee)
	if err != nil {
		return fees.Config{}, err
	}
	minFee, err := money("minimum_fee", f.MinimumFee)
	if err != nil {
		return fees.Config{}, err
	}
	maxFee, err := money("maximum_fee", f.MaximumFee)
	if err != nil {
		return fees.Config{}, err
	}

	adj := make(map[animals.AgeGroup]decimal.Decimal, len(f.AgeAdjustments))
	for g, v := range f.AgeAdjustments {
		d, err := money("age_adjustments."+string(g), v)
		if err != nil {
			return fees.Config{}, err
		}
		adj[g] = d
	}
	return fees.Config{
		BaseFee:        base,
		AgeAdjustments: adj,
		Limits:         fees.Limits{Minimum: minFee, Maximum: maxFee},
	}, nil
}

func money(name, v string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, apperr.Validation("%s: invalid amount %q", name, v)
	}
	return d, nil
}
