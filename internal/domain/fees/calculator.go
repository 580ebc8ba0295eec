// Package fees calcula la tarifa de adopción: base + ajuste por franja etaria,
// acotada a [mínimo, máximo].
package fees

import (
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/platform/apperr"

	"github.com/shopspring/decimal"
)

type Limits struct {
	Minimum decimal.Decimal
	Maximum decimal.Decimal
}

type Config struct {
	BaseFee        decimal.Decimal
	AgeAdjustments map[animals.AgeGroup]decimal.Decimal
	Limits         Limits
}

func (c Config) Validate() error {
	if c.BaseFee.IsNegative() {
		return apperr.Validation("base_fee must be >= 0")
	}
	if c.Limits.Minimum.IsNegative() {
		return apperr.Validation("minimum_fee must be >= 0")
	}
	if c.Limits.Maximum.LessThan(c.Limits.Minimum) {
		return apperr.Validation("maximum_fee must be >= minimum_fee")
	}
	for _, g := range []animals.AgeGroup{animals.AgeYoung, animals.AgeAdult, animals.AgeSenior} {
		if _, ok := c.AgeAdjustments[g]; !ok {
			return apperr.Validation("age_adjustments missing %s", g)
		}
	}
	return nil
}

type Calculator struct {
	cfg Config
}

func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

func (c *Calculator) Fee(a animals.Animal) decimal.Decimal {
	fee := c.cfg.BaseFee.Add(c.cfg.AgeAdjustments[a.AgeGroup()])
	fee = decimal.Max(c.cfg.Limits.Minimum, decimal.Min(fee, c.cfg.Limits.Maximum))
	return fee.Round(2)
}
