package adoptions

import (
	"time"

	"github.com/shopspring/decimal"
)

// Adoption es un registro append-only del ledger.
type Adoption struct {
	ID        string
	AnimalID  string
	AdopterID string
	Fee       decimal.Decimal
	CreatedAt time.Time
}

// Return es la devolución de una adopción. Como mucho una por adopción.
type Return struct {
	AdoptionID string
	AnimalID   string
	Reason     string
	CreatedAt  time.Time
}

type ReturnedAdoption struct {
	Adoption Adoption
	Return   Return
}

type Listing struct {
	Active   []Adoption
	Returned []ReturnedAdoption
}
