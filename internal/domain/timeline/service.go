// Package timeline arma la historia de un animal: eventos de cuidado, adopciones y devoluciones.
// Se reconstruye entera en cada consulta; no guarda estado propio.
package timeline

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/events/details"

	"github.com/shopspring/decimal"
)

// EntryType nombra el origen de la entrada; también es el último criterio de orden.
type EntryType string

const (
	TypeAdoption   EntryType = "ADOPTION"
	TypeReturn     EntryType = "RETURN"
	TypeVaccine    EntryType = EntryType(events.EventTypeVaccine)
	TypeTraining   EntryType = EntryType(events.EventTypeTraining)
	TypeQuarantine EntryType = EntryType(events.EventTypeQuarantine)
)

// Entry es un item del timeline. Sólo viene el detalle que corresponde a Type.
type Entry struct {
	ID         string
	Type       EntryType
	OccurredAt time.Time

	Notes string

	AdopterID string
	Fee       *decimal.Decimal

	AdoptionID string
	Reason     string

	Vaccine    *details.Vaccine
	Training   *details.Training
	Quarantine *details.Quarantine
}

// Compare: occurred_at asc, id asc, tipo asc.
func Compare(a, b Entry) int {
	if c := a.OccurredAt.Compare(b.OccurredAt); c != 0 {
		return c
	}
	if c := cmp.Compare(a.ID, b.ID); c != 0 {
		return c
	}
	return cmp.Compare(a.Type, b.Type)
}

type AnimalLookup interface {
	GetByID(ctx context.Context, id string) (animals.Animal, error)
}

type EventLister interface {
	ListByAnimal(ctx context.Context, animalID string, filter events.ListFilter) ([]events.CareEvent, error)
}

type LedgerReader interface {
	ListForAnimal(ctx context.Context, animalID string) ([]adoptions.Adoption, []adoptions.Return, error)
}

type Service struct {
	animals AnimalLookup
	events  EventLister
	ledger  LedgerReader
}

func NewService(animalLookup AnimalLookup, ev EventLister, ledger LedgerReader) *Service {
	return &Service{animals: animalLookup, events: ev, ledger: ledger}
}

func (s *Service) Build(ctx context.Context, animalID string) ([]Entry, error) {
	animalID = strings.TrimSpace(animalID)
	if _, err := s.animals.GetByID(ctx, animalID); err != nil {
		return nil, err
	}

	care, err := s.events.ListByAnimal(ctx, animalID, events.ListFilter{})
	if err != nil {
		return nil, err
	}
	items, returns, err := s.ledger.ListForAnimal(ctx, animalID)
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(care)+len(items)+len(returns))
	for _, e := range care {
		out = append(out, Entry{
			ID:         e.ID,
			Type:       EntryType(e.Type),
			OccurredAt: e.OccurredAt,
			Notes:      e.Notes,
			Vaccine:    e.Vaccine,
			Training:   e.Training,
			Quarantine: e.Quarantine,
		})
	}
	for _, a := range items {
		fee := a.Fee
		out = append(out, Entry{
			ID:         a.ID,
			Type:       TypeAdoption,
			OccurredAt: a.CreatedAt,
			AdopterID:  a.AdopterID,
			Fee:        &fee,
		})
	}
	// la devolución no tiene id propio: usa el de su adopción
	for _, r := range returns {
		out = append(out, Entry{
			ID:         r.AdoptionID,
			Type:       TypeReturn,
			OccurredAt: r.CreatedAt,
			AdoptionID: r.AdoptionID,
			Reason:     r.Reason,
		})
	}

	slices.SortFunc(out, Compare)
	return out, nil
}
