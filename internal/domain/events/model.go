package events

import (
	"time"

	"pet-shelter/internal/domain/events/details"
)

// EventType es el tipo de evento de cuidado.
// @Enum VACCINE, TRAINING, QUARANTINE
type EventType string

const (
	EventTypeVaccine    EventType = "VACCINE"
	EventTypeTraining   EventType = "TRAINING"
	EventTypeQuarantine EventType = "QUARANTINE"
)

func (t EventType) Valid() bool {
	return t == EventTypeVaccine || t == EventTypeTraining || t == EventTypeQuarantine
}

// CareEvent es append-only. Sólo viene informado el detalle que corresponde a Type.
type CareEvent struct {
	ID       string
	AnimalID string

	Type EventType

	OccurredAt time.Time
	RecordedAt time.Time

	Notes string

	Vaccine    *details.Vaccine
	Training   *details.Training
	Quarantine *details.Quarantine
}
