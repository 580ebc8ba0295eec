// Package memory implementa todos los repositorios sobre un único estado en memoria.
// Las transacciones trabajan sobre una copia del estado y la publican sólo si fn
// no devuelve error; mientras tanto sostienen el lock de escritura del store.
package memory

import (
	"context"
	"maps"
	"sync"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/reservations"
)

type state struct {
	animals      map[string]animals.Animal
	adopters     map[string]adopters.Adopter
	reservations map[string]reservations.Entry
	adoptions    map[string]adoptions.Adoption
	returns      map[string]adoptions.Return // por adoption id
	events       map[string]events.CareEvent
}

func newState() *state {
	return &state{
		animals:      map[string]animals.Animal{},
		adopters:     map[string]adopters.Adopter{},
		reservations: map[string]reservations.Entry{},
		adoptions:    map[string]adoptions.Adoption{},
		returns:      map[string]adoptions.Return{},
		events:       map[string]events.CareEvent{},
	}
}

// clone copia los mapas; los valores se reemplazan enteros, nunca se mutan in situ.
func (s *state) clone() *state {
	return &state{
		animals:      maps.Clone(s.animals),
		adopters:     maps.Clone(s.adopters),
		reservations: maps.Clone(s.reservations),
		adoptions:    maps.Clone(s.adoptions),
		returns:      maps.Clone(s.returns),
		events:       maps.Clone(s.events),
	}
}

type Store struct {
	mu sync.RWMutex
	st *state
}

func New() *Store {
	return &Store{st: newState()}
}

type txKey struct{}

type txState struct {
	owner *Store
	st    *state
}

func (s *Store) txFrom(ctx context.Context) (*state, bool) {
	tx, ok := ctx.Value(txKey{}).(*txState)
	if !ok || tx.owner != s {
		return nil, false
	}
	return tx.st, true
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := s.txFrom(ctx); ok {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(context.WithValue(ctx, txKey{}, &txState{owner: s, st: work})); err != nil {
		return err
	}
	s.st = work
	return nil
}

func (s *Store) read(ctx context.Context, fn func(st *state) error) error {
	if st, ok := s.txFrom(ctx); ok {
		return fn(st)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.st)
}

func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if st, ok := s.txFrom(ctx); ok {
		return fn(st)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

func (s *Store) Animals() animals.Repository           { return &animalRepo{s: s} }
func (s *Store) Adopters() adopters.Repository         { return &adopterRepo{s: s} }
func (s *Store) Reservations() reservations.Repository { return &reservationRepo{s: s} }
func (s *Store) Adoptions() adoptions.Repository       { return &adoptionRepo{s: s} }
func (s *Store) Events() events.Repository             { return &eventRepo{s: s} }
