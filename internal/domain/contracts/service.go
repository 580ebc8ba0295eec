// Package contracts genera el contrato textual de una adopción y lo archiva en el blob store.
package contracts

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/platform/apperr"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/ports/blobstore"
	"pet-shelter/internal/ports/storage"

	"github.com/shopspring/decimal"
)

const contentType = "text/plain; charset=utf-8"

var (
	ErrAlreadyArchived = fmt.Errorf("contract already archived: %w", apperr.ErrConflict)
	ErrNotArchived     = fmt.Errorf("contract archive %w", apperr.ErrNotFound)
)

//go:embed contract.tmpl
var contractText string

var contractTmpl = template.Must(template.New("contract").Funcs(template.FuncMap{
	"date":        func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"yesno":       yesNo,
	"area":        func(v float64) string { return decimal.NewFromFloat(v).StringFixed(2) },
	"housing":     housingLabel,
	"species":     speciesLabel,
	"gender":      genderLabel,
	"size":        sizeLabel,
	"temperament": func(tags []string) string { return strings.Join(tags, ", ") },
}).Parse(contractText))

// AdoptionLookup es lo que el contrato lee del ledger.
type AdoptionLookup interface {
	GetByID(ctx context.Context, id string) (adoptions.Adoption, error)
}

type Service struct {
	adoptions AdoptionLookup
	animals   animals.Repository
	adopters  adopters.Repository
	blobs     blobstore.Store
	wary      []string
	log       logger.Logger
	now       func() time.Time
}

func NewService(ledger AdoptionLookup, animalRepo animals.Repository, adopterRepo adopters.Repository, blobs blobstore.Store, wary []string, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		adoptions: ledger,
		animals:   animalRepo,
		adopters:  adopterRepo,
		blobs:     blobs,
		wary:      wary,
		log:       log.With(map[string]any{"module": "contracts"}),
		now:       time.Now,
	}
}

type contractData struct {
	Adoption    adoptions.Adoption
	Animal      animals.Animal
	Adopter     adopters.Adopter
	Wary        bool
	GeneratedAt time.Time
}

// Render arma el contrato a partir de la adopción y los datos actuales del animal y el adoptante.
func (s *Service) Render(ctx context.Context, adoptionID string) (string, error) {
	ad, err := s.adoptions.GetByID(ctx, strings.TrimSpace(adoptionID))
	if err != nil {
		return "", err
	}
	a, err := s.animals.GetByID(ctx, ad.AnimalID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", animals.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	who, err := s.adopters.GetByID(ctx, ad.AdopterID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", adopters.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err = contractTmpl.Execute(&buf, contractData{
		Adoption:    ad,
		Animal:      a,
		Adopter:     who,
		Wary:        a.HasAnyTemperament(s.wary),
		GeneratedAt: s.now(),
	})
	if err != nil {
		return "", fmt.Errorf("render contract: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Archive guarda el contrato una sola vez por adopción.
func (s *Service) Archive(ctx context.Context, adoptionID string) (blobstore.Object, error) {
	text, err := s.Render(ctx, adoptionID)
	if err != nil {
		return blobstore.Object{}, err
	}

	obj, err := s.blobs.Put(ctx, Key(adoptionID), []byte(text), contentType)
	if errors.Is(err, blobstore.ErrExists) {
		return blobstore.Object{}, ErrAlreadyArchived
	}
	if err != nil {
		return blobstore.Object{}, fmt.Errorf("archive contract: %w", err)
	}
	s.log.Info("contract archived", map[string]any{"adoption_id": adoptionID, "key": obj.Key, "size": obj.Size})
	return obj, nil
}

// Archived devuelve el contrato archivado tal como se guardó.
func (s *Service) Archived(ctx context.Context, adoptionID string) (blobstore.Object, error) {
	obj, err := s.blobs.Get(ctx, Key(adoptionID))
	if errors.Is(err, blobstore.ErrNotFound) {
		return blobstore.Object{}, ErrNotArchived
	}
	return obj, err
}

func Key(adoptionID string) string {
	return "contracts/" + strings.TrimSpace(adoptionID) + ".txt"
}

func yesNo(v bool) string {
	if v {
		return "Sí"
	}
	return "No"
}

func housingLabel(h adopters.HousingType) string {
	switch h {
	case adopters.HousingHouse:
		return "Casa"
	case adopters.HousingApartment:
		return "Departamento"
	}
	return string(h)
}

func speciesLabel(s animals.Species) string {
	switch s {
	case animals.SpeciesCat:
		return "Gato"
	case animals.SpeciesDog:
		return "Perro"
	}
	return string(s)
}

func genderLabel(g animals.Gender) string {
	switch g {
	case animals.GenderMale:
		return "Macho"
	case animals.GenderFemale:
		return "Hembra"
	}
	return string(g)
}

func sizeLabel(s animals.Size) string {
	switch s {
	case animals.SizeSmall:
		return "Pequeño"
	case animals.SizeMedium:
		return "Mediano"
	case animals.SizeLarge:
		return "Grande"
	}
	return string(s)
}

// SetClock reemplaza el reloj del servicio. nil no cambia nada.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}
