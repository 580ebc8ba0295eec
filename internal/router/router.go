package router

import (
	"net/http"
	"time"

	blobmem "pet-shelter/internal/adapters/blob/memory"
	"pet-shelter/internal/adapters/locking/local"
	mem "pet-shelter/internal/adapters/storage/memory"
	"pet-shelter/internal/domain/adopters"
	"pet-shelter/internal/domain/adoptions"
	"pet-shelter/internal/domain/animals"
	"pet-shelter/internal/domain/compatibility"
	"pet-shelter/internal/domain/contracts"
	"pet-shelter/internal/domain/events"
	"pet-shelter/internal/domain/fees"
	"pet-shelter/internal/domain/reservations"
	"pet-shelter/internal/domain/timeline"
	"pet-shelter/internal/middleware"
	"pet-shelter/internal/platform/config"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/platform/metrics"
	"pet-shelter/internal/ports/blobstore"
	"pet-shelter/internal/ports/locking"
	"pet-shelter/internal/ports/storage"

	_ "pet-shelter/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Store es lo que el router necesita del adapter de persistencia.
type Store interface {
	storage.TxRunner
	Animals() animals.Repository
	Adopters() adopters.Repository
	Reservations() reservations.Repository
	Adoptions() adoptions.Repository
	Events() events.Repository
}

type Options struct {
	// Opcionales: si no vienen se usan los adapters en memoria.
	Store  Store
	Locker locking.Locker
	Blobs  blobstore.Store

	// nil = settings embebidos por defecto.
	Settings *config.Settings

	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Now reemplaza el reloj de todos los servicios (tests).
	Now func() time.Time
}

func NewRouter(opts Options) (http.Handler, error) {
	if opts.Store == nil {
		opts.Store = mem.New()
	}
	if opts.Locker == nil {
		opts.Locker = local.New()
	}
	if opts.Blobs == nil {
		opts.Blobs = blobmem.New()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	settings := config.DefaultSettings()
	if opts.Settings != nil {
		settings = *opts.Settings
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	compat := settings.CompatibilityConfig()
	scorer, err := compatibility.NewScorer(compat)
	if err != nil {
		return nil, err
	}
	feeCfg, err := settings.FeeConfig()
	if err != nil {
		return nil, err
	}
	calc, err := fees.NewCalculator(feeCfg)
	if err != nil {
		return nil, err
	}

	st := opts.Store

	// Services por módulo
	animalsSvc := animals.NewService(st.Animals(), st, opts.Locker, opts.Logger)
	animalsSvc.SetClock(now)
	adoptersSvc := adopters.NewService(st.Adopters(), settings.AdopterPolicy())
	adoptersSvc.SetClock(now)
	eventsSvc := events.NewService(st.Events(), animalsSvc)
	eventsSvc.SetClock(now)
	adoptionsSvc := adoptions.NewService(st.Adoptions(), st.Animals(), st, opts.Locker, opts.Metrics, opts.Logger)
	adoptionsSvc.SetClock(now)
	contractsSvc := contracts.NewService(adoptionsSvc, st.Animals(), st.Adopters(), opts.Blobs, compat.WaryTemperaments, opts.Logger)
	contractsSvc.SetClock(now)
	timelineSvc := timeline.NewService(animalsSvc, eventsSvc, adoptionsSvc)

	reservationsSvc, err := reservations.NewService(reservations.Deps{
		Repo:          st.Reservations(),
		Animals:       st.Animals(),
		Adopters:      st.Adopters(),
		Scorer:        scorer,
		Fees:          calc,
		Ledger:        adoptionsSvc,
		Tx:            st,
		Locker:        opts.Locker,
		QueueDuration: settings.QueueDuration(),
		Metrics:       opts.Metrics,
		Log:           opts.Logger,
		Now:           now,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc)
	adopters.RegisterRoutes(r, adoptersSvc)
	events.RegisterRoutes(r, eventsSvc)
	reservations.RegisterRoutes(r, reservationsSvc)
	adoptions.RegisterRoutes(r, adoptionsSvc)
	contracts.RegisterRoutes(r, contractsSvc)
	timeline.RegisterRoutes(r, timelineSvc)

	return r, nil
}
