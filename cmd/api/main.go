package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	blobmem "pet-shelter/internal/adapters/blob/memory"
	blobs3 "pet-shelter/internal/adapters/blob/s3"
	"pet-shelter/internal/adapters/locking/local"
	"pet-shelter/internal/adapters/locking/redislock"
	mem "pet-shelter/internal/adapters/storage/memory"
	pg "pet-shelter/internal/adapters/storage/postgres"
	"pet-shelter/internal/adapters/storage/sqlite"
	"pet-shelter/internal/platform/config"
	"pet-shelter/internal/platform/httpclient"
	"pet-shelter/internal/platform/logger"
	"pet-shelter/internal/platform/metrics"
	"pet-shelter/internal/router"
)

//go:generate swag init --dir ../.. --generalInfo cmd/api/main.go --output ../../docs

// @title Pet Shelter API
// @version 1.0
// @description Reservas, adopciones y devoluciones de un refugio de animales.
// @BasePath /
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logger.NewFromEnv().Error("invalid config", map[string]any{"error": err})
		os.Exit(1)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	settings, err := config.LoadSettings(cfg.SettingsPath)
	if err != nil {
		return err
	}

	var closers []io.Closer
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i].Close()
		}
	}()

	opts := router.Options{
		Settings: &settings,
		Logger:   log,
		Metrics:  metrics.New(),
	}

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := pg.Open(ctx, cfg.DBDSN)
		if err != nil {
			return err
		}
		closers = append(closers, db)
		opts.Store = db
	case config.StorageSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return err
		}
		closers = append(closers, db)
		opts.Store = db
	default:
		opts.Store = mem.New()
	}
	log.Info("storage ready", map[string]any{"driver": cfg.StorageDriver})

	if cfg.RedisAddr != "" {
		rdb, err := redislock.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		closers = append(closers, rdb)
		opts.Locker = redislock.New(rdb, redislock.Options{Log: log})
		log.Info("using redis locks", map[string]any{"addr": cfg.RedisAddr})
	} else {
		opts.Locker = local.New()
	}

	switch cfg.BlobDriver {
	case config.BlobS3:
		store, err := blobs3.New(ctx, blobs3.Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			Prefix:          cfg.S3.Prefix,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
			PathStyle:       cfg.S3.PathStyle,
			HTTPClient:      httpclient.New(httpclient.DefaultTimeout),
		})
		if err != nil {
			return err
		}
		opts.Blobs = store
	default:
		opts.Blobs = blobmem.New()
	}

	h, err := router.NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
