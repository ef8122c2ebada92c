package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/handler"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/server"
	"github.com/MKhiriev/go-storefront/internal/service"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/workers"
	"github.com/MKhiriev/go-storefront/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()
	ctx := context.Background()

	log := logger.NewLogger("go-storefront")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	redisClient, err := store.NewRedisClient(ctx, cfg.Storage.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to session store")
	}
	defer redisClient.Close()

	storages := store.NewStorages(db, redisClient, cfg, log)

	mailer := adapter.NewAMQPMailer(cfg.Mail, log)
	defer mailer.Close()

	collector := metrics.NewCollector()
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	services, err := service.NewServices(
		storages,
		service.Adapters{
			Mailer:       mailer,
			ImageResizer: adapter.NewImageResizer(cfg.Storage.Images.Dir, log),
		},
		cfg,
		buildInfo,
		collector,
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, storages.BrowserSessionStorage, cfg, collector, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	bg, err := newWorkers(storages, cfg, collector, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating workers")
	}

	srv, err := server.NewServer(handlers, bg, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// newWorkers starts the periodic session sweep when an interval is set.
func newWorkers(storages *store.Storages, cfg *config.StructuredConfig, collector *metrics.Collector, log *logger.Logger) (*workers.Workers, error) {
	if cfg.Workers.SessionSweepInterval <= 0 {
		return workers.NewWorkers(), nil
	}

	sweeper, err := workers.NewSessionSweeper(
		storages.SessionEntryRepository,
		cfg.Session.ExpirationSeconds,
		cfg.Workers.SessionSweepInterval,
		collector,
		log,
	)
	if err != nil {
		return nil, err
	}

	return workers.NewWorkers(sweeper), nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
