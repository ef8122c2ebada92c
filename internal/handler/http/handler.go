package http

import (
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/service"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
)

// Handler serves the storefront JSON API.
type Handler struct {
	services *service.Services
	sessions store.BrowserSessionStorage
	metrics  *metrics.Collector
	ids      *utils.UUIDGenerator

	signKey        string
	issuer         string
	cookieLifetime time.Duration
	requestTimeout time.Duration
	imagesDir      string
	imagesURL      string
	maxQuantity    int

	logger *logger.Logger
}

func NewHandler(
	services *service.Services,
	sessions store.BrowserSessionStorage,
	cfg *config.StructuredConfig,
	collector *metrics.Collector,
	logger *logger.Logger,
) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		sessions:       sessions,
		metrics:        collector,
		ids:            utils.NewUUIDGenerator(),
		signKey:        cfg.App.SessionSignKey,
		issuer:         cfg.App.SessionIssuer,
		cookieLifetime: cfg.App.CookieLifetime,
		requestTimeout: cfg.Server.RequestTimeout,
		imagesDir:      cfg.Storage.Images.Dir,
		imagesURL:      cfg.Storage.Images.URLPrefix,
		maxQuantity:    cfg.Pagination.MaxQuantity,
		logger:         logger,
	}
}
