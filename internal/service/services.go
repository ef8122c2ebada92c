package service

import (
	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

type Services struct {
	AuthManager        AuthManager
	CategoryService    CategoryService
	CatalogService     CatalogService
	CartService        CartService
	AddressService     AddressService
	CheckoutService    CheckoutService
	PreferencesService PreferencesService
	AppInfoService     AppInfoService
}

// Adapters are the outbound collaborators the services depend on.
type Adapters struct {
	Mailer       adapter.Mailer
	ImageResizer adapter.ImageResizer
}

func NewServices(
	storages *store.Storages,
	adapters Adapters,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	collector *metrics.Collector,
	logger *logger.Logger,
) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, buildInfo, logger)
	if err != nil {
		return nil, err
	}

	categoryService := NewCategoryService(storages.CategoryRepository, logger)
	preferencesService := NewPreferencesService(cfg.Pagination.DefaultPageSize)
	imageURLPrefix := cfg.Storage.Images.URLPrefix

	return &Services{
		AuthManager: NewAuthManager(
			storages.UserRepository,
			storages.SessionEntryRepository,
			cfg.Session,
			collector,
			logger,
		),
		CategoryService: categoryService,
		CatalogService: NewCatalogService(
			storages.ProductRepository,
			categoryService,
			adapters.ImageResizer,
			imageURLPrefix,
			logger,
		),
		CartService: NewCartService(
			storages.ProductRepository,
			cfg.Pagination.MaxQuantity,
			adapters.ImageResizer,
			imageURLPrefix,
			logger,
		),
		AddressService: NewAddressValidationService().Wrap(
			NewAddressService(storages.AddressRepository, logger),
		),
		CheckoutService: NewCheckoutService(
			storages.OrderRepository,
			storages.ProductRepository,
			adapters.Mailer,
			preferencesService,
			cfg.Mail.CheckoutSubject,
			collector,
			logger,
		),
		PreferencesService: preferencesService,
		AppInfoService:     appInfoService,
	}, nil
}
