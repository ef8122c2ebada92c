package store

import (
	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/redis/go-redis/v9"
)

// Storages groups every repository the services depend on.
type Storages struct {
	UserRepository         UserRepository
	SessionEntryRepository SessionEntryRepository
	CategoryRepository     CategoryRepository
	ProductRepository      ProductRepository
	OrderRepository        OrderRepository
	AddressRepository      AddressRepository
	BrowserSessionStorage  BrowserSessionStorage
}

func NewStorages(db *DB, redisClient *redis.Client, cfg *config.StructuredConfig, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		SessionEntryRepository: NewSessionEntryRepository(db, log),
		CategoryRepository:     NewCategoryRepository(db, log),
		ProductRepository:      NewProductRepository(db, log),
		OrderRepository:        NewOrderRepository(db, log),
		AddressRepository:      NewAddressRepository(db, log),
		BrowserSessionStorage: NewBrowserSessionStorage(
			redisClient,
			cfg.Storage.Redis.KeyPrefix,
			cfg.App.CookieLifetime,
			log,
		),
	}
}
