package store

import (
	"context"

	"github.com/MKhiriev/go-storefront/models"
)

// UserRepository reads user accounts. Accounts are provisioned outside the
// storefront, so there is no write path.
type UserRepository interface {
	FindUserByLogin(ctx context.Context, login string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionEntryRepository keeps the server-side half of an authenticated
// session: one row per secure key.
type SessionEntryRepository interface {
	Save(ctx context.Context, entry models.SessionEntry) error
	Find(ctx context.Context, sessionHash string) (models.SessionEntry, error)
	FindByUserID(ctx context.Context, userID int64) (models.SessionEntry, error)
	Remove(ctx context.Context, sessionHash string) (bool, error)
	RemoveExpired(ctx context.Context, expirationSeconds int, now int64) (int64, error)
}

type CategoryRepository interface {
	GetAllCategories(ctx context.Context) ([]models.ProductCategory, error)
}

// ProductRepository serves the catalog. CountProducts and GetProducts accept
// the same query so that a page and its total always agree.
type ProductRepository interface {
	CountProducts(ctx context.Context, query models.ProductQuery) (int, error)
	GetProducts(ctx context.Context, query models.ProductQuery) ([]models.Product, error)
	GetProductByID(ctx context.Context, productID int64) (models.Product, error)
	GetProductsByIDs(ctx context.Context, productIDs []int64) ([]models.Product, error)
}

type OrderRepository interface {
	SaveOrder(ctx context.Context, order models.Order) (int64, error)
}

type AddressRepository interface {
	FindMainAddress(ctx context.Context, userID int64) (models.UserAddress, error)
	FindAddress(ctx context.Context, userID, addressID int64) (models.UserAddress, error)
	SaveAddress(ctx context.Context, address models.UserAddress) (int64, error)
}

// BrowserSessionStorage persists per-browser state between requests.
type BrowserSessionStorage interface {
	Load(ctx context.Context, sessionID string) (*models.BrowserSession, error)
	Save(ctx context.Context, session *models.BrowserSession) error
	Delete(ctx context.Context, sessionID string) error
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
