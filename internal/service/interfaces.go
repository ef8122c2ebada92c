package service

import (
	"context"
	"net/url"

	"github.com/MKhiriev/go-storefront/models"
)

// AuthManager authenticates visitors and validates the identity kept in
// their browser session against the server-side session entries.
type AuthManager interface {
	// Authenticate checks the credentials and starts a session on success.
	// Infrastructure failures are reported as AuthGeneralFailure.
	Authenticate(ctx context.Context, sess *models.BrowserSession, login, password string) models.AuthResult
	StartSession(ctx context.Context, sess *models.BrowserSession, user models.User) (models.AuthToken, error)
	// HasIdentity reports whether sess carries a valid identity, refreshing
	// it on success and clearing it on failure.
	HasIdentity(ctx context.Context, sess *models.BrowserSession) (bool, error)
	Expired(sess *models.BrowserSession) bool
	ClearIdentity(ctx context.Context, sess *models.BrowserSession) error
	CurrentUser(ctx context.Context, sess *models.BrowserSession) (models.User, error)
	SetSessionTimeout(seconds int) error
}

// CategoryService serves the category forest.
type CategoryService interface {
	Forest(ctx context.Context) ([]*models.CategoryNode, error)
	AncestorTree(ctx context.Context, categoryID int64) (*models.CategoryNode, error)
	// Expand returns categoryID followed by all of its descendants.
	Expand(ctx context.Context, categoryID int64) ([]int64, error)
}

// CatalogService lists and looks up products.
type CatalogService interface {
	CountAll(ctx context.Context, filter models.ProductFilter) (int, error)
	FetchPage(ctx context.Context, orderBy string, page, pageSize int, filter models.ProductFilter) (models.ProductPage, error)
	FindProduct(ctx context.Context, productID int64) (models.Product, error)
	// AttachImages sets ImageURL of every product to a resized copy of its
	// image.
	AttachImages(ctx context.Context, products []models.Product, size ImageSize)
}

type CartService interface {
	AddProduct(ctx context.Context, sess *models.BrowserSession, userID, productID int64, quantity int) error
	RemoveProduct(ctx context.Context, sess *models.BrowserSession, productID int64) error
	View(ctx context.Context, sess *models.BrowserSession) (models.CartView, error)
}

type AddressService interface {
	MainAddress(ctx context.Context, userID int64) (models.UserAddress, error)
	// ConfirmAddresses stores the personal address as the user's main
	// address and records the shipping address on the cart. It returns
	// the shipping address id.
	ConfirmAddresses(ctx context.Context, sess *models.BrowserSession, userID int64, form models.AddressForm) (int64, error)
}

// AddressServiceWrapper defines middleware composition for AddressService.
// Implementations wrap an existing AddressService to add behavior such as
// validation.
type AddressServiceWrapper interface {
	Wrap(AddressService) AddressService // returns a decorated AddressService applying additional behavior
}

type CheckoutService interface {
	// Checkout persists the cart as an order, e-mails the confirmation to
	// user and empties the cart. It returns the order id.
	Checkout(ctx context.Context, sess *models.BrowserSession, user models.User) (int64, error)
}

// PreferencesService merges request parameters into the listing preferences
// stored in the browser session.
type PreferencesService interface {
	Load(sess *models.BrowserSession, key string, params url.Values) models.ViewPreferences
	Reset(sess *models.BrowserSession, key string)
	ClearCategoryFilters(sess *models.BrowserSession)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetVersionInfo(ctx context.Context) models.VersionResponse
}
