package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

var errStorage = errors.New("storage error")

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	findByLoginFn func(ctx context.Context, login string) (models.User, error)
	findByIDFn    func(ctx context.Context, userID int64) (models.User, error)
}

func (m *mockUserRepository) FindUserByLogin(ctx context.Context, login string) (models.User, error) {
	if m.findByLoginFn != nil {
		return m.findByLoginFn(ctx, login)
	}
	return models.User{}, store.ErrNoUserWasFound
}

func (m *mockUserRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return models.User{}, store.ErrNoUserWasFound
}

// ─────────────────────────────────────────────
// Mock: store.SessionEntryRepository
// ─────────────────────────────────────────────

type mockSessionEntryRepository struct {
	saveFn          func(ctx context.Context, entry models.SessionEntry) error
	findFn          func(ctx context.Context, hash string) (models.SessionEntry, error)
	findByUserIDFn  func(ctx context.Context, userID int64) (models.SessionEntry, error)
	removeFn        func(ctx context.Context, hash string) (bool, error)
	removeExpiredFn func(ctx context.Context, expiration int, now int64) (int64, error)
}

func (m *mockSessionEntryRepository) Save(ctx context.Context, entry models.SessionEntry) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, entry)
	}
	return nil
}

func (m *mockSessionEntryRepository) Find(ctx context.Context, hash string) (models.SessionEntry, error) {
	if m.findFn != nil {
		return m.findFn(ctx, hash)
	}
	return models.SessionEntry{}, store.ErrSessionEntryNotFound
}

func (m *mockSessionEntryRepository) FindByUserID(ctx context.Context, userID int64) (models.SessionEntry, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(ctx, userID)
	}
	return models.SessionEntry{}, store.ErrSessionEntryNotFound
}

func (m *mockSessionEntryRepository) Remove(ctx context.Context, hash string) (bool, error) {
	if m.removeFn != nil {
		return m.removeFn(ctx, hash)
	}
	return false, nil
}

func (m *mockSessionEntryRepository) RemoveExpired(ctx context.Context, expiration int, now int64) (int64, error) {
	if m.removeExpiredFn != nil {
		return m.removeExpiredFn(ctx, expiration, now)
	}
	return 0, nil
}

// newEntryTable backs a mockSessionEntryRepository with a map so that
// entries written by one call are visible to the next.
func newEntryTable() (*mockSessionEntryRepository, map[string]models.SessionEntry) {
	entries := map[string]models.SessionEntry{}
	repo := &mockSessionEntryRepository{
		saveFn: func(_ context.Context, e models.SessionEntry) error {
			entries[e.SessionHash] = e
			return nil
		},
		findFn: func(_ context.Context, hash string) (models.SessionEntry, error) {
			e, ok := entries[hash]
			if !ok {
				return models.SessionEntry{}, store.ErrSessionEntryNotFound
			}
			return e, nil
		},
		removeFn: func(_ context.Context, hash string) (bool, error) {
			_, ok := entries[hash]
			delete(entries, hash)
			return ok, nil
		},
		removeExpiredFn: func(_ context.Context, expiration int, now int64) (int64, error) {
			var removed int64
			for hash, e := range entries {
				if e.IsExpired(int64(expiration), now) {
					delete(entries, hash)
					removed++
				}
			}
			return removed, nil
		},
	}
	return repo, entries
}

// ─────────────────────────────────────────────
// Mock: store.CategoryRepository
// ─────────────────────────────────────────────

type mockCategoryRepository struct {
	getAllFn func(ctx context.Context) ([]models.ProductCategory, error)
}

func (m *mockCategoryRepository) GetAllCategories(ctx context.Context) ([]models.ProductCategory, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func staticCategories(categories ...models.ProductCategory) *mockCategoryRepository {
	return &mockCategoryRepository{
		getAllFn: func(context.Context) ([]models.ProductCategory, error) {
			return categories, nil
		},
	}
}

// ─────────────────────────────────────────────
// Mock: store.ProductRepository
// ─────────────────────────────────────────────

type mockProductRepository struct {
	countFn    func(ctx context.Context, q models.ProductQuery) (int, error)
	getFn      func(ctx context.Context, q models.ProductQuery) ([]models.Product, error)
	getByIDFn  func(ctx context.Context, id int64) (models.Product, error)
	getByIDsFn func(ctx context.Context, ids []int64) ([]models.Product, error)
}

func (m *mockProductRepository) CountProducts(ctx context.Context, q models.ProductQuery) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx, q)
	}
	return 0, nil
}

func (m *mockProductRepository) GetProducts(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	if m.getFn != nil {
		return m.getFn(ctx, q)
	}
	return nil, nil
}

func (m *mockProductRepository) GetProductByID(ctx context.Context, id int64) (models.Product, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return models.Product{}, store.ErrProductNotFound
}

func (m *mockProductRepository) GetProductsByIDs(ctx context.Context, ids []int64) ([]models.Product, error) {
	if m.getByIDsFn != nil {
		return m.getByIDsFn(ctx, ids)
	}
	return nil, nil
}

// productCatalog serves lookups from a fixed set of products.
func productCatalog(products ...models.Product) *mockProductRepository {
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepository{
		getByIDFn: func(_ context.Context, id int64) (models.Product, error) {
			p, ok := byID[id]
			if !ok {
				return models.Product{}, store.ErrProductNotFound
			}
			return p, nil
		},
		getByIDsFn: func(_ context.Context, ids []int64) ([]models.Product, error) {
			var found []models.Product
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					found = append(found, p)
				}
			}
			return found, nil
		},
	}
}

// ─────────────────────────────────────────────
// Mock: store.OrderRepository
// ─────────────────────────────────────────────

type mockOrderRepository struct {
	saveFn func(ctx context.Context, order models.Order) (int64, error)
}

func (m *mockOrderRepository) SaveOrder(ctx context.Context, order models.Order) (int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, order)
	}
	return 1, nil
}

// ─────────────────────────────────────────────
// Mock: store.AddressRepository
// ─────────────────────────────────────────────

type mockAddressRepository struct {
	findMainFn func(ctx context.Context, userID int64) (models.UserAddress, error)
	findFn     func(ctx context.Context, userID, addressID int64) (models.UserAddress, error)
	saveFn     func(ctx context.Context, address models.UserAddress) (int64, error)
}

func (m *mockAddressRepository) FindMainAddress(ctx context.Context, userID int64) (models.UserAddress, error) {
	if m.findMainFn != nil {
		return m.findMainFn(ctx, userID)
	}
	return models.UserAddress{}, store.ErrAddressNotFound
}

func (m *mockAddressRepository) FindAddress(ctx context.Context, userID, addressID int64) (models.UserAddress, error) {
	if m.findFn != nil {
		return m.findFn(ctx, userID, addressID)
	}
	return models.UserAddress{}, store.ErrAddressNotFound
}

func (m *mockAddressRepository) SaveAddress(ctx context.Context, address models.UserAddress) (int64, error) {
	if m.saveFn != nil {
		return m.saveFn(ctx, address)
	}
	return 1, nil
}

// cartWith returns a session whose cart holds the given product quantities.
func cartWith(userID int64, lines map[int64]int) *models.BrowserSession {
	sess := models.NewBrowserSession("sess-1")
	cart := models.NewShoppingCart(userID)
	for id, q := range lines {
		cart.SetProduct(id, q)
	}
	sess.SetCart(cart)
	return sess
}
