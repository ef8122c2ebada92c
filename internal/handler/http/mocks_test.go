package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-storefront/internal/config"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/service"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/internal/utils"
	"github.com/MKhiriev/go-storefront/models"
	"github.com/stretchr/testify/require"
)

var errBackend = errors.New("backend error")

// ─────────────────────────────────────────────
// Mock: store.BrowserSessionStorage
// ─────────────────────────────────────────────

type memorySessions struct {
	mu      sync.Mutex
	data    map[string]*models.BrowserSession
	saves   int
	loadErr error
	saveErr error
}

func newMemorySessions() *memorySessions {
	return &memorySessions{data: make(map[string]*models.BrowserSession)}
}

func (m *memorySessions) Load(_ context.Context, id string) (*models.BrowserSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	sess, ok := m.data[id]
	if !ok {
		return nil, store.ErrBrowserSessionNotFound
	}
	return sess, nil
}

func (m *memorySessions) Save(_ context.Context, sess *models.BrowserSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.data[sess.ID] = sess
	return nil
}

func (m *memorySessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

func (m *memorySessions) get(id string) (*models.BrowserSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.data[id]
	return sess, ok
}

// ─────────────────────────────────────────────
// Mock: service.AuthManager
// ─────────────────────────────────────────────

// mockAuthManager trusts any token present in the session unless
// hasIdentityFn says otherwise.
type mockAuthManager struct {
	authenticateFn func(ctx context.Context, sess *models.BrowserSession, login, password string) models.AuthResult
	hasIdentityFn  func(ctx context.Context, sess *models.BrowserSession) (bool, error)
	clearFn        func(ctx context.Context, sess *models.BrowserSession) error
	currentUserFn  func(ctx context.Context, sess *models.BrowserSession) (models.User, error)
}

func (m *mockAuthManager) Authenticate(ctx context.Context, sess *models.BrowserSession, login, password string) models.AuthResult {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, sess, login, password)
	}
	return models.AuthResult{Code: models.AuthIdentityNotFound}
}

func (m *mockAuthManager) StartSession(_ context.Context, _ *models.BrowserSession, _ models.User) (models.AuthToken, error) {
	return models.AuthToken{}, nil
}

func (m *mockAuthManager) HasIdentity(ctx context.Context, sess *models.BrowserSession) (bool, error) {
	if m.hasIdentityFn != nil {
		return m.hasIdentityFn(ctx, sess)
	}
	return sess.Token != nil, nil
}

func (m *mockAuthManager) Expired(sess *models.BrowserSession) bool {
	return sess.Expired
}

func (m *mockAuthManager) ClearIdentity(ctx context.Context, sess *models.BrowserSession) error {
	if m.clearFn != nil {
		return m.clearFn(ctx, sess)
	}
	sess.Token = nil
	sess.ClearVariables()
	return nil
}

func (m *mockAuthManager) CurrentUser(ctx context.Context, sess *models.BrowserSession) (models.User, error) {
	if m.currentUserFn != nil {
		return m.currentUserFn(ctx, sess)
	}
	return models.User{UserID: sess.Token.UserID, Name: sess.Token.Name, Email: "buyer@example.com"}, nil
}

func (m *mockAuthManager) SetSessionTimeout(int) error { return nil }

// ─────────────────────────────────────────────
// Mock: service.CatalogService / service.CategoryService
// ─────────────────────────────────────────────

type mockCatalogService struct {
	fetchPageFn    func(ctx context.Context, orderBy string, page, pageSize int, filter models.ProductFilter) (models.ProductPage, error)
	findProductFn  func(ctx context.Context, productID int64) (models.Product, error)
	attachedSize   service.ImageSize
	attachedImages bool
}

func (m *mockCatalogService) CountAll(_ context.Context, _ models.ProductFilter) (int, error) {
	return 0, nil
}

func (m *mockCatalogService) FetchPage(ctx context.Context, orderBy string, page, pageSize int, filter models.ProductFilter) (models.ProductPage, error) {
	if m.fetchPageFn != nil {
		return m.fetchPageFn(ctx, orderBy, page, pageSize, filter)
	}
	return models.ProductPage{Items: []models.Product{}, Page: 1}, nil
}

func (m *mockCatalogService) FindProduct(ctx context.Context, productID int64) (models.Product, error) {
	if m.findProductFn != nil {
		return m.findProductFn(ctx, productID)
	}
	return models.Product{}, store.ErrProductNotFound
}

func (m *mockCatalogService) AttachImages(_ context.Context, products []models.Product, size service.ImageSize) {
	m.attachedImages = true
	m.attachedSize = size
	for i := range products {
		products[i].ImageURL = "/img/products/resized-" + products[i].ImagePath
	}
}

type mockCategoryService struct {
	forestFn func(ctx context.Context) ([]*models.CategoryNode, error)
	treeFn   func(ctx context.Context, categoryID int64) (*models.CategoryNode, error)
}

func (m *mockCategoryService) Forest(ctx context.Context) ([]*models.CategoryNode, error) {
	if m.forestFn != nil {
		return m.forestFn(ctx)
	}
	return nil, nil
}

func (m *mockCategoryService) AncestorTree(ctx context.Context, categoryID int64) (*models.CategoryNode, error) {
	if m.treeFn != nil {
		return m.treeFn(ctx, categoryID)
	}
	return nil, store.ErrCategoryNotFound
}

func (m *mockCategoryService) Expand(_ context.Context, categoryID int64) ([]int64, error) {
	return []int64{categoryID}, nil
}

// ─────────────────────────────────────────────
// Mock: service.CartService
// ─────────────────────────────────────────────

type mockCartService struct {
	addFn    func(ctx context.Context, sess *models.BrowserSession, userID, productID int64, quantity int) error
	removeFn func(ctx context.Context, sess *models.BrowserSession, productID int64) error
	viewFn   func(ctx context.Context, sess *models.BrowserSession) (models.CartView, error)
}

func (m *mockCartService) AddProduct(ctx context.Context, sess *models.BrowserSession, userID, productID int64, quantity int) error {
	if m.addFn != nil {
		return m.addFn(ctx, sess, userID, productID, quantity)
	}
	if sess.Cart() == nil {
		sess.SetCart(models.NewShoppingCart(userID))
	}
	sess.Cart().SetProduct(productID, quantity)
	return nil
}

func (m *mockCartService) RemoveProduct(ctx context.Context, sess *models.BrowserSession, productID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, sess, productID)
	}
	if sess.Cart() != nil {
		sess.Cart().RemoveProduct(productID)
	}
	return nil
}

func (m *mockCartService) View(ctx context.Context, sess *models.BrowserSession) (models.CartView, error) {
	if m.viewFn != nil {
		return m.viewFn(ctx, sess)
	}
	view := models.CartView{Lines: []models.CartLine{}}
	if sess.Cart() == nil {
		return view, nil
	}
	for id, quantity := range sess.Cart().GetProducts() {
		view.Lines = append(view.Lines, models.CartLine{Product: models.Product{ID: id}, Quantity: quantity})
	}
	return view, nil
}

// ─────────────────────────────────────────────
// Mock: service.AddressService / service.CheckoutService
// ─────────────────────────────────────────────

type mockAddressService struct {
	mainFn    func(ctx context.Context, userID int64) (models.UserAddress, error)
	confirmFn func(ctx context.Context, sess *models.BrowserSession, userID int64, form models.AddressForm) (int64, error)
}

func (m *mockAddressService) MainAddress(ctx context.Context, userID int64) (models.UserAddress, error) {
	if m.mainFn != nil {
		return m.mainFn(ctx, userID)
	}
	return models.UserAddress{UserID: userID, Main: true}, nil
}

func (m *mockAddressService) ConfirmAddresses(ctx context.Context, sess *models.BrowserSession, userID int64, form models.AddressForm) (int64, error) {
	if m.confirmFn != nil {
		return m.confirmFn(ctx, sess, userID, form)
	}
	return 1, nil
}

type mockCheckoutService struct {
	checkoutFn func(ctx context.Context, sess *models.BrowserSession, user models.User) (int64, error)
}

func (m *mockCheckoutService) Checkout(ctx context.Context, sess *models.BrowserSession, user models.User) (int64, error) {
	if m.checkoutFn != nil {
		return m.checkoutFn(ctx, sess, user)
	}
	return 1, nil
}

// ─────────────────────────────────────────────
// Mock: service.AppInfoService
// ─────────────────────────────────────────────

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}

func (m *mockAppInfoService) GetVersionInfo(_ context.Context) models.VersionResponse {
	return models.VersionResponse{Version: m.version, BuildVersion: "N/A", BuildDate: "N/A", BuildCommit: "N/A"}
}

// ─────────────────────────────────────────────
// Test environment
// ─────────────────────────────────────────────

const (
	testSignKey = "test-sign-key"
	testIssuer  = "storefront-test"
)

type testEnv struct {
	handler  *Handler
	router   http.Handler
	sessions *memorySessions

	auth      *mockAuthManager
	catalog   *mockCatalogService
	category  *mockCategoryService
	cart      *mockCartService
	addresses *mockAddressService
	checkouts *mockCheckoutService
	collector *metrics.Collector
}

func testConfig() *config.StructuredConfig {
	return &config.StructuredConfig{
		App: config.App{
			Version:        "1.0.0",
			SessionSignKey: testSignKey,
			SessionIssuer:  testIssuer,
			CookieLifetime: time.Hour,
		},
		Server: config.Server{RequestTimeout: 5 * time.Second},
	}
}

func newTestEnv(t *testing.T, cfg *config.StructuredConfig) *testEnv {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}

	env := &testEnv{
		sessions:  newMemorySessions(),
		auth:      &mockAuthManager{},
		catalog:   &mockCatalogService{},
		category:  &mockCategoryService{},
		cart:      &mockCartService{},
		addresses: &mockAddressService{},
		checkouts: &mockCheckoutService{},
		collector: metrics.NewCollector(),
	}

	services := &service.Services{
		AuthManager:        env.auth,
		CategoryService:    env.category,
		CatalogService:     env.catalog,
		CartService:        env.cart,
		AddressService:     env.addresses,
		CheckoutService:    env.checkouts,
		PreferencesService: service.NewPreferencesService(20),
		AppInfoService:     &mockAppInfoService{version: cfg.App.Version},
	}

	env.handler = NewHandler(services, env.sessions, cfg, env.collector, logger.Nop())
	env.router = env.handler.Init()
	return env
}

// storeSession saves sess and returns a cookie that names it.
func (e *testEnv) storeSession(t *testing.T, sess *models.BrowserSession) *http.Cookie {
	t.Helper()
	require.NoError(t, e.sessions.Save(context.Background(), sess))

	token, err := utils.GenerateSessionToken(testIssuer, sess.ID, time.Hour, testSignKey)
	require.NoError(t, err)

	return &http.Cookie{Name: sessionCookieName, Value: token.SignedString}
}

// loggedIn returns a session carrying an identity of userID.
func loggedIn(id string, userID int64) *models.BrowserSession {
	sess := models.NewBrowserSession(id)
	sess.Token = &models.AuthToken{UserID: userID, Login: "buyer", Name: "Buyer"}
	return sess
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	return nil
}
