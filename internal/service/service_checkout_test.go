package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/mock"
	"github.com/MKhiriev/go-storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var checkoutUser = models.User{UserID: 42, Name: "Maria Silva", Email: "maria@example.com", Active: true}

func newTestCheckout(orders *mockOrderRepository, mailer adapter.Mailer) *checkoutService {
	svc := NewCheckoutService(
		orders,
		testProducts(),
		mailer,
		NewPreferencesService(10),
		"Order confirmation",
		nil,
		logger.Nop(),
	).(*checkoutService)
	svc.now = func() time.Time { return time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC) }
	return svc
}

// readyCart returns a session with two products and a shipping address.
func readyCart() *models.BrowserSession {
	sess := cartWith(42, map[int64]int{1: 2, 2: 1})
	sess.Cart().SetShippingAddress(101)
	sess.SetPreferences("order_products_show", models.ViewPreferences{
		PageSize: 10,
		Filters:  models.ProductFilter{CategoryID: 3, Search: "lamp"},
	})
	return sess
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)

	var saved []models.Order
	orders := &mockOrderRepository{
		saveFn: func(_ context.Context, o models.Order) (int64, error) {
			saved = append(saved, o)
			return 9001, nil
		},
	}
	svc := newTestCheckout(orders, mailer)
	sess := readyCart()

	mailer.EXPECT().
		Send(gomock.Any(), "maria@example.com", "Order confirmation", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _, body string) error {
			assert.Contains(t, body, "Hello, Maria Silva!")
			assert.Contains(t, body, "#9001")
			assert.Contains(t, body, "<td>Mug</td><td>2</td><td>12.50</td><td>25.00</td>")
			assert.Contains(t, body, "<td>Lamp</td><td>1</td><td>40.00</td><td>40.00</td>")
			assert.Contains(t, body, "Total: 65.00")
			return nil
		}).
		Times(1)

	orderID, err := svc.Checkout(context.Background(), sess, checkoutUser)

	require.NoError(t, err)
	assert.Equal(t, int64(9001), orderID)

	require.Len(t, saved, 1, "one order header")
	order := saved[0]
	assert.Equal(t, int64(42), order.UserID)
	assert.Equal(t, int64(101), order.ShippingAddressID)
	assert.Equal(t, time.Date(2026, 10, 17, 12, 30, 0, 0, time.UTC), order.Datetime)
	assert.Equal(t, []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	}, order.Items, "one item per cart line")

	assert.True(t, sess.Cart().IsEmpty(), "cart is discarded")
	prefs, _ := sess.Preferences("order_products_show")
	assert.Zero(t, prefs.Filters.CategoryID, "category filter is cleared")
	assert.Equal(t, "lamp", prefs.Filters.Search)
}

func TestCheckoutService_Checkout_KeepsCartDatetime(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

	placed := time.Date(2026, 10, 16, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	var got time.Time
	svc := newTestCheckout(&mockOrderRepository{
		saveFn: func(_ context.Context, o models.Order) (int64, error) {
			got = o.Datetime
			return 1, nil
		},
	}, mailer)
	sess := readyCart()
	sess.Cart().Datetime = placed

	_, err := svc.Checkout(context.Background(), sess, checkoutUser)

	require.NoError(t, err)
	assert.True(t, placed.Equal(got))
	assert.Equal(t, time.UTC, got.Location())
}

func TestCheckoutService_Checkout_Preconditions(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl) // no calls expected
	svc := newTestCheckout(&mockOrderRepository{
		saveFn: func(context.Context, models.Order) (int64, error) {
			t.Fatal("order must not be saved")
			return 0, nil
		},
	}, mailer)
	ctx := context.Background()

	_, err := svc.Checkout(ctx, models.NewBrowserSession("s"), checkoutUser)
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = svc.Checkout(ctx, cartWith(42, map[int64]int{1: 1}), checkoutUser)
	assert.ErrorIs(t, err, ErrShippingAddressRequired)

	_, err = svc.Checkout(ctx, readyCart(), models.User{})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCheckoutService_Checkout_SaveFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)
	svc := newTestCheckout(&mockOrderRepository{
		saveFn: func(context.Context, models.Order) (int64, error) { return 0, errStorage },
	}, mailer)
	sess := readyCart()

	_, err := svc.Checkout(context.Background(), sess, checkoutUser)

	assert.ErrorIs(t, err, errStorage)
	assert.False(t, sess.Cart().IsEmpty())
}

func TestCheckoutService_Checkout_MailFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)
	mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.Join(adapter.ErrMailPublish, errors.New("broker down")))

	svc := newTestCheckout(&mockOrderRepository{}, mailer)
	sess := readyCart()

	_, err := svc.Checkout(context.Background(), sess, checkoutUser)

	assert.ErrorIs(t, err, ErrOrderConfirmation)
	assert.ErrorIs(t, err, adapter.ErrMailPublish)
	assert.False(t, sess.Cart().IsEmpty(), "cart is kept when the confirmation fails")
}

func TestCheckoutService_Checkout_RetryAfterMailFailureRewritesOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	mailer := mock.NewMockMailer(ctrl)
	gomock.InOrder(
		mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.Join(adapter.ErrMailPublish, errors.New("broker down"))),
		mailer.EXPECT().Send(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, body string) error {
				assert.Contains(t, body, "#102")
				return nil
			}),
	)

	var (
		inserted int
		saved    []models.Order
	)
	orders := &mockOrderRepository{
		saveFn: func(_ context.Context, o models.Order) (int64, error) {
			saved = append(saved, o)
			if o.OrderID > 0 {
				return o.OrderID, nil
			}
			inserted++
			return 101 + int64(inserted), nil
		},
	}
	svc := newTestCheckout(orders, mailer)
	sess := readyCart()
	ctx := context.Background()

	_, err := svc.Checkout(ctx, sess, checkoutUser)
	require.ErrorIs(t, err, ErrOrderConfirmation)
	require.False(t, sess.Cart().IsEmpty())
	assert.Equal(t, int64(102), sess.Cart().OrderID, "saved order is remembered on the cart")

	sess.Cart().SetProduct(2, 3)

	orderID, err := svc.Checkout(ctx, sess, checkoutUser)
	require.NoError(t, err)
	assert.Equal(t, int64(102), orderID)

	assert.Equal(t, 1, inserted, "exactly one order is inserted")
	require.Len(t, saved, 2)
	assert.Zero(t, saved[0].OrderID)
	assert.Equal(t, int64(102), saved[1].OrderID)
	assert.Equal(t, []models.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	}, saved[1].Items, "items of the retried order are replaced")
	assert.True(t, sess.Cart().IsEmpty())
}
