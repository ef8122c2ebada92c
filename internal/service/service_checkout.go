// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"slices"
	"time"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/metrics"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`<html>
<body>
<p>Hello, {{.Name}}!</p>
<p>Your order #{{.OrderID}} was received on {{.Datetime.Format "2006-01-02 15:04"}} UTC.</p>
<table>
<tr><th>Product</th><th>Quantity</th><th>Price</th><th>Subtotal</th></tr>
{{- range .Lines}}
<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td><td>{{printf "%.2f" .Subtotal}}</td></tr>
{{- end}}
</table>
<p>Total: {{printf "%.2f" .Total}}</p>
</body>
</html>
`))

type confirmationLine struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
}

type confirmationData struct {
	Name     string
	OrderID  int64
	Datetime time.Time
	Lines    []confirmationLine
	Total    float64
}

type checkoutService struct {
	orderRepository   store.OrderRepository
	productRepository store.ProductRepository
	mailer            adapter.Mailer
	preferences       PreferencesService
	subject           string

	now     func() time.Time
	metrics *metrics.Collector
	logger  *logger.Logger
}

func NewCheckoutService(
	orderRepository store.OrderRepository,
	productRepository store.ProductRepository,
	mailer adapter.Mailer,
	preferences PreferencesService,
	subject string,
	collector *metrics.Collector,
	logger *logger.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepository:   orderRepository,
		productRepository: productRepository,
		mailer:            mailer,
		preferences:       preferences,
		subject:           subject,
		now:               time.Now,
		metrics:           collector,
		logger:            logger,
	}
}

// Checkout turns the cart of sess into an order of user.
//
// The cart is discarded only after the confirmation was handed to the
// mailer. A failed send leaves it in place with the saved order id, so the
// next attempt rewrites the same order.
func (c *checkoutService) Checkout(ctx context.Context, sess *models.BrowserSession, user models.User) (int64, error) {
	orderID, err := c.checkout(ctx, sess, user)
	if err != nil {
		c.metrics.RecordCheckout(metrics.CheckoutFailure)
		return 0, err
	}

	c.metrics.RecordCheckout(metrics.CheckoutSuccess)
	return orderID, nil
}

func (c *checkoutService) checkout(ctx context.Context, sess *models.BrowserSession, user models.User) (int64, error) {
	log := logger.FromContext(ctx)

	if sess == nil || user.UserID <= 0 {
		return 0, ErrInvalidDataProvided
	}

	cart := sess.Cart()
	if cart.IsEmpty() {
		return 0, ErrEmptyCart
	}
	if cart.ShippingAddressID == nil {
		return 0, ErrShippingAddressRequired
	}
	if cart.Datetime.IsZero() {
		cart.Datetime = c.now().UTC()
	}

	order := models.Order{
		OrderID:           cart.OrderID,
		UserID:            user.UserID,
		ShippingAddressID: *cart.ShippingAddressID,
		Datetime:          cart.Datetime.UTC(),
	}
	quantities := cart.GetProducts()
	productIDs := make([]int64, 0, len(quantities))
	for id := range quantities {
		productIDs = append(productIDs, id)
	}
	slices.Sort(productIDs)
	for _, id := range productIDs {
		order.Items = append(order.Items, models.OrderItem{ProductID: id, Quantity: quantities[id]})
	}

	orderID, err := c.orderRepository.SaveOrder(ctx, order)
	if err != nil {
		log.Err(err).Int64("user_id", user.UserID).Msg("order was not saved")
		return 0, fmt.Errorf("order was not saved: %w", err)
	}
	order.OrderID = orderID
	cart.OrderID = orderID

	body, err := c.renderConfirmation(ctx, user, order)
	if err != nil {
		log.Err(err).Int64("order_id", orderID).Msg("confirmation was not rendered")
		return 0, fmt.Errorf("%w: %w", ErrOrderConfirmation, err)
	}

	if err := c.mailer.Send(ctx, user.Email, c.subject, body); err != nil {
		log.Err(err).Int64("order_id", orderID).Str("to", user.Email).Msg("confirmation was not sent")
		return 0, fmt.Errorf("%w: %w", ErrOrderConfirmation, err)
	}

	sess.SetCart(nil)
	c.preferences.ClearCategoryFilters(sess)

	log.Info().Int64("order_id", orderID).Int64("user_id", user.UserID).Int("items", len(order.Items)).Msg("order placed")
	return orderID, nil
}

func (c *checkoutService) renderConfirmation(ctx context.Context, user models.User, order models.Order) (string, error) {
	ids := make([]int64, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.ProductID)
	}

	products, err := c.productRepository.GetProductsByIDs(ctx, ids)
	if err != nil {
		return "", fmt.Errorf("order products were not loaded: %w", err)
	}
	byID := make(map[int64]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	data := confirmationData{
		Name:     user.Name,
		OrderID:  order.OrderID,
		Datetime: order.Datetime,
	}
	for _, item := range order.Items {
		p := byID[item.ProductID]
		line := confirmationLine{
			Name:     p.Name,
			Quantity: item.Quantity,
			Price:    p.Price,
			Subtotal: p.Price * float64(item.Quantity),
		}
		data.Lines = append(data.Lines, line)
		data.Total += line.Subtotal
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
