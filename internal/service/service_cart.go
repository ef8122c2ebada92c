// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

type cartService struct {
	productRepository store.ProductRepository
	maxQuantity       int
	images            imagePresenter
	logger            *logger.Logger
}

func NewCartService(
	productRepository store.ProductRepository,
	maxQuantity int,
	resizer adapter.ImageResizer,
	imageURLPrefix string,
	logger *logger.Logger,
) CartService {
	return &cartService{
		productRepository: productRepository,
		maxQuantity:       maxQuantity,
		images:            imagePresenter{resizer: resizer, urlPrefix: imageURLPrefix},
		logger:            logger,
	}
}

// AddProduct sets the quantity of productID in the cart of sess, creating
// the cart on first use. The quantity is clamped to [1, maxQuantity].
func (c *cartService) AddProduct(ctx context.Context, sess *models.BrowserSession, userID, productID int64, quantity int) error {
	log := logger.FromContext(ctx)

	if sess == nil || productID <= 0 {
		return ErrInvalidDataProvided
	}

	if _, err := c.productRepository.GetProductByID(ctx, productID); err != nil {
		log.Err(err).Int64("product_id", productID).Msg("product lookup before adding to cart failed")
		return err
	}

	cart := sess.Cart()
	if cart == nil {
		cart = models.NewShoppingCart(userID)
	}
	if cart.UserID == 0 {
		cart.UserID = userID
	}

	cart.SetProduct(productID, c.clampQuantity(quantity))
	sess.SetCart(cart)

	return nil
}

func (c *cartService) clampQuantity(quantity int) int {
	if quantity < 1 {
		return 1
	}
	if c.maxQuantity > 0 && quantity > c.maxQuantity {
		return c.maxQuantity
	}
	return quantity
}

// RemoveProduct drops productID from the cart. Removing a product that is
// not in the cart is not an error.
func (c *cartService) RemoveProduct(ctx context.Context, sess *models.BrowserSession, productID int64) error {
	if sess == nil {
		return ErrInvalidDataProvided
	}

	if cart := sess.Cart(); cart != nil {
		cart.RemoveProduct(productID)
	}
	return nil
}

// View joins the cart lines with product data, in product id order.
// Products that disappeared from the catalog are skipped.
func (c *cartService) View(ctx context.Context, sess *models.BrowserSession) (models.CartView, error) {
	view := models.CartView{Lines: []models.CartLine{}}
	if sess == nil || sess.Cart().IsEmpty() {
		return view, nil
	}

	cart := sess.Cart()
	view.ShippingAddressID = cart.ShippingAddressID

	quantities := cart.GetProducts()
	ids := make([]int64, 0, len(quantities))
	for id := range quantities {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	products, err := c.productRepository.GetProductsByIDs(ctx, ids)
	if err != nil {
		return models.CartView{}, fmt.Errorf("cart products were not loaded: %w", err)
	}

	for _, p := range products {
		quantity := quantities[p.ID]
		if quantity == 0 {
			continue
		}
		p.ImageURL = c.images.url(ctx, p.ImagePath, CartImageSize)

		line := models.CartLine{
			Product:  p,
			Quantity: quantity,
			Subtotal: p.Price * float64(quantity),
		}
		view.Lines = append(view.Lines, line)
		view.Total += line.Subtotal
	}

	if len(view.Lines) < len(ids) {
		logger.FromContext(ctx).Warn().Int("lines", len(ids)).Int("found", len(view.Lines)).Msg("cart references unknown products")
	}

	return view, nil
}
