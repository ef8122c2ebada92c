// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"maps"
	"time"
)

// ShoppingCart is the pre-checkout order kept in the browser session.
//
// Products maps product id to quantity. Every stored quantity is positive:
// non-positive quantities are never written, and only RemoveProduct deletes
// a line.
//
// OrderID is set once the cart has been saved as an order. A later checkout
// of the same cart rewrites that order instead of inserting a new one.
type ShoppingCart struct {
	UserID            int64         `json:"user_id"`
	OrderID           int64         `json:"order_id,omitempty"`
	ShippingAddressID *int64        `json:"shipping_address_id,omitempty"`
	Datetime          time.Time     `json:"datetime"`
	Products          map[int64]int `json:"products"`
}

// NewShoppingCart returns an empty cart owned by userID.
func NewShoppingCart(userID int64) *ShoppingCart {
	return &ShoppingCart{
		UserID:   userID,
		Products: make(map[int64]int),
	}
}

// SetProduct stores quantity for productID, replacing any previous value.
// A non-positive quantity leaves the cart untouched.
func (c *ShoppingCart) SetProduct(productID int64, quantity int) {
	if quantity <= 0 {
		return
	}
	if c.Products == nil {
		c.Products = make(map[int64]int)
	}
	c.Products[productID] = quantity
}

// RemoveProduct deletes the line for productID if present.
func (c *ShoppingCart) RemoveProduct(productID int64) {
	delete(c.Products, productID)
}

// ProductExists reports whether productID has a line in the cart.
func (c *ShoppingCart) ProductExists(productID int64) bool {
	_, ok := c.Products[productID]
	return ok
}

// ProductQuantity returns the quantity of productID, or 0 if absent.
func (c *ShoppingCart) ProductQuantity(productID int64) int {
	return c.Products[productID]
}

// GetProducts returns a copy of the product id to quantity mapping.
func (c *ShoppingCart) GetProducts() map[int64]int {
	return maps.Clone(c.Products)
}

// IsEmpty reports whether the cart has no lines.
func (c *ShoppingCart) IsEmpty() bool {
	return c == nil || len(c.Products) == 0
}

// SetShippingAddress records the address the order will be delivered to.
func (c *ShoppingCart) SetShippingAddress(addressID int64) {
	c.ShippingAddressID = &addressID
}

// CartLine is a presentation row of the cart.
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// CartView is the cart joined with product data.
type CartView struct {
	Lines             []CartLine `json:"lines"`
	Total             float64    `json:"total"`
	ShippingAddressID *int64     `json:"shipping_address_id,omitempty"`
}

// AddToCartRequest is the payload of the add-to-cart endpoint.
// Quantity is optional and defaults to 1.
type AddToCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  *int  `json:"quantity,omitempty"`
}
