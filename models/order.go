package models

import "time"

// Order is a checked-out cart as persisted in the orders table.
type Order struct {
	OrderID           int64       `json:"id"`
	UserID            int64       `json:"user_id"`
	ShippingAddressID int64       `json:"shipping_address_id"`
	Datetime          time.Time   `json:"datetime"`
	Items             []OrderItem `json:"items"`
}

// OrderItem is one line of an order.
type OrderItem struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CheckoutResponse is returned after a successful checkout.
type CheckoutResponse struct {
	OrderID int64  `json:"order_id"`
	Message string `json:"message"`
}

// MailMessage is the envelope published to the mail queue.
type MailMessage struct {
	From     string    `json:"from"`
	FromName string    `json:"from_name"`
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	HTMLBody string    `json:"html_body"`
	Created  time.Time `json:"created"`
}
