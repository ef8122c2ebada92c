package service

import "errors"

var (
	ErrInvalidDataProvided   = errors.New("invalid data provided")
	ErrInvalidSessionTimeout = errors.New("invalid session timeout")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")

	ErrNoIdentity = errors.New("user is logged out")

	ErrCategoryCycle = errors.New("category hierarchy contains a cycle")

	ErrEmptyCart               = errors.New("shopping cart is empty")
	ErrShippingAddressRequired = errors.New("shipping address is required")
	ErrOrderConfirmation       = errors.New("order confirmation was not sent")
)
