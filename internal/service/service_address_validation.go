// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/validators"
	"github.com/MKhiriev/go-storefront/models"
)

// AddressValidationService checks submitted address forms before they reach
// the wrapped AddressService.
type AddressValidationService struct {
	inner     AddressService
	validator validators.Validator
}

func NewAddressValidationService() AddressServiceWrapper {
	return &AddressValidationService{
		validator: validators.NewAddressValidator(),
	}
}

func (v *AddressValidationService) MainAddress(ctx context.Context, userID int64) (models.UserAddress, error) {
	return v.inner.MainAddress(ctx, userID)
}

// ConfirmAddresses validates the personal address, and the shipping address
// unless the order ships to the personal one.
func (v *AddressValidationService) ConfirmAddresses(ctx context.Context, sess *models.BrowserSession, userID int64, form models.AddressForm) (int64, error) {
	if sess == nil || sess.Cart().IsEmpty() {
		return 0, ErrEmptyCart
	}

	var personal models.UserAddress
	form.Personal.Apply(&personal)
	if err := v.validator.Validate(ctx, personal); err != nil {
		return 0, fmt.Errorf("personal address: %w", err)
	}

	if !form.SameAddress {
		var shipping models.UserAddress
		form.Shipping.Apply(&shipping)
		if err := v.validator.Validate(ctx, shipping); err != nil {
			return 0, fmt.Errorf("shipping address: %w", err)
		}
	}

	return v.inner.ConfirmAddresses(ctx, sess, userID, form)
}

func (v *AddressValidationService) Wrap(wrapper AddressService) AddressService {
	v.inner = wrapper
	return v
}
