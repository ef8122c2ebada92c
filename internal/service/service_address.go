// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/internal/store"
	"github.com/MKhiriev/go-storefront/models"
)

type addressService struct {
	addressRepository store.AddressRepository
	logger            *logger.Logger
}

func NewAddressService(addressRepository store.AddressRepository, logger *logger.Logger) AddressService {
	return &addressService{
		addressRepository: addressRepository,
		logger:            logger,
	}
}

// MainAddress returns the main address of userID, or an empty address
// owned by userID if none was stored yet.
func (a *addressService) MainAddress(ctx context.Context, userID int64) (models.UserAddress, error) {
	address, err := a.addressRepository.FindMainAddress(ctx, userID)
	if errors.Is(err, store.ErrAddressNotFound) {
		return models.UserAddress{UserID: userID, Main: true}, nil
	}
	if err != nil {
		return models.UserAddress{}, fmt.Errorf("main address lookup failed: %w", err)
	}

	return address, nil
}

func (a *addressService) ConfirmAddresses(ctx context.Context, sess *models.BrowserSession, userID int64, form models.AddressForm) (int64, error) {
	log := logger.FromContext(ctx)

	if sess == nil || userID <= 0 {
		return 0, ErrInvalidDataProvided
	}
	cart := sess.Cart()
	if cart.IsEmpty() {
		return 0, ErrEmptyCart
	}

	mainAddress, err := a.MainAddress(ctx, userID)
	if err != nil {
		return 0, err
	}
	form.Personal.Apply(&mainAddress)
	mainAddress.Main = true

	mainID, err := a.addressRepository.SaveAddress(ctx, mainAddress)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("main address was not saved")
		return 0, fmt.Errorf("main address was not saved: %w", err)
	}

	shippingID := mainID
	if !form.SameAddress {
		shipping := models.UserAddress{UserID: userID}
		form.Shipping.Apply(&shipping)

		shippingID, err = a.addressRepository.SaveAddress(ctx, shipping)
		if err != nil {
			log.Err(err).Int64("user_id", userID).Msg("shipping address was not saved")
			return 0, fmt.Errorf("shipping address was not saved: %w", err)
		}
	}

	cart.SetShippingAddress(shippingID)
	sess.SetCart(cart)

	return shippingID, nil
}
