// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"slices"
	"strings"

	"github.com/MKhiriev/go-storefront/models"
	"github.com/go-playground/validator/v10"
)

// brazilianStates are the accepted values of the "uf" tag.
var brazilianStates = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO",
	"MA", "MT", "MS", "MG", "PA", "PB", "PR", "PE", "PI",
	"RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

var cepPattern = regexp.MustCompile(`^[0-9]{5}-[0-9]{3}$`)

// AddressValidator checks [models.UserAddress] values against their
// `validate` struct tags. Field names in the messages are the JSON names.
type AddressValidator struct {
	validate *validator.Validate
}

// NewAddressValidator returns an AddressValidator with the "uf" and "cep"
// tags registered.
func NewAddressValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails for an empty tag or a nil func
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return slices.Contains(brazilianStates, fl.Field().String())
	})
	_ = v.RegisterValidation("cep", func(fl validator.FieldLevel) bool {
		return cepPattern.MatchString(fl.Field().String())
	})

	return &AddressValidator{validate: v}
}

// Validate checks a models.UserAddress or *models.UserAddress. When fields
// are given only those struct fields (Go names) are checked.
func (a *AddressValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var address models.UserAddress
	switch value := obj.(type) {
	case models.UserAddress:
		address = value
	case *models.UserAddress:
		if value == nil {
			return fmt.Errorf("%w: nil address", ErrInvalidAddress)
		}
		address = *value
	default:
		return ErrUnsupportedType
	}

	var err error
	if len(fields) > 0 {
		for _, f := range fields {
			if _, ok := reflect.TypeOf(address).FieldByName(f); !ok {
				return fmt.Errorf("%w: %s", ErrUnknownField, f)
			}
		}
		err = a.validate.StructPartialCtx(ctx, address, fields...)
	} else {
		err = a.validate.StructCtx(ctx, address)
	}
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	messages := make([]string, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages = append(messages, fieldMessage(fe))
	}

	return &ValidationError{sentinel: ErrInvalidAddress, Messages: messages}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "uf":
		return fe.Field() + " must be a valid state abbreviation"
	case "cep":
		return fe.Field() + " must match 00000-000"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
