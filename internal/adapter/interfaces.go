// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound collaborators of the storefront:
// the order confirmation mailer and the product image resizer.
//
// [Mailer] hides the message broker behind a single Send call; the shipped
// implementation ([NewAMQPMailer]) publishes to a durable RabbitMQ queue that
// a mail relay consumes. [ImageResizer] produces fixed-size copies of product
// images next to the originals ([NewImageResizer]).
//
// Error values defined in errors.go let callers use [errors.Is] without
// knowing which backend failed.
package adapter

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// Mailer delivers an HTML e-mail.
type Mailer interface {
	// Send queues htmlBody for delivery to the given address. A nil error
	// means the message was accepted by the transport, not that it was
	// delivered.
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ImageResizer produces resized copies of product images.
type ImageResizer interface {
	// Resize returns the file name of a width x height copy of source,
	// creating it on first use. Both names are relative to the image
	// directory.
	Resize(ctx context.Context, source string, width, height int) (string, error)
}
