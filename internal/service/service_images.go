// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"path"

	"github.com/MKhiriev/go-storefront/internal/adapter"
	"github.com/MKhiriev/go-storefront/internal/logger"
	"github.com/MKhiriev/go-storefront/models"
)

// ImageSize is the box a product image is resized to.
type ImageSize struct {
	Width  int
	Height int
}

var (
	ListImageSize   = ImageSize{Width: 90, Height: 90}
	IconImageSize   = ImageSize{Width: 300, Height: 200}
	DetailImageSize = ImageSize{Width: 380, Height: 380}
	CartImageSize   = ImageSize{Width: 45, Height: 45}
)

// ListingImageSize returns the image size of a product listing rendered as
// viewType.
func ListingImageSize(viewType string) ImageSize {
	if viewType == models.ViewTypeIcon {
		return IconImageSize
	}
	return ListImageSize
}

// imagePresenter turns stored image paths into public URLs of resized
// copies.
type imagePresenter struct {
	resizer   adapter.ImageResizer
	urlPrefix string
}

// url returns the public URL of image resized to size. A failed resize
// falls back to the original image.
func (p imagePresenter) url(ctx context.Context, image string, size ImageSize) string {
	if image == "" {
		return ""
	}

	name := image
	if p.resizer != nil {
		resized, err := p.resizer.Resize(ctx, image, size.Width, size.Height)
		if err != nil {
			logger.FromContext(ctx).Warn().Err(err).
				Str("image", image).
				Int("width", size.Width).
				Int("height", size.Height).
				Msg("image resize failed, serving original")
		} else {
			name = resized
		}
	}

	return path.Join(p.urlPrefix, name)
}
