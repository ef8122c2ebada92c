package adapter

import "errors"

var (
	ErrMailPublish      = errors.New("failed to publish mail")
	ErrMailerClosed     = errors.New("mailer is closed")
	ErrInvalidImagePath = errors.New("invalid image path")
	ErrImageNotFound    = errors.New("image was not found")
	ErrInvalidImageSize = errors.New("invalid image size")
	ErrImageProcessing  = errors.New("failed to process image")
)
