package adapter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-storefront/internal/logger"
	"golang.org/x/image/draw"
)

const jpegQuality = 90

// imageResizer writes "{w}x{h}-{file}" copies into the directory that holds
// the originals. Existing copies are reused.
type imageResizer struct {
	dir    string
	logger *logger.Logger
}

func NewImageResizer(dir string, logger *logger.Logger) ImageResizer {
	return &imageResizer{
		dir:    dir,
		logger: logger,
	}
}

// ResizedName is the file name of the width x height copy of source.
func ResizedName(source string, width, height int) string {
	return fmt.Sprintf("%dx%d-%s", width, height, source)
}

func (r *imageResizer) Resize(ctx context.Context, source string, width, height int) (string, error) {
	log := logger.FromContext(ctx)

	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, width, height)
	}
	if source == "" || source != filepath.Base(source) || strings.HasPrefix(source, ".") {
		return "", fmt.Errorf("%w: %q", ErrInvalidImagePath, source)
	}

	name := ResizedName(source, width, height)
	target := filepath.Join(r.dir, name)
	if _, err := os.Stat(target); err == nil {
		return name, nil
	}

	src, format, err := r.decode(filepath.Join(r.dir, source))
	if err != nil {
		return "", err
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, coverCrop(src.Bounds(), width, height), draw.Src, nil)

	if err := r.write(target, dst, format); err != nil {
		log.Err(err).Str("func", "*imageResizer.Resize").Str("target", name).Msg("failed to write resized image")
		return "", err
	}

	log.Debug().Str("func", "*imageResizer.Resize").Str("target", name).Msg("resized image created")
	return name, nil
}

func (r *imageResizer) decode(path string) (image.Image, string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, "", fmt.Errorf("%w: %s", ErrImageNotFound, filepath.Base(path))
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrImageProcessing, err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, "", fmt.Errorf("%w: decode: %w", ErrImageProcessing, err)
	}

	return img, format, nil
}

// write encodes img in the source format into a temporary file and renames
// it over target, so readers never see a partial image.
func (r *imageResizer) write(target string, img image.Image, format string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".resize-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrImageProcessing, err)
	}
	defer os.Remove(tmp.Name())

	switch format {
	case "jpeg":
		err = jpeg.Encode(tmp, img, &jpeg.Options{Quality: jpegQuality})
	case "gif":
		err = gif.Encode(tmp, img, nil)
	default:
		err = png.Encode(tmp, img)
	}
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrImageProcessing, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		return fmt.Errorf("%w: %w", ErrImageProcessing, err)
	}

	return nil
}

// coverCrop returns the centered region of bounds with the width:height
// aspect ratio. Scaling that region to width x height covers the target
// without distortion.
func coverCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	srcW, srcH := bounds.Dx(), bounds.Dy()

	// compare srcW/srcH with width/height without floating point
	if srcW*height > srcH*width {
		cropW := srcH * width / height
		x0 := bounds.Min.X + (srcW-cropW)/2
		return image.Rect(x0, bounds.Min.Y, x0+cropW, bounds.Max.Y)
	}

	cropH := srcW * height / width
	y0 := bounds.Min.Y + (srcH-cropH)/2
	return image.Rect(bounds.Min.X, y0, bounds.Max.X, y0+cropH)
}
