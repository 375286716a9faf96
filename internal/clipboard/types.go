// Package clipboard reads images and text from, and writes text to, the
// system clipboard.
package clipboard

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	perrors "github.com/zhubert/parley/internal/errors"
)

// MaxImageSize is the maximum accepted encoded image size in bytes
const MaxImageSize = 10_000_000

// MaxImageDimension is the maximum accepted width or height in pixels
const MaxImageDimension = 8000

// SupportedFormats lists the image formats that can be pasted
var SupportedFormats = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/bmp"}

// ImageData represents clipboard image data
type ImageData struct {
	Data      []byte      // PNG encoded image data
	MediaType string      // MIME type (always "image/png" since we encode to PNG)
	Width     int
	Height    int
	Image     image.Image // decoded image
}

// Decode decodes raw image bytes in any supported format and re-encodes them
// as PNG.
func Decode(raw []byte) (*ImageData, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, perrors.ImageDecodeFailed(err)
	}

	var pngBuf bytes.Buffer
	if err := png.Encode(&pngBuf, img); err != nil {
		return nil, perrors.ImageDecodeFailed(err)
	}

	bounds := img.Bounds()
	return &ImageData{
		Data:      pngBuf.Bytes(),
		MediaType: "image/png",
		Width:     bounds.Dx(),
		Height:    bounds.Dy(),
		Image:     img,
	}, nil
}

// Validate checks the image against the size limits.
func (img *ImageData) Validate() error {
	if len(img.Data) > MaxImageSize {
		return fmt.Errorf("image too large: %d bytes (max %d bytes / %.1fMB)",
			len(img.Data), MaxImageSize, float64(MaxImageSize)/1000000)
	}

	if img.Width > MaxImageDimension || img.Height > MaxImageDimension {
		return fmt.Errorf("image dimensions too large: %dx%d (max %dx%d)",
			img.Width, img.Height, MaxImageDimension, MaxImageDimension)
	}

	if img.Width == 0 || img.Height == 0 {
		return fmt.Errorf("image is empty")
	}

	return nil
}

// SizeKB returns the image size in kilobytes
func (img *ImageData) SizeKB() int {
	return len(img.Data) / 1024
}
