package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// ImageResult is an image encoded for transport.
type ImageResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Size limits for every image this package allocates. Requests above them
// are rejected before any pixel buffer is made.
const (
	// MaxSide is the largest width or height of a rendered image.
	MaxSide = 16384

	// MaxPixels is the largest width×height of a rendered image.
	MaxPixels = 1 << 25
)

// CheckSize rejects non-positive sizes and sizes above MaxSide or MaxPixels.
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid size %dx%d: width and height must be positive", width, height)
	}
	if width > MaxSide || height > MaxSide {
		return fmt.Errorf("size %dx%d exceeds the %d pixel limit per side", width, height, MaxSide)
	}
	if width > MaxPixels/height {
		return fmt.Errorf("size %dx%d exceeds the %d pixel limit", width, height, MaxPixels)
	}
	return nil
}

// RenderCrop cuts crop out of img and resizes it to width×height.
//
// A zero width or height is derived from the other to keep the crop's aspect
// ratio; both zero keeps the crop at its own size.
//
// Parameters:
//   - img: The source image. Crop coordinates are relative to its bounds origin.
//   - crop: The region to cut. Must be non-empty and lie inside img.
//   - width, height: The output size, or 0 to derive it.
//
// Returns:
//   - *ImageResult: The rendered crop as a base64-encoded PNG.
//   - error: Non-nil if the crop is invalid or the output size is out of range.
//
// # Errors
//
// Output sizes are limited to MaxSide per side and MaxPixels in total, so a
// single request cannot allocate an unbounded buffer.
func RenderCrop(img image.Image, crop scoring.Crop, width, height int) (*ImageResult, error) {
	if crop.Empty() {
		return nil, fmt.Errorf("invalid crop %v: width and height must be positive", crop)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid output size %dx%d", width, height)
	}

	bounds := img.Bounds()
	rect := crop.Rect().Add(bounds.Min)
	if !rect.In(bounds) {
		return nil, fmt.Errorf("crop %v outside image bounds %dx%d", crop, bounds.Dx(), bounds.Dy())
	}

	var out image.Image = imaging.Crop(img, rect)
	if width == 0 && height == 0 {
		return encodePNG(out)
	}

	if width > MaxSide || height > MaxSide {
		return nil, fmt.Errorf("output size %dx%d exceeds the %d pixel limit per side", width, height, MaxSide)
	}
	// Same rounding as imaging.Resize uses for a zero side.
	if width == 0 {
		width = int(math.Max(1, math.Floor(float64(height)*float64(crop.Width)/float64(crop.Height)+0.5)))
	}
	if height == 0 {
		height = int(math.Max(1, math.Floor(float64(width)*float64(crop.Height)/float64(crop.Width)+0.5)))
	}
	if err := CheckSize(width, height); err != nil {
		return nil, fmt.Errorf("output: %w", err)
	}

	out = imaging.Resize(out, width, height, imaging.Lanczos)
	return encodePNG(out)
}

// encodePNG encodes img as a base64 PNG result.
func encodePNG(img image.Image) (*ImageResult, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	b := img.Bounds()
	return &ImageResult{
		Width:       b.Dx(),
		Height:      b.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
