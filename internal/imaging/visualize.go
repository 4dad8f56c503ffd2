package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// Importance map palette. Weights are blended in Lab space from neutral
// toward one of the two extremes.
var (
	importanceNegative = colorful.Color{R: 0.85, G: 0.10, B: 0.10}
	importanceNeutral  = colorful.Color{R: 0.10, G: 0.10, B: 0.10}
	importancePositive = colorful.Color{R: 0.10, G: 0.85, B: 0.25}
)

// EncodeAnalysis encodes an analyzer feature map (skin in red, detail in
// green, saturation in blue).
func EncodeAnalysis(analysis image.Image) (*ImageResult, error) {
	return encodePNG(analysis)
}

// ImportanceMapResult is a rendered importance map plus the range of weights
// it covers.
type ImportanceMapResult struct {
	ImageResult
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// ImportanceMap renders h.Importance for crop over a width×height canvas.
// Negative weights shade toward red and positive toward green, each scaled
// by the largest magnitude of its sign.
//
// Parameters:
//   - crop: The crop the weights are relative to. Must be non-empty; it may
//     extend past the canvas.
//   - width, height: The canvas size in pixels.
//   - h: The heuristics whose Importance is drawn.
//
// Returns:
//   - *ImportanceMapResult: The map as base64 PNG plus the weight range.
//   - error: Non-nil for an empty crop or a canvas that is not positive or
//     exceeds MaxSide per side or MaxPixels in total.
func ImportanceMap(crop scoring.Crop, width, height int, h scoring.Heuristics) (*ImportanceMapResult, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, fmt.Errorf("canvas: %w", err)
	}
	if crop.Empty() {
		return nil, fmt.Errorf("invalid crop %v: width and height must be positive", crop)
	}

	weights := make([]float64, width*height)
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			w := h.Importance(crop, x, y)
			weights[y*width+x] = w
			lo = math.Min(lo, w)
			hi = math.Max(hi, w)
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			out.Set(x, y, shade(weights[y*width+x], lo, hi))
		}
	}

	img, err := encodePNG(out)
	if err != nil {
		return nil, err
	}
	return &ImportanceMapResult{ImageResult: *img, Min: lo, Max: hi}, nil
}

func shade(w, lo, hi float64) colorful.Color {
	switch {
	case w > 0 && hi > 0:
		return importanceNeutral.BlendLab(importancePositive, w/hi).Clamped()
	case w < 0 && lo < 0:
		return importanceNeutral.BlendLab(importanceNegative, w/lo).Clamped()
	}
	return importanceNeutral
}
