package imaging

import (
	"fmt"
	"image"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// HSLColor is a color in HSL space.
type HSLColor struct {
	H float64 `json:"h"` // Hue in degrees, 0-360
	S float64 `json:"s"` // Saturation, 0-1
	L float64 `json:"l"` // Lightness, 0-1
}

// HeuristicsSample is the value of every per-pixel scoring heuristic at one
// location.
type HeuristicsSample struct {
	X   int         `json:"x"`
	Y   int         `json:"y"`
	Hex string      `json:"hex"`
	RGB scoring.RGB `json:"rgb"`
	HSL HSLColor    `json:"hsl"`

	// Luma is the detail proxy (scoring.Cie), 0-331.5.
	Luma float64 `json:"luma"`

	// Saturation is the HSL saturation used by the saturation channel.
	Saturation float64 `json:"saturation"`

	// Skin is the skin-tone likelihood. It is nil when the pixel is pure
	// black, for which the likelihood is undefined.
	Skin *float64 `json:"skin"`

	// Degenerate is set when the pixel has zero magnitude.
	Degenerate bool `json:"degenerate"`
}

// SampleHeuristics evaluates the scoring heuristics at (x, y) using the skin
// reference from h.
func SampleHeuristics(img image.Image, x, y int, h scoring.Heuristics) (*HeuristicsSample, error) {
	bounds := img.Bounds()
	pt := image.Pt(bounds.Min.X+x, bounds.Min.Y+y)
	if !pt.In(bounds) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	c := scoring.RGBFromColor(img.At(pt.X, pt.Y))
	cf := colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
	hue, sat, light := cf.Hsl()

	sample := &HeuristicsSample{
		X:          x,
		Y:          y,
		Hex:        cf.Hex(),
		RGB:        c,
		HSL:        HSLColor{H: hue, S: sat, L: light},
		Luma:       scoring.Cie(c),
		Saturation: scoring.Saturation(c),
		Degenerate: scoring.Degenerate(c),
	}
	if skin := h.SkinCol(c); !math.IsNaN(skin) {
		sample.Skin = &skin
	}
	return sample, nil
}
