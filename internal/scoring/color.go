package scoring

import (
	"image/color"
	"math"
)

// RGB is an 8-bit color sample without alpha.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Gray returns the achromatic sample with all channels set to v.
func Gray(v uint8) RGB {
	return RGB{R: v, G: v, B: v}
}

// RGBFromColor converts any color.Color to an RGB sample by dropping the low
// byte of each 16-bit channel. Alpha is ignored; premultiplied colors keep
// their premultiplied values.
func RGBFromColor(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	return RGB{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8)}
}

// Degenerate reports whether c has zero magnitude, for which SkinCol is NaN.
func Degenerate(c RGB) bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Cie is the luma proxy used for detail detection. Channels are taken as raw
// 0-255 magnitudes, so the result ranges over [0, 331.5].
func Cie(c RGB) float64 {
	return 0.5126*float64(c.B) + 0.7152*float64(c.G) + 0.0722*float64(c.R)
}

// SkinCol returns the skin-tone likelihood of c under the default heuristics.
func SkinCol(c RGB) float64 {
	return defaultHeuristics.SkinCol(c)
}

// SkinCol returns 1 minus the Euclidean distance between the direction of c
// and h.SkinColor. Higher is more skin-like. Pure black yields NaN.
func (h Heuristics) SkinCol(c RGB) float64 {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	mag := math.Sqrt(r*r + g*g + b*b)

	rd := r/mag - h.SkinColor[0]
	gd := g/mag - h.SkinColor[1]
	bd := b/mag - h.SkinColor[2]

	d := math.Sqrt(rd*rd + gd*gd + bd*bd)
	return 1.0 - d
}

// Saturation returns the HSL saturation of c in [0, 1].
func Saturation(c RGB) float64 {
	rf := float64(c.R) / 255.0
	gf := float64(c.G) / 255.0
	bf := float64(c.B) / 255.0

	maximum := math.Max(math.Max(rf, gf), bf)
	minimum := math.Min(math.Min(rf, gf), bf)

	if maximum == minimum {
		return 0
	}

	l := (maximum + minimum) / 2.0
	d := maximum - minimum

	if l > 0.5 {
		return d / (2.0 - maximum - minimum)
	}
	return d / (maximum + minimum)
}
