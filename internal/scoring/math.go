package scoring

import "math"

// Chop rounds x toward zero.
func Chop(x float64) float64 {
	if x < 0 {
		return math.Ceil(x)
	}
	return math.Floor(x)
}

// Bounds clamps l to [0, 255] and rounds it to the nearest byte value.
// Halves round away from zero.
func Bounds(l float64) uint8 {
	return uint8(math.Round(math.Min(math.Max(l, 0), 255)))
}
