package scoring

import "math"

// Importance returns the spatial weight of pixel (x, y) for crop under the
// default heuristics.
func Importance(crop Crop, x, y int) float64 {
	return defaultHeuristics.Importance(crop, x, y)
}

// Importance returns the signed weight of pixel (x, y) with respect to crop.
//
// Pixels outside the crop weigh h.OutsideImportance. Inside, the weight peaks
// at the crop center, falls off radially, drops sharply inside the edge band
// and, when h.RuleOfThirds is set, is boosted near the thirds lines.
//
// A crop with zero or negative Width or Height contains no pixels, so every
// point weighs h.OutsideImportance.
func (h Heuristics) Importance(crop Crop, x, y int) float64 {
	if crop.X > x || x >= crop.X+crop.Width || crop.Y > y || y >= crop.Y+crop.Height {
		return h.OutsideImportance
	}

	xf := float64(x-crop.X) / float64(crop.Width)
	yf := float64(y-crop.Y) / float64(crop.Height)

	// 0 at the center, 1 at the edge
	px := math.Abs(0.5-xf) * 2
	py := math.Abs(0.5-yf) * 2

	dx := math.Max(px-1.0+h.EdgeRadius, 0)
	dy := math.Max(py-1.0+h.EdgeRadius, 0)
	d := (dx*dx + dy*dy) * h.EdgeWeight

	s := 1.41 - math.Sqrt(px*px+py*py)
	if h.RuleOfThirds {
		s += (math.Max(0, s+d+0.5) * 1.2) * (thirds(px) + thirds(py))
	}

	return s + d
}

// thirds is a narrow bump of height 1 centered on v = 1/3, repeating with
// period 2.
func thirds(v float64) float64 {
	t := (math.Mod(v-(1.0/3.0)+1.0, 2.0)*0.5 - 0.5) * 16
	return math.Max(1.0-t*t, 0)
}
