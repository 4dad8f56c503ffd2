package scoring

import (
	"fmt"
	"image"
)

// Crop is a candidate rectangle in pixel coordinates.
type Crop struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Scale multiplies every field by ratio and truncates toward zero.
//
// Scaling is lossy: c.Scale(r).Scale(1/r) need not equal c.
func (c Crop) Scale(ratio float64) Crop {
	return Crop{
		X:      int(float64(c.X) * ratio),
		Y:      int(float64(c.Y) * ratio),
		Width:  int(float64(c.Width) * ratio),
		Height: int(float64(c.Height) * ratio),
	}
}

// Empty reports whether the crop has no area.
func (c Crop) Empty() bool {
	return c.Width <= 0 || c.Height <= 0
}

// Rect returns the crop as an image.Rectangle.
func (c Crop) Rect() image.Rectangle {
	return image.Rect(c.X, c.Y, c.X+c.Width, c.Y+c.Height)
}

func (c Crop) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", c.Width, c.Height, c.X, c.Y)
}

// Score holds the accumulated heuristics of one crop. The fields are
// unnormalized sums; how Total is derived from the channels is up to the
// caller.
type Score struct {
	Detail     float64 `json:"detail"`
	Saturation float64 `json:"saturation"`
	Skin       float64 `json:"skin"`
	Total      float64 `json:"total"`
}

// Add returns the channel-wise sum of s and o.
func (s Score) Add(o Score) Score {
	return Score{
		Detail:     s.Detail + o.Detail,
		Saturation: s.Saturation + o.Saturation,
		Skin:       s.Skin + o.Skin,
		Total:      s.Total + o.Total,
	}
}

// ScoredCrop pairs a crop with its score.
type ScoredCrop struct {
	Crop  Crop  `json:"crop"`
	Score Score `json:"score"`
}

// Scale rescales the crop and carries the score over unchanged.
func (sc ScoredCrop) Scale(ratio float64) ScoredCrop {
	return ScoredCrop{
		Crop:  sc.Crop.Scale(ratio),
		Score: sc.Score,
	}
}
