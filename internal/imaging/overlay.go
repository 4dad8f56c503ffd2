package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// OverlayResult is an image with crop outlines drawn on it.
type OverlayResult struct {
	ImageResult
	Crops int `json:"crops"`
}

// CropOverlay draws crops on a copy of img. The first crop is drawn in
// colorHex ("#RRGGBB"), the rest in a dimmed version of it. With showThirds
// set, the rule-of-thirds lines of the first crop are drawn too.
//
// Parameters:
//   - img: The source image. It is not modified.
//   - crops: The crops to outline, best first, relative to img's bounds origin.
//     Parts outside the image are clipped.
//   - showThirds: Whether to draw the thirds lines of crops[0].
//   - colorHex: The outline color of the best crop.
//
// Returns:
//   - *OverlayResult: The annotated image as base64 PNG and the crop count.
//   - error: Non-nil for an unparseable color or an empty crop.
//
// Runners-up are drawn first so the best crop's outline stays on top where
// they overlap.
func CropOverlay(img image.Image, crops []scoring.Crop, showThirds bool, colorHex string) (*OverlayResult, error) {
	primary, err := colorful.Hex(colorHex)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", colorHex, err)
	}
	secondary := primary.BlendRgb(colorful.Color{R: 0.5, G: 0.5, B: 0.5}, 0.6)

	// Clone rebases the copy at (0,0), matching crop coordinates.
	out := imaging.Clone(img)

	for i := len(crops) - 1; i >= 0; i-- {
		c := crops[i]
		if c.Empty() {
			return nil, fmt.Errorf("invalid crop %v: width and height must be positive", c)
		}
		var col color.Color = secondary
		if i == 0 {
			col = primary
		}
		drawRect(out, c.Rect(), col)
	}

	if showThirds && len(crops) > 0 {
		c := crops[0]
		for k := 1; k <= 2; k++ {
			x := c.X + c.Width*k/3
			y := c.Y + c.Height*k/3
			drawVLine(out, x, c.Y, c.Y+c.Height, primary)
			drawHLine(out, y, c.X, c.X+c.Width, primary)
		}
	}

	res, err := encodePNG(out)
	if err != nil {
		return nil, err
	}
	return &OverlayResult{ImageResult: *res, Crops: len(crops)}, nil
}

// drawRect outlines r, clipped to the image.
func drawRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	drawHLine(img, r.Min.Y, r.Min.X, r.Max.X, c)
	drawHLine(img, r.Max.Y-1, r.Min.X, r.Max.X, c)
	drawVLine(img, r.Min.X, r.Min.Y, r.Max.Y, c)
	drawVLine(img, r.Max.X-1, r.Min.Y, r.Max.Y, c)
}

func drawHLine(img *image.NRGBA, y, x1, x2 int, c color.Color) {
	for x := x1; x < x2; x++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, c)
		}
	}
}

func drawVLine(img *image.NRGBA, x, y1, y2 int, c color.Color) {
	for y := y1; y < y2; y++ {
		if image.Pt(x, y).In(img.Bounds()) {
			img.Set(x, y, c)
		}
	}
}
