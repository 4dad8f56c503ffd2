// Package analyzer searches an image for the crop of a requested aspect ratio
// that best preserves its visually important content.
//
// The search has three stages:
//
//  1. Analyze builds a feature map: per pixel, a detail signal (Laplacian of
//     luma) in the green channel, a skin signal in red and a saturation
//     signal in blue.
//  2. Candidates enumerates sliding-window crops over a range of scales.
//  3. ScoreCrop weights every sampled feature pixel by scoring.Importance and
//     folds the sums into a Score.
//
// FindCrops runs all three, scoring candidates concurrently, and returns the
// results ranked by Score.Total in source image coordinates.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

var (
	// ErrInvalidSize is returned when the requested crop size is not positive.
	ErrInvalidSize = errors.New("crop width and height must be positive")

	// ErrEmptyImage is returned for images with no pixels.
	ErrEmptyImage = errors.New("image has no pixels")

	// ErrNoCandidates is returned when no crop fits inside the image.
	ErrNoCandidates = errors.New("no candidate crops fit the image")
)

// Analyzer finds and scores crops. It holds no mutable state and is safe for
// concurrent use.
type Analyzer struct {
	opts       Options
	heuristics scoring.Heuristics
	logger     Logger
}

// New creates an Analyzer.
func New(opts Options, h scoring.Heuristics, logger Logger) *Analyzer {
	return &Analyzer{opts: opts, heuristics: h, logger: logger}
}

// NewDefault creates an Analyzer with default options and heuristics that
// logs nothing.
func NewDefault() *Analyzer {
	return New(DefaultOptions(), scoring.DefaultHeuristics(), DiscardLogger())
}

// Options returns the analyzer's options.
func (a *Analyzer) Options() Options {
	return a.opts
}

// Heuristics returns the scoring constants the analyzer weights pixels with.
func (a *Analyzer) Heuristics() scoring.Heuristics {
	return a.heuristics
}

// Analyze computes the feature map of img. The result has the same size as
// img with its origin at (0,0): red holds skin, green holds detail and blue
// holds saturation, each in 0-255.
func (a *Analyzer) Analyze(img image.Image) *image.RGBA {
	src := clone.AsRGBA(img)
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	at := func(x, y int) scoring.RGB {
		c := src.RGBAAt(b.Min.X+x, b.Min.Y+y)
		return scoring.RGB{R: c.R, G: c.G, B: c.B}
	}

	cies := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cies[y*w+x] = scoring.Cie(at(x, y))
		}
	}

	degenerate := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := at(x, y)
			if scoring.Degenerate(c) {
				degenerate++
			}
			out.SetRGBA(x, y, color.RGBA{
				R: scoring.Bounds(a.skin(c)),
				G: scoring.Bounds(edge(cies, w, h, x, y)),
				B: scoring.Bounds(a.saturation(c)),
				A: 255,
			})
		}
	}

	if degenerate > 0 {
		a.logger.debugf("analyzer: %d of %d pixels have zero magnitude; skin likelihood is NaN and they were skipped", degenerate, w*h)
	}
	return out
}

// edge is the 4-neighbour Laplacian of luma. Border pixels use raw luma.
func edge(cies []float64, w, h, x, y int) float64 {
	i := y*w + x
	if x == 0 || x >= w-1 || y == 0 || y >= h-1 {
		return cies[i]
	}
	return cies[i]*4 - cies[i-w] - cies[i-1] - cies[i+1] - cies[i+w]
}

// skin maps skin likelihood to 0-255. A NaN likelihood fails the threshold
// comparison and contributes 0.
func (a *Analyzer) skin(c scoring.RGB) float64 {
	lightness := scoring.Cie(c) / 255.0
	skin := a.heuristics.SkinCol(c)

	isSkin := skin > a.opts.SkinThreshold
	isBright := lightness >= a.opts.SkinBrightnessMin && lightness <= a.opts.SkinBrightnessMax
	if !isSkin || !isBright {
		return 0
	}
	return (skin - a.opts.SkinThreshold) * (255.0 / (1.0 - a.opts.SkinThreshold))
}

func (a *Analyzer) saturation(c scoring.RGB) float64 {
	lightness := scoring.Cie(c) / 255.0
	sat := scoring.Saturation(c)

	acceptable := sat > a.opts.SaturationThreshold &&
		lightness >= a.opts.SaturationBrightnessMin &&
		lightness <= a.opts.SaturationBrightnessMax
	if !acceptable {
		return 0
	}
	return (sat - a.opts.SaturationThreshold) * (255.0 / (1.0 - a.opts.SaturationThreshold))
}

// ScoreCrop sums the feature map under crop. Every ScoreDownSample-th pixel
// in each direction is sampled and weighted by its importance.
//
// Total divides the weighted channels by the crop area, so an empty crop
// yields a NaN or infinite Total.
func (a *Analyzer) ScoreCrop(analysis *image.RGBA, crop scoring.Crop) scoring.Score {
	if crop.Empty() {
		a.logger.debugf("analyzer: scoring empty crop %v", crop)
	}

	step := a.opts.ScoreDownSample
	if step < 1 {
		step = 1
	}

	b := analysis.Bounds()
	var score scoring.Score
	for y := 0; y < b.Dy(); y += step {
		for x := 0; x < b.Dx(); x += step {
			p := analysis.RGBAAt(b.Min.X+x, b.Min.Y+y)
			i := a.heuristics.Importance(crop, x, y)
			detail := float64(p.G) / 255.0

			score.Skin += float64(p.R) / 255.0 * (detail + a.opts.SkinBias) * i
			score.Detail += detail * i
			score.Saturation += float64(p.B) / 255.0 * (detail + a.opts.SaturationBias) * i
		}
	}

	score.Total = (score.Detail*a.opts.DetailWeight +
		score.Skin*a.opts.SkinWeight +
		score.Saturation*a.opts.SaturationWeight) /
		float64(crop.Width*crop.Height)
	return score
}

// Candidates enumerates crops of cropWidth×cropHeight scaled from MaxScale
// down to minScale in ScaleStep decrements, sliding by Step pixels, that fit
// inside a width×height image.
func (a *Analyzer) Candidates(width, height int, cropWidth, cropHeight, minScale float64) []scoring.Crop {
	step := float64(a.opts.Step)
	if step < 1 {
		step = 1
	}

	var crops []scoring.Crop
	if a.opts.ScaleStep <= 0 {
		minScale = a.opts.MaxScale
	}
	for scale := a.opts.MaxScale; scale >= minScale; scale -= a.opts.ScaleStep {
		cw := scoring.Chop(cropWidth * scale)
		ch := scoring.Chop(cropHeight * scale)
		if cw < 1 || ch < 1 {
			break
		}
		for y := 0.0; y+ch <= float64(height); y += step {
			for x := 0.0; x+cw <= float64(width); x += step {
				crops = append(crops, scoring.Crop{
					X:      int(x),
					Y:      int(y),
					Width:  int(cw),
					Height: int(ch),
				})
			}
		}
		if a.opts.ScaleStep <= 0 {
			break
		}
	}
	return crops
}

// FindBestCrop returns the highest scoring crop with the aspect ratio of
// width×height, in img's coordinates relative to its bounds origin.
func (a *Analyzer) FindBestCrop(ctx context.Context, img image.Image, width, height int) (scoring.ScoredCrop, error) {
	crops, err := a.FindCrops(ctx, img, width, height)
	if err != nil {
		return scoring.ScoredCrop{}, err
	}
	return crops[0], nil
}

// FindCrops scores every candidate crop with the aspect ratio of width×height
// and returns them best first, mapped back to img's resolution.
//
// Parameters:
//   - ctx: Cancels the concurrent scoring stage.
//   - img: The image to search. Results are relative to its bounds origin.
//   - width, height: The target size. Its aspect ratio shapes the candidates;
//     with Prescale set its magnitude also picks the analysis resolution.
//
// Returns:
//   - []scoring.ScoredCrop: Every candidate, highest Total first, NaN last.
//   - error: ErrInvalidSize, ErrEmptyImage, ErrNoCandidates, or the context
//     error wrapped as "scoring candidates".
//
// # Prescaling
//
// When the target is smaller than the largest fitting crop, the image is
// downsampled by 1/scale/MinScale before analysis, so the search runs near
// the target resolution. Crops are scaled back with ScoredCrop.Scale and
// can lose up to one pixel to truncation.
func (a *Analyzer) FindCrops(ctx context.Context, img image.Image, width, height int) ([]scoring.ScoredCrop, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, ErrEmptyImage
	}

	scale := math.Min(float64(b.Dx())/float64(width), float64(b.Dy())/float64(height))
	cropWidth := scoring.Chop(float64(width) * scale)
	cropHeight := scoring.Chop(float64(height) * scale)
	realMinScale := math.Min(a.opts.MaxScale, math.Max(1.0/scale, a.opts.MinScale))

	prescale := 1.0
	if a.opts.Prescale {
		if p := 1.0 / scale / a.opts.MinScale; p < 1.0 {
			pw := int(float64(b.Dx()) * p)
			ph := int(float64(b.Dy()) * p)
			if pw > 0 && ph > 0 {
				img = imaging.Resize(img, pw, ph, imaging.Lanczos)
				cropWidth = scoring.Chop(cropWidth * p)
				cropHeight = scoring.Chop(cropHeight * p)
				prescale = p
				a.logger.debugf("analyzer: prescaled %dx%d to %dx%d", b.Dx(), b.Dy(), pw, ph)
			}
		}
	}

	analysis := a.Analyze(img)
	ab := analysis.Bounds()
	candidates := a.Candidates(ab.Dx(), ab.Dy(), cropWidth, cropHeight, realMinScale)
	if len(candidates) == 0 {
		return nil, ErrNoCandidates
	}
	a.logger.debugf("analyzer: scoring %d candidates of %.0fx%.0f", len(candidates), cropWidth, cropHeight)

	scored, err := a.scoreAll(ctx, analysis, candidates)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return better(scored[i].Score.Total, scored[j].Score.Total)
	})

	for i := range scored {
		scored[i] = scored[i].Scale(1.0 / prescale)
	}
	return scored, nil
}

// better orders totals descending with NaN last.
func better(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a > b
}

// scoreAll scores candidates on a bounded pool of goroutines. Each worker
// owns a contiguous chunk of the output slice.
func (a *Analyzer) scoreAll(ctx context.Context, analysis *image.RGBA, candidates []scoring.Crop) ([]scoring.ScoredCrop, error) {
	out := make([]scoring.ScoredCrop, len(candidates))

	workers := a.opts.workers()
	chunk := (len(candidates) + workers - 1) / workers

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(candidates); start += chunk {
		start, end := start, min(start+chunk, len(candidates))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				out[i] = scoring.ScoredCrop{
					Crop:  candidates[i],
					Score: a.ScoreCrop(analysis, candidates[i]),
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring candidates: %w", err)
	}
	return out, nil
}
