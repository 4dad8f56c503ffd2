package analyzer

import (
	"io"
	"log"
	"runtime"
)

// Options controls feature extraction, candidate enumeration and the way the
// three feature channels are combined into Score.Total.
type Options struct {
	DetailWeight float64 `json:"detail_weight" mapstructure:"detail_weight"`

	SkinBias          float64 `json:"skin_bias" mapstructure:"skin_bias"`
	SkinBrightnessMin float64 `json:"skin_brightness_min" mapstructure:"skin_brightness_min"`
	SkinBrightnessMax float64 `json:"skin_brightness_max" mapstructure:"skin_brightness_max"`
	SkinThreshold     float64 `json:"skin_threshold" mapstructure:"skin_threshold"`
	SkinWeight        float64 `json:"skin_weight" mapstructure:"skin_weight"`

	SaturationBrightnessMin float64 `json:"saturation_brightness_min" mapstructure:"saturation_brightness_min"`
	SaturationBrightnessMax float64 `json:"saturation_brightness_max" mapstructure:"saturation_brightness_max"`
	SaturationThreshold     float64 `json:"saturation_threshold" mapstructure:"saturation_threshold"`
	SaturationBias          float64 `json:"saturation_bias" mapstructure:"saturation_bias"`
	SaturationWeight        float64 `json:"saturation_weight" mapstructure:"saturation_weight"`

	// ScoreDownSample is the pixel stride used when summing a crop's score.
	ScoreDownSample int `json:"score_down_sample" mapstructure:"score_down_sample"`

	// Step is the pixel stride of the sliding window.
	Step int `json:"step" mapstructure:"step"`

	// ScaleStep, MinScale and MaxScale bound the crop sizes tried, relative
	// to the largest crop of the requested aspect ratio.
	ScaleStep float64 `json:"scale_step" mapstructure:"scale_step"`
	MinScale  float64 `json:"min_scale" mapstructure:"min_scale"`
	MaxScale  float64 `json:"max_scale" mapstructure:"max_scale"`

	// Prescale shrinks the image before analysis so that the largest crop
	// matches the requested output size.
	Prescale bool `json:"prescale" mapstructure:"prescale"`

	// Workers is the number of goroutines scoring candidates. Values below 1
	// mean runtime.GOMAXPROCS(0).
	Workers int `json:"workers" mapstructure:"workers"`
}

// DefaultOptions returns the classic smartcrop weights.
func DefaultOptions() Options {
	return Options{
		DetailWeight: 0.2,

		SkinBias:          0.01,
		SkinBrightnessMin: 0.2,
		SkinBrightnessMax: 1.0,
		SkinThreshold:     0.8,
		SkinWeight:        1.8,

		SaturationBrightnessMin: 0.05,
		SaturationBrightnessMax: 0.9,
		SaturationThreshold:     0.4,
		SaturationBias:          0.2,
		SaturationWeight:        0.1,

		ScoreDownSample: 8,
		Step:            8,
		ScaleStep:       0.1,
		MinScale:        1.0,
		MaxScale:        1.0,
		Prescale:        true,
		Workers:         runtime.GOMAXPROCS(0),
	}
}

func (o Options) workers() int {
	if o.Workers < 1 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Logger receives debug output from the analyzer. With DebugMode off nothing
// is written.
type Logger struct {
	DebugMode bool
	Log       *log.Logger
}

// DiscardLogger returns a Logger that drops everything.
func DiscardLogger() Logger {
	return Logger{Log: log.New(io.Discard, "", 0)}
}

func (l Logger) debugf(format string, args ...interface{}) {
	if !l.DebugMode || l.Log == nil {
		return
	}
	l.Log.Printf(format, args...)
}
