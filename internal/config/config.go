// Package config loads server configuration from defaults, an optional
// YAML/JSON/TOML file and SMARTCROP_MCP_* environment variables, in
// increasing order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/smartcrop-mcp/internal/analyzer"
	"github.com/ironsheep/smartcrop-mcp/internal/scoring"
)

// EnvPrefix prefixes every environment override. Nested keys join with "_",
// so analyzer.step becomes SMARTCROP_MCP_ANALYZER_STEP.
const EnvPrefix = "SMARTCROP_MCP"

// Config holds the application configuration
type Config struct {
	// LogLevel is "info" or "debug". Debug also turns on analyzer
	// diagnostics for degenerate pixels and crops.
	LogLevel string `mapstructure:"log_level" json:"log_level"`

	// CacheSize bounds the number of decoded images kept in memory. 0 means
	// unbounded.
	CacheSize int `mapstructure:"cache_size" json:"cache_size"`

	Heuristics scoring.Heuristics `mapstructure:"heuristics" json:"heuristics"`
	Analyzer   analyzer.Options   `mapstructure:"analyzer" json:"analyzer"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		LogLevel:   "info",
		CacheSize:  16,
		Heuristics: scoring.DefaultHeuristics(),
		Analyzer:   analyzer.DefaultOptions(),
	}
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}

// Load builds the configuration. When path is empty the file named by
// SMARTCROP_MCP_CONFIG is used, if set.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = v.GetString("config")
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so that environment overrides are seen by
// Unmarshal.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cache_size", d.CacheSize)

	h := d.Heuristics
	v.SetDefault("heuristics.skin_color", h.SkinColor[:])
	v.SetDefault("heuristics.outside_importance", h.OutsideImportance)
	v.SetDefault("heuristics.edge_radius", h.EdgeRadius)
	v.SetDefault("heuristics.edge_weight", h.EdgeWeight)
	v.SetDefault("heuristics.rule_of_thirds", h.RuleOfThirds)

	a := d.Analyzer
	v.SetDefault("analyzer.detail_weight", a.DetailWeight)
	v.SetDefault("analyzer.skin_bias", a.SkinBias)
	v.SetDefault("analyzer.skin_brightness_min", a.SkinBrightnessMin)
	v.SetDefault("analyzer.skin_brightness_max", a.SkinBrightnessMax)
	v.SetDefault("analyzer.skin_threshold", a.SkinThreshold)
	v.SetDefault("analyzer.skin_weight", a.SkinWeight)
	v.SetDefault("analyzer.saturation_brightness_min", a.SaturationBrightnessMin)
	v.SetDefault("analyzer.saturation_brightness_max", a.SaturationBrightnessMax)
	v.SetDefault("analyzer.saturation_threshold", a.SaturationThreshold)
	v.SetDefault("analyzer.saturation_bias", a.SaturationBias)
	v.SetDefault("analyzer.saturation_weight", a.SaturationWeight)
	v.SetDefault("analyzer.score_down_sample", a.ScoreDownSample)
	v.SetDefault("analyzer.step", a.Step)
	v.SetDefault("analyzer.scale_step", a.ScaleStep)
	v.SetDefault("analyzer.min_scale", a.MinScale)
	v.SetDefault("analyzer.max_scale", a.MaxScale)
	v.SetDefault("analyzer.prescale", a.Prescale)
	v.SetDefault("analyzer.workers", a.Workers)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "info", "debug":
	default:
		return fmt.Errorf("log_level must be info or debug, got %q", c.LogLevel)
	}

	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must not be negative")
	}

	if c.Heuristics.EdgeRadius < 0 || c.Heuristics.EdgeRadius > 1 {
		return fmt.Errorf("heuristics.edge_radius must be between 0 and 1")
	}

	a := c.Analyzer
	if a.Step < 1 {
		return fmt.Errorf("analyzer.step must be positive")
	}
	if a.ScoreDownSample < 1 {
		return fmt.Errorf("analyzer.score_down_sample must be positive")
	}
	if a.MinScale <= 0 || a.MaxScale < a.MinScale {
		return fmt.Errorf("analyzer.min_scale must be positive and not above analyzer.max_scale")
	}
	if a.MaxScale > a.MinScale && a.ScaleStep <= 0 {
		return fmt.Errorf("analyzer.scale_step must be positive when min_scale < max_scale")
	}
	if a.SkinThreshold < 0 || a.SkinThreshold >= 1 {
		return fmt.Errorf("analyzer.skin_threshold must be in [0, 1)")
	}
	if a.SaturationThreshold < 0 || a.SaturationThreshold >= 1 {
		return fmt.Errorf("analyzer.saturation_threshold must be in [0, 1)")
	}
	if a.SkinBrightnessMin > a.SkinBrightnessMax {
		return fmt.Errorf("analyzer.skin_brightness_min must not exceed analyzer.skin_brightness_max")
	}
	if a.SaturationBrightnessMin > a.SaturationBrightnessMax {
		return fmt.Errorf("analyzer.saturation_brightness_min must not exceed analyzer.saturation_brightness_max")
	}

	return nil
}
