// Package config holds the run configuration for the gazer command.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// PYMOVEMENTS_* environment variables, then command-line flags.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

// Config is the fully resolved run configuration.
type Config struct {
	// Input is the gaze sample CSV to process.
	Input string `mapstructure:"input"`
	// Detector is the detection algorithm name (see internal/detect).
	Detector string `mapstructure:"detector"`
	// Filter is an optional event filter expression.
	Filter string `mapstructure:"filter"`
	// OutputCSV is the path the detected events are written to; empty
	// disables the CSV sink.
	OutputCSV string `mapstructure:"output_csv"`
	// StorePath is the SQLite database path; empty disables persistence.
	StorePath string `mapstructure:"store_path"`
	// SamplingRate of the input recording in Hz.
	SamplingRate float64 `mapstructure:"sampling_rate"`
	// Unit is the input coordinate unit: "pixel" or "dva".
	Unit string `mapstructure:"unit"`
	// VelocityMethod selects the differentiation scheme when the detector
	// needs velocities: "preceding", "neighbors" or "fivepoint".
	VelocityMethod string `mapstructure:"velocity_method"`

	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	Screen        ScreenConfig        `mapstructure:"screen"`
	Columns       ColumnsConfig       `mapstructure:"columns"`
	IVT           IVTConfig           `mapstructure:"ivt"`
	IDT           IDTConfig           `mapstructure:"idt"`
	Microsaccades MicrosaccadesConfig `mapstructure:"microsaccades"`
	Blink         BlinkConfig         `mapstructure:"blink"`
}

// ScreenConfig describes presentation geometry for unit conversion and
// out-of-screen detection. A zero value means no screen is configured.
type ScreenConfig struct {
	WidthPx    float64 `mapstructure:"width_px"`
	HeightPx   float64 `mapstructure:"height_px"`
	WidthCm    float64 `mapstructure:"width_cm"`
	HeightCm   float64 `mapstructure:"height_cm"`
	DistanceCm float64 `mapstructure:"distance_cm"`
}

// Configured reports whether screen geometry was provided.
func (s ScreenConfig) Configured() bool {
	return s != ScreenConfig{}
}

// ColumnsConfig maps CSV header names to sample fields.
type ColumnsConfig struct {
	Time  string `mapstructure:"time"`
	X     string `mapstructure:"x"`
	Y     string `mapstructure:"y"`
	Pupil string `mapstructure:"pupil"`
}

// IVTConfig overrides velocity-threshold fixation detection parameters.
type IVTConfig struct {
	VelocityThreshold float64 `mapstructure:"velocity_threshold"`
	MinimumDuration   int64   `mapstructure:"minimum_duration"`
	IncludeNaN        bool    `mapstructure:"include_nan"`
}

// IDTConfig overrides dispersion-threshold fixation detection parameters.
type IDTConfig struct {
	DispersionThreshold float64 `mapstructure:"dispersion_threshold"`
	MinimumDuration     int64   `mapstructure:"minimum_duration"`
	IncludeNaN          bool    `mapstructure:"include_nan"`
}

// MicrosaccadesConfig overrides microsaccade detection parameters.
type MicrosaccadesConfig struct {
	ThresholdMethod string  `mapstructure:"threshold_method"`
	ThresholdFactor float64 `mapstructure:"threshold_factor"`
	MinimumSamples  int     `mapstructure:"minimum_samples"`
}

// BlinkConfig overrides blink detection parameters. A zero Delta
// auto-estimates the flagging threshold from the signal.
type BlinkConfig struct {
	Delta           float64 `mapstructure:"delta"`
	MinimumDuration int64   `mapstructure:"minimum_duration"`
	MaximumDuration int64   `mapstructure:"maximum_duration"`
}

// envOverrides are environment variables applied on top of file values.
type envOverrides struct {
	StorePath string `env:"PYMOVEMENTS_STORE_PATH"`
	LogLevel  string `env:"PYMOVEMENTS_LOG_LEVEL"`
	LogFile   string `env:"PYMOVEMENTS_LOG_FILE"`
}

// setDefaults sets the default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("detector", "ivt")
	v.SetDefault("sampling_rate", 1000.0)
	v.SetDefault("unit", "pixel")
	v.SetDefault("velocity_method", "fivepoint")
	v.SetDefault("log_level", "info")

	v.SetDefault("columns.time", "time")
	v.SetDefault("columns.x", "x")
	v.SetDefault("columns.y", "y")
	v.SetDefault("columns.pupil", "pupil")

	v.SetDefault("ivt.velocity_threshold", 20.0)
	v.SetDefault("ivt.minimum_duration", 100)
	v.SetDefault("idt.dispersion_threshold", 1.0)
	v.SetDefault("idt.minimum_duration", 100)
	v.SetDefault("microsaccades.threshold_method", "engbert2015")
	v.SetDefault("microsaccades.threshold_factor", 6.0)
	v.SetDefault("microsaccades.minimum_samples", 6)
	v.SetDefault("blink.minimum_duration", 50)
	v.SetDefault("blink.maximum_duration", 500)
}

// Load builds a Config from defaults, an optional config file, and
// environment overrides. An empty path skips the file layer.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}
	if overrides.StorePath != "" {
		cfg.StorePath = overrides.StorePath
	}
	if overrides.LogLevel != "" {
		cfg.LogLevel = overrides.LogLevel
	}
	if overrides.LogFile != "" {
		cfg.LogFile = overrides.LogFile
	}

	return &cfg, nil
}

// Validate checks the resolved configuration for consistency.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("no input file provided")
	}
	if c.Detector == "" {
		return fmt.Errorf("no detector selected")
	}
	if c.SamplingRate <= 0 {
		return fmt.Errorf("sampling rate must be positive, got %v", c.SamplingRate)
	}
	if c.Unit != "pixel" && c.Unit != "dva" {
		return fmt.Errorf("unit must be \"pixel\" or \"dva\", got %q", c.Unit)
	}
	return nil
}
