// gazer detects eye-movement events in recorded gaze samples and writes them
// to CSV and/or a local SQLite archive.
package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/pymovements/pymovements/internal/config"
	"github.com/pymovements/pymovements/internal/detect"
	"github.com/pymovements/pymovements/internal/events"
	"github.com/pymovements/pymovements/internal/filter"
	"github.com/pymovements/pymovements/internal/gaze"
	"github.com/pymovements/pymovements/internal/ingest"
	"github.com/pymovements/pymovements/internal/logging"
	"github.com/pymovements/pymovements/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.ParseArgs(os.Args)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync failure is not actionable

	series, err := loadSeries(cfg)
	if err != nil {
		return err
	}
	logger.Info("loaded gaze samples",
		zap.String("input", cfg.Input),
		zap.Int("samples", series.Len()),
		zap.Float64("sampling_rate", series.SamplingRate()),
		zap.String("unit", string(series.Unit())),
	)

	series, err = maybeConvertToDegrees(cfg, series, logger)
	if err != nil {
		return err
	}

	detected, err := runDetector(cfg, series, logger)
	if err != nil {
		return err
	}

	if cfg.Filter != "" {
		f, err := filter.Compile(cfg.Filter)
		if err != nil {
			return err
		}
		before := len(detected)
		detected, err = f.Apply(detected)
		if err != nil {
			return err
		}
		logger.Info("applied event filter",
			zap.String("expression", cfg.Filter),
			zap.Int("before", before),
			zap.Int("after", len(detected)),
		)
	}

	printSummary(cfg, series, detected)

	if cfg.OutputCSV != "" {
		if err := writeEventsCSV(cfg.OutputCSV, series, detected); err != nil {
			return err
		}
		logger.Info("wrote events", zap.String("path", cfg.OutputCSV))
	}

	if cfg.StorePath != "" {
		if err := persistEvents(cfg, detected, logger); err != nil {
			return err
		}
	}

	return nil
}

func loadSeries(cfg *config.Config) (*gaze.Series, error) {
	f, err := os.Open(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	cols := ingest.DefaultColumns()
	if cfg.Columns.Time != "" {
		cols.Time = cfg.Columns.Time
	}
	if cfg.Columns.X != "" {
		cols.X = cfg.Columns.X
	}
	if cfg.Columns.Y != "" {
		cols.Y = cfg.Columns.Y
	}
	if cfg.Columns.Pupil != "" {
		cols.Pupil = cfg.Columns.Pupil
	}

	series, err := ingest.ReadCSV(f, cfg.SamplingRate, gaze.Unit(cfg.Unit), cols)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", cfg.Input, err)
	}
	return series, nil
}

// maybeConvertToDegrees converts pixel coordinates into degrees of visual
// angle when the selected detector's thresholds are angular and screen
// geometry is available. Without a screen the pixel signal is used as-is and
// thresholds apply in pixel units.
func maybeConvertToDegrees(cfg *config.Config, series *gaze.Series, logger *zap.Logger) (*gaze.Series, error) {
	angular := cfg.Detector == "ivt" || cfg.Detector == "idt" || cfg.Detector == "microsaccades"
	if !angular || series.Unit() != gaze.UnitPixel {
		return series, nil
	}
	if !cfg.Screen.Configured() {
		logger.Warn("no screen geometry configured; detector thresholds apply in pixel units")
		return series, nil
	}
	converted, err := gaze.PixToDeg(series, screenFromConfig(cfg.Screen))
	if err != nil {
		return nil, err
	}
	logger.Info("converted positions to degrees of visual angle")
	return converted, nil
}

func screenFromConfig(sc config.ScreenConfig) gaze.Screen {
	return gaze.Screen{
		WidthPx:    sc.WidthPx,
		HeightPx:   sc.HeightPx,
		WidthCm:    sc.WidthCm,
		HeightCm:   sc.HeightCm,
		DistanceCm: sc.DistanceCm,
	}
}

func runDetector(cfg *config.Config, series *gaze.Series, logger *zap.Logger) (events.List, error) {
	fn, ok := detect.Lookup(cfg.Detector)
	if !ok {
		return nil, fmt.Errorf("unknown detector %q, available: %v", cfg.Detector, detect.Names())
	}

	in := detect.Input{
		Times:     series.Times(),
		Positions: series.Positions(),
		Pupil:     series.Pupil(),
	}

	needsVelocity := cfg.Detector == "ivt" || cfg.Detector == "microsaccades"
	if needsVelocity {
		velocities, err := gaze.Velocity(series, gaze.VelocityMethod(cfg.VelocityMethod))
		if err != nil {
			return nil, err
		}
		in.Velocities = velocities
	}

	detected, err := fn(in, detectorOptions(cfg))
	if err != nil {
		return nil, err
	}
	logger.Info("detection finished",
		zap.String("detector", cfg.Detector),
		zap.Int("events", len(detected)),
	)
	return detected, nil
}

func detectorOptions(cfg *config.Config) detect.Options {
	opts := detect.DefaultOptions()

	if cfg.IVT.VelocityThreshold > 0 {
		opts.IVT.VelocityThreshold = cfg.IVT.VelocityThreshold
	}
	if cfg.IVT.MinimumDuration > 0 {
		opts.IVT.MinimumDuration = cfg.IVT.MinimumDuration
	}
	opts.IVT.IncludeNaN = cfg.IVT.IncludeNaN

	if cfg.IDT.DispersionThreshold > 0 {
		opts.IDT.DispersionThreshold = cfg.IDT.DispersionThreshold
	}
	if cfg.IDT.MinimumDuration > 0 {
		opts.IDT.MinimumDuration = cfg.IDT.MinimumDuration
	}
	opts.IDT.IncludeNaN = cfg.IDT.IncludeNaN

	if cfg.Microsaccades.ThresholdMethod != "" {
		opts.Microsaccades.ThresholdMethod = detect.ThresholdMethod(cfg.Microsaccades.ThresholdMethod)
	}
	if cfg.Microsaccades.ThresholdFactor > 0 {
		opts.Microsaccades.ThresholdFactor = cfg.Microsaccades.ThresholdFactor
	}
	if cfg.Microsaccades.MinimumSamples > 0 {
		opts.Microsaccades.MinimumSamples = cfg.Microsaccades.MinimumSamples
	}

	if cfg.Blink.Delta > 0 {
		opts.Blink.Delta = cfg.Blink.Delta
	}
	if cfg.Blink.MinimumDuration > 0 {
		opts.Blink.MinimumDuration = cfg.Blink.MinimumDuration
	}
	if cfg.Blink.MaximumDuration != 0 {
		opts.Blink.MaximumDuration = cfg.Blink.MaximumDuration
	}

	if cfg.Screen.Configured() {
		opts.OutOfScreen.XMax = cfg.Screen.WidthPx
		opts.OutOfScreen.YMax = cfg.Screen.HeightPx
	}

	return opts
}

func printSummary(cfg *config.Config, series *gaze.Series, detected events.List) {
	times := series.Times()

	fmt.Printf("%s: %s samples, %s events (%s)\n",
		cfg.Input,
		humanize.Comma(int64(series.Len())),
		humanize.Comma(int64(len(detected))),
		cfg.Detector,
	)
	for _, name := range detected.Names() {
		named := detected.Named(name)
		fmt.Printf("  %-14s %6s events, total duration %s\n",
			name,
			humanize.Comma(int64(len(named))),
			humanize.Comma(named.TotalDuration()),
		)
	}

	if series.Len() >= 2 {
		loss, err := gaze.DataLoss(times, -1, -1, gaze.DataLossRatio)
		if err == nil {
			fmt.Printf("  data loss: %.1f%%\n", loss*100)
		}
	}
}

func persistEvents(cfg *config.Config, detected events.List, logger *zap.Logger) error {
	db, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer db.Close()

	rec, err := db.CreateRecording(cfg.Input, cfg.SamplingRate)
	if err != nil {
		return err
	}
	if err := db.InsertEvents(rec.ID, detected); err != nil {
		return err
	}
	logger.Info("persisted events",
		zap.String("store", cfg.StorePath),
		zap.String("recording", rec.ID),
		zap.Int("events", len(detected)),
	)
	return nil
}
