// Package gaze holds the raw sample model and sample-level transforms.
//
// A Series is an immutable, ordered run of timestamped gaze samples that
// share one sampling rate and one coordinate unit (pixels or degrees of
// visual angle). Transforms are pure: PixToDeg and Velocity return new data
// and never mutate their input.
//
// Quality measures (NullRatio, DataLoss) characterize how much of a
// recording is missing; they operate on plain slices so they compose with
// both raw and derived signals.
package gaze
