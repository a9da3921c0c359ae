// Package detect classifies continuous gaze signals into discrete events.
//
// Each algorithm is a pure function from sample slices to an events.List:
//
//   - IVT: fixations by velocity threshold (Salvucci & Goldberg 2000)
//   - IDT: fixations by dispersion windowing (Salvucci & Goldberg 2000)
//   - Microsaccades: saccades by velocity-noise ellipse (Engbert & Kliegl 2003)
//   - Blink: pupil-signal blinks (Hershman et al. 2018)
//   - OutOfScreen: samples outside the screen boundaries
//   - Fill: events covering the gaps left by other detectors
//
// All detectors share the inclusive onset/offset convention and the same
// candidate-run grouping. The registry maps algorithm names to a uniform
// Func signature for driver code that selects detectors at runtime.
package detect
