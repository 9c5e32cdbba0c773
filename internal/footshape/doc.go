// Package footshape estimates foot-shape characteristics from a single
// top-down photograph.
//
// Three independent entry points produce raw measurements:
//
//   - Segment: brightness-threshold segmentation of an RGBA buffer
//     (fixed or mean-adaptive threshold)
//   - FromAlphaMask: an externally produced alpha mask fed through the same
//     centroid and bounding-box extraction
//   - FromLandmarks: six labelled anatomical points, no segmentation
//
// Mask-based measurements additionally go through EstimateToeShape. All
// measurements are then mapped to discrete categories by the Classify*
// functions, and Compose turns a ClassificationResult into advice text.
// Engine.Analyze wires the whole chain behind a single tagged Input.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with the origin at the top-left corner.
// The toe end of the foot is assumed to be at the top of the frame; this is
// a photographing precondition and is never detected.
//
// # Thread Safety
//
// Every function is pure: it reads its arguments and returns fresh values.
// Calls may run concurrently as long as each caller owns its buffer.
//
// # Errors
//
// Segmentation returns ErrDetectionFailure when no pixel is classified as
// foot. FromLandmarks returns an *IncompleteLandmarksError (matching
// ErrIncompleteLandmarks) when any of the six points is absent. Degenerate
// geometry is not an error: classifiers divide by 1 instead of 0 and the toe
// estimator reports ToeUnknown.
package footshape
