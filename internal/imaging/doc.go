// Package imaging loads foot photos and turns them into analysis inputs and
// debug renderings for the MCP server.
//
// It sits between image files on disk and the footshape engine: photos are
// decoded (with EXIF auto-orientation), downscaled to a capture width,
// optionally blurred, and exposed as footshape.ImageBuffer values. The same
// prepared image is then used to draw overlays and crops so that pixel
// coordinates line up with the analysis results.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Bounding boxes from footshape are inclusive on both ends
//   - Crop regions in results are reported as (x1,y1) inclusive and (x2,y2) exclusive
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. PrepareImage, Overlay and CropToFoot
// never modify their input image and can be called concurrently.
//
// # Color Representation
//
// SampleColor reports a pixel as hex "#rrggbb", 8-bit RGBA, HSL (hue 0-360,
// saturation and lightness 0-100) and the (R+G+B)/3 brightness that the
// threshold segmenter compares against.
package imaging
