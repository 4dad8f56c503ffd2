// Package imaging provides the pixel-level plumbing around crop scoring:
// loading and caching images, sampling the scoring heuristics at a pixel,
// rendering a chosen crop, and visualizing what the analyzer sees.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with the origin at the top-left corner of
// the image as displayed (EXIF orientation already applied):
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Crops cover [X, X+Width) × [Y, Y+Height)
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions only read
// their inputs and may be called concurrently on the same image.
//
// # Output Images
//
// Every function that produces an image returns it as a base64-encoded PNG
// inside a result struct carrying its dimensions and MIME type, ready to be
// embedded in an MCP tool response.
//
// # Error Handling
//
// Functions return errors for coordinates or crops outside the image, empty
// crops, non-positive output sizes, and I/O or encoding failures.
package imaging
