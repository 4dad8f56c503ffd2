// Package scoring provides the numeric primitives used to rank candidate crop
// regions of an image.
//
// The package is deliberately small: it knows how to turn a single color
// sample into detail, saturation and skin-tone signals, and how to weight a
// pixel position against a candidate crop. Aggregating those signals over a
// whole image and searching for the best crop is the job of the analyzer
// package.
//
// # Coordinate System
//
// Crops and pixel coordinates share the imaging package convention: (0,0) is
// the top-left corner, X grows rightward and Y grows downward. A crop covers
// the half-open rectangle [X, X+Width) × [Y, Y+Height).
//
// # Degenerate Inputs
//
// SkinCol of pure black (zero-magnitude color) is NaN rather than an error,
// and the NaN propagates unchanged so that scores stay reproducible.
//
// A crop with zero Width or Height contains no pixels: Importance weighs
// every point as outside it. Only a caller that divides by the crop area,
// like the analyzer's Total, sees NaN or ±Inf. Use Degenerate and Crop.Empty
// to detect these inputs before they reach an accumulator.
//
// # Thread Safety
//
// Every function and method in this package is pure and operates on values.
// All of them may be called concurrently without synchronization.
package scoring
