// Package imaging provides the image-facing half of the segmentation tools:
// loading and caching, histogram analysis, thresholding, cropping, and
// rendering of segmentation results.
//
// This package works with standard Go image.Image types at the boundary and
// hands off to internal/segmentation (which operates on raster types) for
// the pixel-level algorithms. All coordinates are 0-based with the origin at
// the top-left corner; regions use an inclusive top-left and exclusive
// bottom-right corner.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are
// stateless and can run concurrently on different images.
//
// # Result encoding
//
// Image-valued results (thresholded masks, crops, overlays) are returned as
// base64-encoded PNG with an explicit mime type, matching what the MCP tool
// surface sends to clients.
package imaging
