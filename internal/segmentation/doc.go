// Package segmentation implements image-segmentation primitives and the two
// composed pipelines built from them.
//
// The primitives are the classic building blocks: Canny edge detection,
// Sobel gradient magnitude, binary morphology (dilation, erosion, hole
// filling, small-object removal), the marker-based watershed transform, and
// two-pass connected-component labeling with region measurement.
//
// # Pipelines
//
// Two ready-made workflows compose the primitives:
//
//   - SegmentEdges: Canny -> fill holes -> remove small objects -> label.
//     Works well when object outlines are closed contours.
//
//   - SegmentWatershed: luminance-derived markers -> Sobel elevation ->
//     watershed flood -> label. Assigns every reachable pixel to a basin,
//     so it handles objects whose contours edge detection cannot close.
//
// # Data types
//
// Operations exchange three row-major raster types instead of image.Image:
//
//   - Raster: float64 luminance in [0, 1] (also used for gradient maps)
//   - Mask: binary foreground/background
//   - LabelMap: int32 region labels, 0 = background, dense from 1
//
// FromImage and the ToGray methods convert at the package boundary.
//
// # Connectivity conventions
//
// Hole filling, small-object removal, labeling and watershed flooding use
// 4-connectivity. Canny's hysteresis stage uses 8-connectivity. All
// convolutions replicate border pixels.
//
// # Determinism
//
// Every operation is deterministic for a given input: watershed ties at
// equal elevation are broken by queue insertion order, and label numbering
// follows raster scan order.
package segmentation
