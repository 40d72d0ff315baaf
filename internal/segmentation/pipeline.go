package segmentation

// Composed segmentation pipelines. These mirror the two classic workflows:
// an edge-based one built on Canny plus hole filling, and a region-based one
// built on a Sobel elevation map flooded from intensity-derived markers.

// EdgeSegmentOptions controls the edge-based segmentation pipeline.
type EdgeSegmentOptions struct {
	// Canny configures the edge-detection stage.
	Canny CannyOptions

	// MinArea drops filled components smaller than this many pixels.
	// Default 64.
	MinArea int
}

// DefaultEdgeSegmentOptions returns Canny defaults plus a 64-pixel minimum
// object area.
func DefaultEdgeSegmentOptions() EdgeSegmentOptions {
	return EdgeSegmentOptions{
		Canny:   DefaultCannyOptions(),
		MinArea: 64,
	}
}

// EdgeSegmentResult is the outcome of the edge-based pipeline.
type EdgeSegmentResult struct {
	// Labels maps every pixel to its region (0 = background).
	Labels *LabelMap

	// Filled is the hole-filled object mask before labeling, kept for
	// visualization.
	Filled *Mask

	// Regions holds per-object properties, sorted by area descending.
	Regions []Region
}

// SegmentEdges runs the edge-based pipeline: detect edges with Canny, fill
// the enclosed holes so outlined objects become solid, discard components
// below the minimum area, then label and measure what remains.
//
// Objects whose outline is not closed do not survive hole filling as solid
// regions; the watershed pipeline handles those better.
func SegmentEdges(src *Raster, opts EdgeSegmentOptions) (*EdgeSegmentResult, error) {
	edges, err := Canny(src, opts.Canny)
	if err != nil {
		return nil, err
	}

	filled := FillHoles(edges)
	if opts.MinArea > 1 {
		filled = RemoveSmallObjects(filled, opts.MinArea)
	}

	labels, _ := Label(filled)
	return &EdgeSegmentResult{
		Labels:  labels,
		Filled:  filled,
		Regions: MeasureRegions(labels, src),
	}, nil
}

// WatershedSegmentOptions controls the region-based pipeline.
type WatershedSegmentOptions struct {
	// BackgroundLevel seeds the background basin: pixels with 8-bit
	// luminance at or below it. Default 30.
	BackgroundLevel int

	// ForegroundLevel seeds object basins: pixels at or above it.
	// Default 150.
	ForegroundLevel int

	// Seeds, when non-empty, replaces the ForegroundLevel-derived object
	// markers with one basin per seed point.
	Seeds []Seed
}

// DefaultWatershedSegmentOptions returns the tutorial's marker cutoffs:
// background <= 30, foreground >= 150.
func DefaultWatershedSegmentOptions() WatershedSegmentOptions {
	return WatershedSegmentOptions{
		BackgroundLevel: 30,
		ForegroundLevel: 150,
	}
}

// WatershedSegmentResult is the outcome of the region-based pipeline.
type WatershedSegmentResult struct {
	// Labels maps every pixel to its basin. Label 1 is the background
	// basin; object basins start at 2.
	Labels *LabelMap

	// Boundaries marks the watershed lines between basins.
	Boundaries *Mask

	// Elevation is the normalized Sobel gradient the flooding ran on.
	Elevation *Raster

	// Regions holds per-basin properties, sorted by area descending.
	// The background basin is included; it is normally the region that
	// both touches the border and carries label 1.
	Regions []Region
}

// SegmentWatershed runs the region-based pipeline: derive basin markers
// from luminance cutoffs or explicit seed points, compute the Sobel
// elevation map, flood it with the watershed transform, and measure the
// resulting basins.
//
// Unlike the edge-based pipeline this assigns every reachable pixel to some
// region, so it copes with objects whose contours Canny cannot close.
func SegmentWatershed(src *Raster, opts WatershedSegmentOptions) (*WatershedSegmentResult, error) {
	var markers *LabelMap
	var err error
	if len(opts.Seeds) > 0 {
		markers, err = MarkersFromSeeds(src, opts.BackgroundLevel, opts.Seeds)
	} else {
		markers, err = MarkersFromLevels(src, opts.BackgroundLevel, opts.ForegroundLevel)
	}
	if err != nil {
		return nil, err
	}

	elevation := SobelMagnitude(src)
	labels, boundaries, err := Watershed(elevation, markers)
	if err != nil {
		return nil, err
	}

	return &WatershedSegmentResult{
		Labels:     labels,
		Boundaries: boundaries,
		Elevation:  elevation,
		Regions:    MeasureRegions(labels, src),
	}, nil
}
