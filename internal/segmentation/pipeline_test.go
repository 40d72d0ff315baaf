package segmentation

import (
	"math"
	"testing"
)

// diskRaster builds a bright disk on a dark background.
func diskRaster(size, cx, cy, radius int) *Raster {
	r := NewRaster(size, size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx := float64(x - cx)
			dy := float64(y - cy)
			if math.Sqrt(dx*dx+dy*dy) <= float64(radius) {
				r.Set(x, y, 1.0)
			}
		}
	}
	return r
}

func TestSegmentEdges_Disk(t *testing.T) {
	src := diskRaster(100, 50, 50, 20)

	result, err := SegmentEdges(src, DefaultEdgeSegmentOptions())
	if err != nil {
		t.Fatalf("SegmentEdges failed: %v", err)
	}
	if len(result.Regions) == 0 {
		t.Fatal("no regions found")
	}

	// The disk outline is a closed contour, so hole filling yields a solid
	// region roughly the size of the disk.
	disk := result.Regions[0]
	if disk.Area < 700 {
		t.Errorf("disk area: got %d, want a solid region (>= 700 px)", disk.Area)
	}
	if math.Abs(disk.CentroidX-50) > 2 || math.Abs(disk.CentroidY-50) > 2 {
		t.Errorf("disk centroid: got (%.1f, %.1f), want near (50, 50)", disk.CentroidX, disk.CentroidY)
	}

	// The disk center must carry the region's label.
	if got := result.Labels.At(50, 50); got != disk.Label {
		t.Errorf("center label: got %d, want %d", got, disk.Label)
	}
}

func TestSegmentEdges_RemovesNoise(t *testing.T) {
	src := diskRaster(100, 50, 50, 20)
	// A tiny bright speck: its filled contour stays below MinArea.
	src.Set(5, 5, 1.0)
	src.Set(6, 5, 1.0)

	result, err := SegmentEdges(src, DefaultEdgeSegmentOptions())
	if err != nil {
		t.Fatalf("SegmentEdges failed: %v", err)
	}
	for _, r := range result.Regions {
		if r.Area < DefaultEdgeSegmentOptions().MinArea {
			t.Errorf("region below MinArea survived: %+v", r)
		}
	}
}

func TestSegmentEdges_EmptyImage(t *testing.T) {
	src := NewRaster(50, 50)

	result, err := SegmentEdges(src, DefaultEdgeSegmentOptions())
	if err != nil {
		t.Fatalf("SegmentEdges failed: %v", err)
	}
	if len(result.Regions) != 0 {
		t.Errorf("blank image: got %d regions, want 0", len(result.Regions))
	}
}

func TestSegmentEdges_BadOptions(t *testing.T) {
	src := diskRaster(50, 25, 25, 10)
	opts := DefaultEdgeSegmentOptions()
	opts.Canny.ThresholdLow = 200
	opts.Canny.ThresholdHigh = 100

	if _, err := SegmentEdges(src, opts); err == nil {
		t.Error("inverted thresholds should fail")
	}
}

func TestSegmentWatershed_TwoSquares(t *testing.T) {
	src := twoSquares(100)

	result, err := SegmentWatershed(src, DefaultWatershedSegmentOptions())
	if err != nil {
		t.Fatalf("SegmentWatershed failed: %v", err)
	}

	if len(result.Regions) != 3 {
		t.Fatalf("region count: got %d, want 3 (background + 2 objects)", len(result.Regions))
	}

	// Largest region is the background basin: label 1, touching the border.
	bg := result.Regions[0]
	if bg.Label != 1 || !bg.TouchesBorder {
		t.Errorf("background basin: got label=%d touchesBorder=%v", bg.Label, bg.TouchesBorder)
	}

	// Object basins cover at least their 21x21 seed squares.
	for _, r := range result.Regions[1:] {
		if r.Area < 441 {
			t.Errorf("object basin %d area: got %d, want >= 441", r.Label, r.Area)
		}
	}

	if result.Boundaries.Count() == 0 {
		t.Error("no watershed lines in result")
	}
	if result.Elevation == nil {
		t.Error("elevation map missing from result")
	}
}

func TestSegmentWatershed_ExplicitSeeds(t *testing.T) {
	src := twoSquares(100)
	opts := DefaultWatershedSegmentOptions()
	opts.Seeds = []Seed{{X: 30, Y: 30}, {X: 70, Y: 70}}

	result, err := SegmentWatershed(src, opts)
	if err != nil {
		t.Fatalf("SegmentWatershed failed: %v", err)
	}

	if len(result.Regions) != 3 {
		t.Fatalf("region count: got %d, want 3 (background + 2 seeds)", len(result.Regions))
	}

	// Seed order fixes the basin labels.
	if got := result.Labels.At(30, 30); got != 2 {
		t.Errorf("first seed basin: got %d, want 2", got)
	}
	if got := result.Labels.At(70, 70); got != 3 {
		t.Errorf("second seed basin: got %d, want 3", got)
	}
	if got := result.Labels.At(5, 5); got != 1 {
		t.Errorf("background basin: got %d, want 1", got)
	}
}

func TestSegmentWatershed_MidtoneImage(t *testing.T) {
	src := NewRaster(20, 20)
	for i := range src.Pix {
		src.Pix[i] = 0.4
	}

	if _, err := SegmentWatershed(src, DefaultWatershedSegmentOptions()); err == nil {
		t.Error("image with no marker pixels should fail")
	}
}
