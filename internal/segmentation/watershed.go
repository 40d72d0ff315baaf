package segmentation

import (
	"container/heap"
	"fmt"
)

// Watershed floods an elevation raster from labeled marker pixels and
// returns the resulting basin label map plus a mask of the watershed lines
// where basins meet.
//
// The elevation raster is treated as topography: marker pixels are the
// basin seeds, and flooding proceeds in order of increasing elevation via a
// priority queue (priority-flood). Each unlabeled pixel receives the label
// of the first basin to reach it; ties between basins are resolved by
// insertion order, which makes the result deterministic for a given input.
//
// Pixels that sit 4-adjacent to a differently-labeled pixel after flooding
// are recorded in the boundary mask. The label map itself stays fully
// flooded, so callers that want visible watershed lines subtract the
// boundary mask during rendering.
//
// Returns an error when the marker map is empty or sized differently from
// the elevation raster.
func Watershed(elevation *Raster, markers *LabelMap) (*LabelMap, *Mask, error) {
	if err := validateSameSize(elevation.Width, elevation.Height,
		markers.Width, markers.Height, "elevation/markers"); err != nil {
		return nil, nil, err
	}

	w, h := elevation.Width, elevation.Height
	out := NewLabelMap(w, h)

	pq := &floodQueue{}
	heap.Init(pq)
	seq := 0

	seeded := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lbl := markers.Labels[y*w+x]
			if lbl == 0 {
				continue
			}
			seeded = true
			out.Labels[y*w+x] = lbl
			heap.Push(pq, floodItem{
				x: x, y: y,
				label:     lbl,
				elevation: elevation.Pix[y*w+x],
				seq:       seq,
			})
			seq++
		}
	}
	if !seeded {
		return nil, nil, fmt.Errorf("watershed requires at least one marker pixel")
	}

	for pq.Len() > 0 {
		item := heap.Pop(pq).(floodItem)
		for _, d := range neighbors4 {
			nx, ny := item.x+d[0], item.y+d[1]
			if nx < 0 || nx >= w || ny < 0 || ny >= h {
				continue
			}
			if out.Labels[ny*w+nx] != 0 {
				continue
			}
			out.Labels[ny*w+nx] = item.label
			heap.Push(pq, floodItem{
				x: nx, y: ny,
				label:     item.label,
				elevation: elevation.Pix[ny*w+nx],
				seq:       seq,
			})
			seq++
		}
	}

	return out, boundaryMask(out), nil
}

// boundaryMask marks pixels 4-adjacent to a pixel with a different label.
// Background (label 0) borders are included so unreached plateaus still show
// an outline.
func boundaryMask(labels *LabelMap) *Mask {
	w, h := labels.Width, labels.Height
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lbl := labels.Labels[y*w+x]
			for _, d := range neighbors4 {
				nx, ny := x+d[0], y+d[1]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				if labels.Labels[ny*w+nx] != lbl {
					m.Bits[y*w+x] = true
					break
				}
			}
		}
	}
	return m
}

// MarkersFromLevels builds a watershed marker map from luminance cutoffs,
// the way the region-based tutorial workflow seeds its basins: pixels at or
// below bgLevel (0-255) seed the background basin, pixels at or above
// fgLevel seed object basins. Each 4-connected group of foreground seeds
// becomes its own marker, so touching objects that are separated by a
// gradient ridge flood independently.
//
// The background basin always gets label 1; object markers start at 2.
func MarkersFromLevels(src *Raster, bgLevel, fgLevel int) (*LabelMap, error) {
	if bgLevel < 0 || fgLevel > 255 || bgLevel >= fgLevel {
		return nil, fmt.Errorf("marker levels must satisfy 0 <= bg < fg <= 255, got bg=%d fg=%d",
			bgLevel, fgLevel)
	}

	bg := float64(bgLevel) / 255.0
	fg := float64(fgLevel) / 255.0
	w, h := src.Width, src.Height

	fgMask := NewMask(w, h)
	hasBg := false
	for i, v := range src.Pix {
		if v >= fg {
			fgMask.Bits[i] = true
		} else if v <= bg {
			hasBg = true
		}
	}

	fgLabels, n := Label(fgMask)
	if !hasBg && n == 0 {
		return nil, fmt.Errorf("no pixels fall outside %d-%d; markers would be empty", bgLevel, fgLevel)
	}

	markers := NewLabelMap(w, h)
	for i, v := range src.Pix {
		if v <= bg {
			markers.Labels[i] = 1
		} else if fgLabels.Labels[i] != 0 {
			markers.Labels[i] = fgLabels.Labels[i] + 1
		}
	}
	return markers, nil
}

// Seed is an explicit watershed marker position.
type Seed struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MarkersFromSeeds builds a watershed marker map from explicit seed points:
// pixels at or below bgLevel (0-255) seed the background basin with label 1,
// and each seed gets its own basin label starting at 2, in the order given.
// A seed placed on a background-marked pixel wins over the background marker.
//
// Returns an error when no seeds are given or a seed lies outside the raster.
func MarkersFromSeeds(src *Raster, bgLevel int, seeds []Seed) (*LabelMap, error) {
	if bgLevel < 0 || bgLevel > 255 {
		return nil, fmt.Errorf("background level must be within 0-255, got %d", bgLevel)
	}
	if len(seeds) == 0 {
		return nil, fmt.Errorf("at least one seed point is required")
	}

	w, h := src.Width, src.Height
	markers := NewLabelMap(w, h)

	bg := float64(bgLevel) / 255.0
	for i, v := range src.Pix {
		if v <= bg {
			markers.Labels[i] = 1
		}
	}

	for i, s := range seeds {
		if s.X < 0 || s.X >= w || s.Y < 0 || s.Y >= h {
			return nil, fmt.Errorf("seed %d at (%d, %d) is outside the %dx%d image",
				i, s.X, s.Y, w, h)
		}
		markers.Labels[s.Y*w+s.X] = int32(i + 2)
	}
	return markers, nil
}

// floodItem is one queued pixel during priority-flood.
type floodItem struct {
	x, y      int
	label     int32
	elevation float64
	seq       int // FIFO tie-break for equal elevations
}

// floodQueue is a min-heap over elevation with FIFO ordering inside a level.
type floodQueue []floodItem

func (q floodQueue) Len() int { return len(q) }

func (q floodQueue) Less(i, j int) bool {
	if q[i].elevation != q[j].elevation {
		return q[i].elevation < q[j].elevation
	}
	return q[i].seq < q[j].seq
}

func (q floodQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *floodQueue) Push(x interface{}) {
	*q = append(*q, x.(floodItem))
}

func (q *floodQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
