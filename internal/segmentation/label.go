package segmentation

import (
	"math"
	"sort"
)

// Region describes one labeled connected component.
type Region struct {
	// Label is the region's identifier in the label map (>= 1).
	Label int32 `json:"label"`

	// Area is the region size in pixels.
	Area int `json:"area"`

	// BBox is the tight bounding box: X1/Y1 inclusive, X2/Y2 exclusive.
	BBox BBox `json:"bbox"`

	// CentroidX and CentroidY are the pixel-averaged center of mass.
	CentroidX float64 `json:"centroid_x"`
	CentroidY float64 `json:"centroid_y"`

	// MeanIntensity is the average source luminance over the region (0-1).
	// Zero when no intensity raster was supplied.
	MeanIntensity float64 `json:"mean_intensity"`

	// TouchesBorder reports whether the region includes an image-border pixel.
	// Watershed callers use this to identify the background basin.
	TouchesBorder bool `json:"touches_border"`
}

// BBox is a rectangular bounding box: (X1, Y1) inclusive, (X2, Y2) exclusive.
type BBox struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Label assigns dense positive labels to the 4-connected foreground
// components of a mask using the classic two-pass algorithm with union-find
// equivalence merging.
//
// Returns the label map and the number of components found.
func Label(m *Mask) (*LabelMap, int) {
	w, h := m.Width, m.Height
	out := NewLabelMap(w, h)
	if w == 0 || h == 0 {
		return out, 0
	}

	// First pass: provisional labels, recording equivalences between the
	// left and top neighbors.
	uf := newUnionFind()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !m.Bits[y*w+x] {
				continue
			}
			var left, top int32
			if x > 0 {
				left = out.Labels[y*w+x-1]
			}
			if y > 0 {
				top = out.Labels[(y-1)*w+x]
			}
			switch {
			case left == 0 && top == 0:
				out.Labels[y*w+x] = uf.makeSet()
			case left != 0 && top == 0:
				out.Labels[y*w+x] = left
			case left == 0 && top != 0:
				out.Labels[y*w+x] = top
			default:
				out.Labels[y*w+x] = left
				uf.union(left, top)
			}
		}
	}

	// Second pass: resolve equivalences to dense labels.
	dense := uf.densify()
	for i, v := range out.Labels {
		if v != 0 {
			out.Labels[i] = dense[uf.find(v)]
		}
	}
	return out, len(dense)
}

// MeasureRegions computes per-region properties for a label map, optionally
// averaging intensity from a same-sized source raster (may be nil). Regions
// are returned sorted by area, largest first.
func MeasureRegions(labels *LabelMap, intensity *Raster) []Region {
	max := labels.Max()
	if max == 0 {
		return nil
	}

	regions := make([]Region, max)
	for i := range regions {
		regions[i] = Region{
			Label: int32(i + 1),
			BBox:  BBox{X1: math.MaxInt32, Y1: math.MaxInt32},
		}
	}

	w, h := labels.Width, labels.Height
	sums := make([]float64, max)
	cxs := make([]float64, max)
	cys := make([]float64, max)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lbl := labels.Labels[y*w+x]
			if lbl == 0 {
				continue
			}
			r := &regions[lbl-1]
			r.Area++
			cxs[lbl-1] += float64(x)
			cys[lbl-1] += float64(y)
			if x < r.BBox.X1 {
				r.BBox.X1 = x
			}
			if y < r.BBox.Y1 {
				r.BBox.Y1 = y
			}
			if x+1 > r.BBox.X2 {
				r.BBox.X2 = x + 1
			}
			if y+1 > r.BBox.Y2 {
				r.BBox.Y2 = y + 1
			}
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				r.TouchesBorder = true
			}
			if intensity != nil {
				sums[lbl-1] += intensity.Pix[y*w+x]
			}
		}
	}

	out := regions[:0]
	for i := range regions {
		r := regions[i]
		if r.Area == 0 {
			continue
		}
		r.CentroidX = round2(cxs[i] / float64(r.Area))
		r.CentroidY = round2(cys[i] / float64(r.Area))
		if intensity != nil {
			r.MeanIntensity = round4(sums[i] / float64(r.Area))
		}
		out = append(out, r)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Area != out[j].Area {
			return out[i].Area > out[j].Area
		}
		return out[i].Label < out[j].Label
	})
	return out
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

// unionFind tracks label equivalences during the first labeling pass.
// Labels are 1-based; index 0 of parent is unused.
type unionFind struct {
	parent []int32
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make([]int32, 1, 64)}
}

// makeSet allocates a fresh provisional label.
func (u *unionFind) makeSet() int32 {
	label := int32(len(u.parent))
	u.parent = append(u.parent, label)
	return label
}

// find returns the representative of a label, compressing paths as it goes.
func (u *unionFind) find(x int32) int32 {
	for u.parent[x] != x {
		u.parent[x] = u.parent[u.parent[x]]
		x = u.parent[x]
	}
	return x
}

// union merges the sets containing a and b, keeping the smaller root.
func (u *unionFind) union(a, b int32) {
	ra, rb := u.find(a), u.find(b)
	if ra == rb {
		return
	}
	if ra > rb {
		ra, rb = rb, ra
	}
	u.parent[rb] = ra
}

// densify maps each set representative to a dense label starting at 1,
// in order of first appearance.
func (u *unionFind) densify() map[int32]int32 {
	dense := make(map[int32]int32)
	var next int32 = 1
	for i := int32(1); i < int32(len(u.parent)); i++ {
		root := u.find(i)
		if _, ok := dense[root]; !ok {
			dense[root] = next
			next++
		}
	}
	return dense
}
