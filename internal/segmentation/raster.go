package segmentation

import (
	"fmt"
	"image"
	"image/color"
)

// Raster is a grayscale image stored as row-major float64 luminance in [0, 1].
//
// All segmentation operations work on Rasters rather than image.Image so that
// intermediate results (gradient magnitudes, elevation maps) can hold values
// with full precision between pipeline stages.
type Raster struct {
	Width  int
	Height int
	Pix    []float64 // len = Width*Height, row-major
}

// NewRaster allocates a zero-filled raster of the given dimensions.
func NewRaster(width, height int) *Raster {
	return &Raster{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height),
	}
}

// At returns the value at (x, y). Coordinates outside the raster are clamped
// to the nearest edge pixel, matching the replicated-border convention used
// by the convolution stages.
func (r *Raster) At(x, y int) float64 {
	x = clamp(x, 0, r.Width-1)
	y = clamp(y, 0, r.Height-1)
	return r.Pix[y*r.Width+x]
}

// Set stores v at (x, y). Out-of-bounds coordinates are ignored.
func (r *Raster) Set(x, y int, v float64) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	r.Pix[y*r.Width+x] = v
}

// FromImage converts an image to a luminance raster using ITU-R BT.601
// weights (0.299*R + 0.587*G + 0.114*B).
func FromImage(img image.Image) *Raster {
	bounds := img.Bounds()
	r := NewRaster(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			rf := float64(cr>>8) / 255.0
			gf := float64(cg>>8) / 255.0
			bf := float64(cb>>8) / 255.0
			r.Pix[i] = 0.299*rf + 0.587*gf + 0.114*bf
			i++
		}
	}
	return r
}

// ToGray renders the raster as an 8-bit grayscale image. Values are clamped
// to [0, 1] before quantization.
func (r *Raster) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			v := r.Pix[y*r.Width+x]
			if v < 0 {
				v = 0
			} else if v > 1 {
				v = 1
			}
			img.SetGray(x, y, color.Gray{Y: uint8(v*255 + 0.5)})
		}
	}
	return img
}

// Normalize rescales the raster in place so its values span [0, 1].
// A constant raster is left unchanged.
func (r *Raster) Normalize() {
	if len(r.Pix) == 0 {
		return
	}
	lo, hi := r.Pix[0], r.Pix[0]
	for _, v := range r.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		return
	}
	scale := 1.0 / (hi - lo)
	for i, v := range r.Pix {
		r.Pix[i] = (v - lo) * scale
	}
}

// Mask is a binary image: true marks foreground pixels.
type Mask struct {
	Width  int
	Height int
	Bits   []bool // len = Width*Height, row-major
}

// NewMask allocates an all-background mask of the given dimensions.
func NewMask(width, height int) *Mask {
	return &Mask{
		Width:  width,
		Height: height,
		Bits:   make([]bool, width*height),
	}
}

// At reports whether (x, y) is foreground. Out-of-bounds coordinates are
// background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.Bits[y*m.Width+x]
}

// Set marks (x, y) as foreground (v=true) or background (v=false).
// Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int, v bool) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Bits[y*m.Width+x] = v
}

// Count returns the number of foreground pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.Bits {
		if b {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the mask.
func (m *Mask) Clone() *Mask {
	c := NewMask(m.Width, m.Height)
	copy(c.Bits, m.Bits)
	return c
}

// ToGray renders the mask as an 8-bit grayscale image with foreground white.
func (m *Mask) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Bits[y*m.Width+x] {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

// LabelMap assigns an integer label to every pixel. Label 0 means
// background (or unlabeled); region labels are positive and dense from 1.
type LabelMap struct {
	Width  int
	Height int
	Labels []int32 // len = Width*Height, row-major
}

// NewLabelMap allocates an all-background label map.
func NewLabelMap(width, height int) *LabelMap {
	return &LabelMap{
		Width:  width,
		Height: height,
		Labels: make([]int32, width*height),
	}
}

// At returns the label at (x, y), or 0 for out-of-bounds coordinates.
func (l *LabelMap) At(x, y int) int32 {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return 0
	}
	return l.Labels[y*l.Width+x]
}

// Set assigns a label at (x, y). Out-of-bounds coordinates are ignored.
func (l *LabelMap) Set(x, y int, label int32) {
	if x < 0 || x >= l.Width || y < 0 || y >= l.Height {
		return
	}
	l.Labels[y*l.Width+x] = label
}

// Max returns the highest label present in the map.
func (l *LabelMap) Max() int32 {
	var max int32
	for _, v := range l.Labels {
		if v > max {
			max = v
		}
	}
	return max
}

// validateSameSize returns an error when two rasters disagree on dimensions.
func validateSameSize(aw, ah, bw, bh int, what string) error {
	if aw != bw || ah != bh {
		return fmt.Errorf("%s size mismatch: %dx%d vs %dx%d", what, aw, ah, bw, bh)
	}
	return nil
}

// clamp constrains an integer value to the range [min, max].
// Used for boundary handling in convolution operations.
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
