package segmentation

import (
	"image"
	"image/color"
	"math"
	"testing"
)

func TestFromImage_Luminance(t *testing.T) {
	tests := []struct {
		name string
		c    color.RGBA
		want float64
	}{
		{"black", color.RGBA{0, 0, 0, 255}, 0.0},
		{"white", color.RGBA{255, 255, 255, 255}, 1.0},
		{"pure red", color.RGBA{255, 0, 0, 255}, 0.299},
		{"pure green", color.RGBA{0, 255, 0, 255}, 0.587},
		{"pure blue", color.RGBA{0, 0, 255, 255}, 0.114},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					img.Set(x, y, tt.c)
				}
			}
			r := FromImage(img)
			if got := r.At(0, 0); math.Abs(got-tt.want) > 0.01 {
				t.Errorf("luminance: got %.3f, want %.3f", got, tt.want)
			}
		})
	}
}

func TestRaster_Normalize(t *testing.T) {
	r := NewRaster(2, 2)
	r.Pix = []float64{2, 4, 6, 10}
	r.Normalize()

	if r.Pix[0] != 0 || r.Pix[3] != 1 {
		t.Errorf("normalize endpoints: got min=%.3f max=%.3f, want 0 and 1", r.Pix[0], r.Pix[3])
	}
	if math.Abs(r.Pix[1]-0.25) > 1e-9 {
		t.Errorf("normalize midpoint: got %.3f, want 0.25", r.Pix[1])
	}
}

func TestRaster_Normalize_Constant(t *testing.T) {
	r := NewRaster(2, 2)
	r.Pix = []float64{0.5, 0.5, 0.5, 0.5}
	r.Normalize()

	for i, v := range r.Pix {
		if v != 0.5 {
			t.Errorf("constant raster changed at %d: got %.3f", i, v)
		}
	}
}

func TestRaster_AtClampsBorder(t *testing.T) {
	r := NewRaster(3, 3)
	r.Set(0, 0, 0.25)
	r.Set(2, 2, 0.75)

	if got := r.At(-5, -5); got != 0.25 {
		t.Errorf("At(-5,-5): got %.3f, want clamped corner 0.25", got)
	}
	if got := r.At(10, 10); got != 0.75 {
		t.Errorf("At(10,10): got %.3f, want clamped corner 0.75", got)
	}
}

func TestMask_ToGray(t *testing.T) {
	m := NewMask(10, 10)
	m.Set(3, 4, true)
	m.Set(9, 9, true)

	img := m.ToGray()
	if img.GrayAt(3, 4).Y != 255 || img.GrayAt(9, 9).Y != 255 {
		t.Error("foreground pixels not rendered white")
	}
	if img.GrayAt(0, 0).Y != 0 {
		t.Errorf("background pixel: got %d, want 0", img.GrayAt(0, 0).Y)
	}
}

func TestMask_OutOfBounds(t *testing.T) {
	m := NewMask(5, 5)
	m.Set(-1, 0, true) // ignored
	m.Set(0, 5, true)  // ignored

	if m.Count() != 0 {
		t.Errorf("out-of-bounds Set leaked: count=%d", m.Count())
	}
	if m.At(-1, 0) || m.At(0, 5) {
		t.Error("out-of-bounds At should be background")
	}
}

func TestLabelMap_Max(t *testing.T) {
	l := NewLabelMap(4, 4)
	if l.Max() != 0 {
		t.Errorf("empty map Max: got %d, want 0", l.Max())
	}
	l.Set(1, 1, 7)
	l.Set(2, 3, 3)
	if l.Max() != 7 {
		t.Errorf("Max: got %d, want 7", l.Max())
	}
}
