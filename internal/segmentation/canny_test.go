package segmentation

import (
	"testing"
)

// stepRaster builds a raster with a vertical step edge at the given column:
// dark to the left, bright to the right.
func stepRaster(w, h, edgeX int) *Raster {
	r := NewRaster(w, h)
	for y := 0; y < h; y++ {
		for x := edgeX; x < w; x++ {
			r.Set(x, y, 1.0)
		}
	}
	return r
}

func TestCanny_StrongVerticalEdge(t *testing.T) {
	r := stepRaster(100, 100, 50)

	edges, err := Canny(r, DefaultCannyOptions())
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}

	// The edge should be detected near x=50 on interior rows.
	found := false
	for x := 47; x <= 53 && !found; x++ {
		if edges.At(x, 50) {
			found = true
		}
	}
	if !found {
		t.Error("no edge detected near x=50")
	}

	// Far from the step there should be nothing.
	for _, x := range []int{10, 90} {
		if edges.At(x, 50) {
			t.Errorf("spurious edge at x=%d", x)
		}
	}
}

func TestCanny_UniformImage(t *testing.T) {
	r := NewRaster(50, 50)
	for i := range r.Pix {
		r.Pix[i] = 0.5
	}

	edges, err := Canny(r, DefaultCannyOptions())
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	if n := edges.Count(); n != 0 {
		t.Errorf("uniform image produced %d edge pixels, want 0", n)
	}
}

func TestCanny_ThresholdValidation(t *testing.T) {
	r := stepRaster(20, 20, 10)

	tests := []struct {
		name      string
		low, high int
	}{
		{"low equals high", 100, 100},
		{"low above high", 150, 50},
		{"negative low", -1, 100},
		{"high above 255", 50, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canny(r, CannyOptions{ThresholdLow: tt.low, ThresholdHigh: tt.high})
			if err == nil {
				t.Errorf("Canny(low=%d, high=%d) should fail", tt.low, tt.high)
			}
		})
	}
}

func TestCanny_NoBlur(t *testing.T) {
	r := stepRaster(60, 60, 30)

	edges, err := Canny(r, CannyOptions{ThresholdLow: 50, ThresholdHigh: 150})
	if err != nil {
		t.Fatalf("Canny failed: %v", err)
	}
	if edges.Count() == 0 {
		t.Error("unblurred step edge produced no edge pixels")
	}
}

func TestSobelMagnitude_StepEdge(t *testing.T) {
	r := stepRaster(60, 60, 30)
	mag := SobelMagnitude(r)

	// After normalization the ridge at the step should be the maximum.
	if got := mag.At(30, 30); got < 0.9 {
		t.Errorf("ridge magnitude at step: got %.3f, want ~1.0", got)
	}
	// Flat areas should be quiet.
	if got := mag.At(10, 30); got > 0.01 {
		t.Errorf("flat-area magnitude: got %.3f, want ~0", got)
	}
}

func TestSobelMagnitude_FlatImage(t *testing.T) {
	r := NewRaster(20, 20)
	mag := SobelMagnitude(r)
	for i, v := range mag.Pix {
		if v != 0 {
			t.Fatalf("flat image gradient at %d: got %.3f, want 0", i, v)
		}
	}
}
