package imaging

import (
	"encoding/base64"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stonebell/segment-mcp/internal/segmentation"
)

func TestRenderLabelOverlay(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{128, 128, 128, 255})
	labels := segmentation.NewLabelMap(10, 10)
	for y := 2; y < 5; y++ {
		for x := 2; x < 5; x++ {
			labels.Set(x, y, 1)
		}
	}

	result, err := RenderLabelOverlay(img, labels, 0.5)
	if err != nil {
		t.Fatalf("RenderLabelOverlay failed: %v", err)
	}
	if result.Width != 10 || result.Height != 10 {
		t.Errorf("dimensions: got %dx%d, want 10x10", result.Width, result.Height)
	}
	if result.RegionCount != 1 {
		t.Errorf("region count: got %d, want 1", result.RegionCount)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	out, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	// Background pixels keep the source color.
	r, g, b, _ := out.At(8, 8).RGBA()
	if r>>8 != 128 || g>>8 != 128 || b>>8 != 128 {
		t.Errorf("background changed: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	// Labeled pixels are tinted away from the source color.
	r, g, b, _ = out.At(3, 3).RGBA()
	if r>>8 == 128 && g>>8 == 128 && b>>8 == 128 {
		t.Error("labeled pixel was not tinted")
	}
}

func TestRenderLabelOverlay_SizeMismatch(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{0, 0, 0, 255})
	labels := segmentation.NewLabelMap(5, 5)
	if _, err := RenderLabelOverlay(img, labels, 0.5); err == nil {
		t.Error("size mismatch should fail")
	}
}

func TestRenderLabelOverlay_BadAlphaFallsBack(t *testing.T) {
	img := uniformImage(4, 4, color.RGBA{0, 0, 0, 255})
	labels := segmentation.NewLabelMap(4, 4)
	labels.Set(1, 1, 1)

	if _, err := RenderLabelOverlay(img, labels, -3); err != nil {
		t.Errorf("invalid alpha should fall back, got error: %v", err)
	}
}

func TestRenderBoundaryOverlay(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{0, 0, 0, 255})
	boundaries := segmentation.NewMask(10, 10)
	for x := 0; x < 10; x++ {
		boundaries.Set(x, 5, true)
	}

	result, err := RenderBoundaryOverlay(img, boundaries, "#00FF00")
	if err != nil {
		t.Fatalf("RenderBoundaryOverlay failed: %v", err)
	}

	decoded, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	out, err := png.Decode(strings.NewReader(string(decoded)))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	r, g, b, _ := out.At(5, 5).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("boundary pixel: got (%d,%d,%d), want (0,255,0)", r>>8, g>>8, b>>8)
	}
	r, g, b, _ = out.At(5, 2).RGBA()
	if r>>8 != 0 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("non-boundary pixel changed: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestRenderBoundaryOverlay_InvalidColorFallsBack(t *testing.T) {
	img := uniformImage(4, 4, color.RGBA{0, 0, 0, 255})
	boundaries := segmentation.NewMask(4, 4)
	boundaries.Set(2, 2, true)

	result, err := RenderBoundaryOverlay(img, boundaries, "not-a-color")
	if err != nil {
		t.Fatalf("invalid color should fall back to red, got error: %v", err)
	}

	decoded, _ := base64.StdEncoding.DecodeString(result.ImageBase64)
	out, _ := png.Decode(strings.NewReader(string(decoded)))
	r, _, _, _ := out.At(2, 2).RGBA()
	if r>>8 != 255 {
		t.Errorf("fallback color: got red=%d, want 255", r>>8)
	}
}

func TestLabelPalette_Distinct(t *testing.T) {
	palette := labelPalette(8)
	seen := make(map[color.RGBA]bool)
	for _, c := range palette {
		if seen[c] {
			t.Fatalf("duplicate palette color: %+v", c)
		}
		seen[c] = true
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		want    color.RGBA
		wantErr bool
	}{
		{"rgb", "#FF8000", color.RGBA{255, 128, 0, 255}, false},
		{"rgba", "#FF800080", color.RGBA{255, 128, 0, 128}, false},
		{"no hash", "0000FF", color.RGBA{0, 0, 255, 255}, false},
		{"empty", "", color.RGBA{}, true},
		{"bad length", "#FFF", color.RGBA{}, true},
		{"not hex", "#GGGGGG", color.RGBA{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseHexColor(tt.hex)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr=%v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("color: got %+v, want %+v", got, tt.want)
			}
		})
	}
}
