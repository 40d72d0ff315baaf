package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func TestCrop(t *testing.T) {
	img := uniformImage(20, 20, color.RGBA{10, 20, 30, 255})

	result, err := Crop(img, 5, 5, 15, 10, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 10 || result.Height != 5 {
		t.Errorf("dimensions: got %dx%d, want 10x5", result.Width, result.Height)
	}

	decoded, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	if _, err := png.Decode(strings.NewReader(string(decoded))); err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := uniformImage(20, 20, color.RGBA{0, 0, 0, 255})

	result, err := Crop(img, 0, 0, 10, 10, 2.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 20 || result.Height != 20 {
		t.Errorf("scaled dimensions: got %dx%d, want 20x20", result.Width, result.Height)
	}
}

func TestCrop_Validation(t *testing.T) {
	img := uniformImage(10, 10, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"out of bounds", 0, 0, 20, 20},
		{"negative origin", -1, 0, 5, 5},
		{"inverted x", 8, 0, 2, 5},
		{"zero width", 5, 0, 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.x1, tt.y1, tt.x2, tt.y2, 1.0); err == nil {
				t.Errorf("Crop(%d,%d,%d,%d) should fail", tt.x1, tt.y1, tt.x2, tt.y2)
			}
		})
	}
}

func TestCrop_NonZeroOriginBounds(t *testing.T) {
	// Images decoded from some sources have non-zero Min; crop must respect it.
	img := image.NewRGBA(image.Rect(10, 10, 30, 30))
	result, err := Crop(img, 12, 12, 20, 20, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if result.Width != 8 || result.Height != 8 {
		t.Errorf("dimensions: got %dx%d, want 8x8", result.Width, result.Height)
	}
}
