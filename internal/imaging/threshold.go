package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/stonebell/segment-mcp/internal/segmentation"
)

// ThresholdResult describes a binarization outcome.
type ThresholdResult struct {
	// Level is the 8-bit luminance cutoff that was applied. For the "otsu"
	// method this is the computed level.
	Level int `json:"level"`

	// Method is "manual" or "otsu".
	Method string `json:"method"`

	// ForegroundPixels counts pixels at or above Level.
	ForegroundPixels int `json:"foreground_pixels"`

	// ForegroundFraction is ForegroundPixels over the total pixel count.
	ForegroundFraction float64 `json:"foreground_fraction"`

	// ImageBase64 is the binary mask rendered as base64 PNG, foreground
	// white.
	ImageBase64 string `json:"image_base64"`

	// MimeType is always "image/png".
	MimeType string `json:"mime_type"`
}

// Threshold binarizes an image at the given 8-bit luminance level: pixels at
// or above the level become foreground. The luminance is the same BT.601
// value the histogram bins on, so a cutoff read off the histogram lands on
// exactly the pixels it counted.
func Threshold(img image.Image, level int) (*ThresholdResult, *segmentation.Mask, error) {
	if level < 0 || level > 255 {
		return nil, nil, fmt.Errorf("threshold level must be within 0-255, got %d", level)
	}

	return newThresholdResult(luminanceMask(img, level), level, "manual")
}

// OtsuThreshold binarizes an image at the level chosen by Otsu's method:
// the cutoff maximizing between-class variance of the luminance histogram.
// It suits images whose histogram shows two distinguishable populations,
// which is exactly the situation the histogram tool helps confirm.
func OtsuThreshold(img image.Image) (*ThresholdResult, *segmentation.Mask, error) {
	hist, err := Histogram(img, false)
	if err != nil {
		return nil, nil, err
	}

	level := otsuLevel(hist.Gray, hist.TotalPixels)
	return newThresholdResult(luminanceMask(img, level), level, "otsu")
}

// luminanceMask marks every pixel whose 8-bit BT.601 luminance is at or above
// level. Must stay in lockstep with Histogram's luminance computation: the
// Otsu level is derived from those bins and applied here.
func luminanceMask(img image.Image, level int) *segmentation.Mask {
	bounds := img.Bounds()
	mask := segmentation.NewMask(bounds.Dx(), bounds.Dy())

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := (299*int(r>>8) + 587*int(g>>8) + 114*int(b>>8)) / 1000
			mask.Bits[i] = lum >= level
			i++
		}
	}
	return mask
}

func newThresholdResult(mask *segmentation.Mask, level int, method string) (*ThresholdResult, *segmentation.Mask, error) {
	encoded, err := EncodeBase64PNG(mask.ToGray())
	if err != nil {
		return nil, nil, err
	}

	fg := mask.Count()
	total := mask.Width * mask.Height
	return &ThresholdResult{
		Level:              level,
		Method:             method,
		ForegroundPixels:   fg,
		ForegroundFraction: math.Round(float64(fg)/float64(total)*10000) / 10000,
		ImageBase64:        encoded,
		MimeType:           "image/png",
	}, mask, nil
}

// otsuLevel picks the luminance cutoff maximizing between-class variance.
func otsuLevel(bins []int, total int) int {
	var sumAll float64
	for v, count := range bins {
		sumAll += float64(v * count)
	}

	var sumBg, weightBg float64
	bestLevel := 0
	bestVariance := -1.0

	for level := 0; level < 256; level++ {
		weightBg += float64(bins[level])
		if weightBg == 0 {
			continue
		}
		weightFg := float64(total) - weightBg
		if weightFg == 0 {
			break
		}

		sumBg += float64(level * bins[level])
		meanBg := sumBg / weightBg
		meanFg := (sumAll - sumBg) / weightFg

		variance := weightBg * weightFg * (meanBg - meanFg) * (meanBg - meanFg)
		if variance > bestVariance {
			bestVariance = variance
			bestLevel = level
		}
	}

	// The loop finds the last level assigned to the background class; the
	// applied cutoff is the first foreground level.
	if bestLevel >= 255 {
		return 255
	}
	return bestLevel + 1
}
