package imaging

import (
	"fmt"
	"image"
)

// HistogramResult contains 256-bin intensity histograms for an image.
//
// Gray is always populated (8-bit luminance, BT.601 weights). The
// per-channel histograms are filled only when requested, since most
// segmentation workflows threshold on luminance alone.
type HistogramResult struct {
	// Gray holds the luminance histogram: Gray[v] counts pixels with 8-bit
	// luminance v.
	Gray []int `json:"gray"`

	// Red, Green and Blue hold per-channel histograms when channels were
	// requested, nil otherwise.
	Red   []int `json:"red,omitempty"`
	Green []int `json:"green,omitempty"`
	Blue  []int `json:"blue,omitempty"`

	// TotalPixels is the number of pixels counted.
	TotalPixels int `json:"total_pixels"`

	// PeakBin is the luminance value with the highest count (lowest value
	// wins ties).
	PeakBin int `json:"peak_bin"`

	// Mean is the average 8-bit luminance.
	Mean float64 `json:"mean"`

	// Median is the luminance value at which half the pixels are darker.
	Median int `json:"median"`
}

// Histogram computes intensity histograms for an image. When channels is
// true the per-channel RGB histograms are included alongside the luminance
// histogram.
//
// Tutorial workflows read the histogram to pick threshold levels and
// watershed marker cutoffs: background and object intensities show up as
// separate peaks, and the valleys between them are the natural cutoffs.
func Histogram(img image.Image, channels bool) (*HistogramResult, error) {
	bounds := img.Bounds()
	total := bounds.Dx() * bounds.Dy()
	if total == 0 {
		return nil, fmt.Errorf("cannot compute histogram of an empty image")
	}

	result := &HistogramResult{
		Gray:        make([]int, 256),
		TotalPixels: total,
	}
	if channels {
		result.Red = make([]int, 256)
		result.Green = make([]int, 256)
		result.Blue = make([]int, 256)
	}

	var sum int64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := int(r>>8), int(g>>8), int(b>>8)
			lum := (299*r8 + 587*g8 + 114*b8) / 1000

			result.Gray[lum]++
			sum += int64(lum)
			if channels {
				result.Red[r8]++
				result.Green[g8]++
				result.Blue[b8]++
			}
		}
	}

	peak := 0
	for v, count := range result.Gray {
		if count > result.Gray[peak] {
			peak = v
		}
	}
	result.PeakBin = peak
	result.Mean = float64(sum) / float64(total)
	result.Median = histogramMedian(result.Gray, total)

	return result, nil
}

// histogramMedian returns the smallest bin at which the cumulative count
// reaches half of the total.
func histogramMedian(bins []int, total int) int {
	half := (total + 1) / 2
	cum := 0
	for v, count := range bins {
		cum += count
		if cum >= half {
			return v
		}
	}
	return len(bins) - 1
}
