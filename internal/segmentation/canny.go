package segmentation

import (
	"fmt"
	"math"

	"github.com/anthonynsimon/bild/blur"
)

// CannyOptions controls the Canny edge detector.
type CannyOptions struct {
	// ThresholdLow is the hysteresis low threshold (0-255). Gradient
	// magnitudes below it are never edges. Typical value: 50.
	ThresholdLow int

	// ThresholdHigh is the hysteresis high threshold (0-255). Magnitudes at
	// or above it are always edges. Typical value: 150.
	ThresholdHigh int

	// BlurRadius is the Gaussian prefilter radius in pixels. Zero disables
	// the prefilter. Typical value: 1.4.
	BlurRadius float64
}

// DefaultCannyOptions returns the thresholds recommended for clean source
// images: low=50, high=150, blur radius 1.4.
func DefaultCannyOptions() CannyOptions {
	return CannyOptions{
		ThresholdLow:  50,
		ThresholdHigh: 150,
		BlurRadius:    1.4,
	}
}

// Canny detects edges in a luminance raster and returns them as a binary
// mask with edge pixels marked foreground.
//
// The implementation follows the classic four-stage pipeline:
//
//  1. Gaussian prefilter to suppress noise
//  2. Sobel gradients (magnitude and direction)
//  3. Non-maximum suppression, thinning ridges to 1-pixel width
//  4. Double-threshold hysteresis: strong edges are kept, weak edges are
//     kept only when 8-connected to a strong edge
//
// Thresholds are expressed on the 0-255 scale for consistency with the tool
// surface; internally they are compared against normalized magnitudes.
func Canny(src *Raster, opts CannyOptions) (*Mask, error) {
	if opts.ThresholdLow < 0 || opts.ThresholdHigh > 255 {
		return nil, fmt.Errorf("canny thresholds must be within 0-255, got low=%d high=%d",
			opts.ThresholdLow, opts.ThresholdHigh)
	}
	if opts.ThresholdLow >= opts.ThresholdHigh {
		return nil, fmt.Errorf("canny low threshold (%d) must be below high threshold (%d)",
			opts.ThresholdLow, opts.ThresholdHigh)
	}

	work := src
	if opts.BlurRadius > 0 {
		work = gaussianPrefilter(src, opts.BlurRadius)
	}

	magnitude, direction := sobelGradients(work)
	suppressed := nonMaxSuppress(magnitude, direction)

	return hysteresis(suppressed,
		float64(opts.ThresholdLow)/255.0,
		float64(opts.ThresholdHigh)/255.0), nil
}

// gaussianPrefilter runs the raster through bild's Gaussian blur.
func gaussianPrefilter(src *Raster, radius float64) *Raster {
	blurred := blur.Gaussian(src.ToGray(), radius)
	return FromImage(blurred)
}

// nonMaxSuppress keeps only pixels that are local maxima along their
// gradient direction, zeroing the rest. The one-pixel image border is
// zeroed outright, matching the convention of the gradient stage.
func nonMaxSuppress(magnitude, direction *Raster) *Raster {
	w, h := magnitude.Width, magnitude.Height
	out := NewRaster(w, h)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			angle := direction.Pix[y*w+x]
			mag := magnitude.Pix[y*w+x]

			// Pick the two neighbors along the gradient direction,
			// quantized to the nearest 45 degrees.
			var n1, n2 float64
			switch {
			case (angle >= -math.Pi/8 && angle < math.Pi/8) || angle >= 7*math.Pi/8 || angle < -7*math.Pi/8:
				n1 = magnitude.Pix[y*w+x-1]
				n2 = magnitude.Pix[y*w+x+1]
			case (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8):
				n1 = magnitude.Pix[(y-1)*w+x+1]
				n2 = magnitude.Pix[(y+1)*w+x-1]
			case (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8):
				n1 = magnitude.Pix[(y-1)*w+x]
				n2 = magnitude.Pix[(y+1)*w+x]
			default:
				n1 = magnitude.Pix[(y-1)*w+x-1]
				n2 = magnitude.Pix[(y+1)*w+x+1]
			}

			if mag >= n1 && mag >= n2 {
				out.Pix[y*w+x] = mag
			}
		}
	}
	return out
}

// hysteresis applies double thresholding. Pixels at or above high are strong
// edges; pixels between low and high survive only when an 8-connected
// neighbor is strong.
func hysteresis(suppressed *Raster, low, high float64) *Mask {
	w, h := suppressed.Width, suppressed.Height
	edges := NewMask(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			val := suppressed.Pix[y*w+x]
			if val >= high {
				edges.Bits[y*w+x] = true
				continue
			}
			if val < low {
				continue
			}
			for ky := -1; ky <= 1 && !edges.Bits[y*w+x]; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, h-1)
					px := clamp(x+kx, 0, w-1)
					if suppressed.Pix[py*w+px] >= high {
						edges.Bits[y*w+x] = true
						break
					}
				}
			}
		}
	}
	return edges
}
