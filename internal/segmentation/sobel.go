package segmentation

import "math"

// sobelX and sobelY are the standard 3x3 Sobel kernels. They are shared by
// the Canny gradient stage and the elevation-map computation.
var (
	sobelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelGradients convolves the raster with both Sobel kernels and returns
// per-pixel gradient magnitude and direction (atan2(gy, gx), radians).
// Border pixels use replicated edge values.
func sobelGradients(src *Raster) (magnitude, direction *Raster) {
	magnitude = NewRaster(src.Width, src.Height)
	direction = NewRaster(src.Width, src.Height)

	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := src.At(x+kx, y+ky)
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			magnitude.Pix[y*src.Width+x] = math.Sqrt(gx*gx + gy*gy)
			direction.Pix[y*src.Width+x] = math.Atan2(gy, gx)
		}
	}
	return magnitude, direction
}

// SobelMagnitude computes the Sobel gradient magnitude of a raster,
// normalized to [0, 1].
//
// The result doubles as the elevation map for the watershed transform: flat
// region interiors sit in basins while intensity transitions form the ridges
// that flooding stops at.
func SobelMagnitude(src *Raster) *Raster {
	mag, _ := sobelGradients(src)
	mag.Normalize()
	return mag
}
