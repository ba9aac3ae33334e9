// Package edge implements gradient-based edge detection and the roughness
// scoring used by the quality metrics. Analysis is pure and read-only: the
// input raster is never mutated, and repeated runs yield identical reports.
package edge

import (
	"math"

	"github.com/garmentfx/ghostmask/internal/raster"
)

// edgeThreshold is the normalized gradient magnitude (|G|/255) from which a
// pixel counts as an edge pixel.
const edgeThreshold = 0.1

// Fixed 3x3 Sobel kernels.
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

// Pixel is an edge pixel with its normalized gradient strength.
type Pixel struct {
	X, Y     int
	Strength float64
}

// Report summarizes the edge character of a raster.
type Report struct {
	EdgePixels []Pixel
	// AverageRoughness is the mean strength over edge pixels, 0 when there
	// are none.
	AverageRoughness float64
	// EdgeIntensity is the edge-pixel count over the total pixel count.
	EdgeIntensity float64
	// SmoothnessScore is max(0, 1 - AverageRoughness).
	SmoothnessScore float64
}

// Analyze converts the raster to luminance (mean of R/G/B), applies the Sobel
// kernels to every interior pixel, and classifies pixels whose normalized
// gradient magnitude exceeds the edge threshold.
func Analyze(img *raster.Image) *Report {
	rep := &Report{SmoothnessScore: 1}
	if img == nil || img.Width < 3 || img.Height < 3 {
		return rep
	}

	w, h := img.Width, img.Height
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := img.RGB(x, y)
			lum[y*w+x] = (float64(r) + float64(g) + float64(b)) / 3
		}
	}

	var strengthSum float64
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					v := lum[(y+ky)*w+(x+kx)]
					gx += v * sobelX[ky+1][kx+1]
					gy += v * sobelY[ky+1][kx+1]
				}
			}
			strength := math.Sqrt(gx*gx+gy*gy) / 255
			if strength > edgeThreshold {
				rep.EdgePixels = append(rep.EdgePixels, Pixel{X: x, Y: y, Strength: strength})
				strengthSum += strength
			}
		}
	}

	total := float64(w * h)
	if n := len(rep.EdgePixels); n > 0 {
		rep.AverageRoughness = strengthSum / float64(n)
		rep.EdgeIntensity = float64(n) / total
	}
	rep.SmoothnessScore = 1 - rep.AverageRoughness
	if rep.SmoothnessScore < 0 {
		rep.SmoothnessScore = 0
	}
	return rep
}
