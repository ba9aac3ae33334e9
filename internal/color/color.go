// Package color provides the RGB statistics used by the refinement engine:
// Euclidean color distance, weighted means, and dominant-color extraction.
//
// Distances are plain Euclidean RGB approximations. True perceptual metrics
// (CIELAB, CIEDE2000) are out of scope.
package color

import (
	"math"
	"sort"

	"github.com/garmentfx/ghostmask/internal/raster"
)

// RGBA represents a color with 8-bit RGBA components.
type RGBA struct {
	R, G, B, A uint8
}

// MaxRGBDistance is the maximum possible Euclidean distance in RGB space.
var MaxRGBDistance = math.Sqrt(255 * 255 * 3)

// DistanceRGB computes the Euclidean distance in RGB space between two colors.
func DistanceRGB(a, b RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// NormalizedDistance maps DistanceRGB to [0, 1], an approximate stand-in for
// a perceptual delta-E.
func NormalizedDistance(a, b RGBA) float64 {
	return DistanceRGB(a, b) / MaxRGBDistance
}

// WeightedMean computes the weighted mean of a set of colors.
// weights[i] corresponds to colors[i]. If weights is nil, equal weights are used.
func WeightedMean(colors []RGBA, weights []int) RGBA {
	if len(colors) == 0 {
		return RGBA{}
	}
	var totalR, totalG, totalB, totalA float64
	var totalW float64
	for i, c := range colors {
		w := 1.0
		if weights != nil {
			w = float64(weights[i])
		}
		totalR += float64(c.R) * w
		totalG += float64(c.G) * w
		totalB += float64(c.B) * w
		totalA += float64(c.A) * w
		totalW += w
	}
	if totalW == 0 {
		return RGBA{}
	}
	return RGBA{
		R: uint8(math.Round(totalR / totalW)),
		G: uint8(math.Round(totalG / totalW)),
		B: uint8(math.Round(totalB / totalW)),
		A: uint8(math.Round(totalA / totalW)),
	}
}

// DominantColor is a palette entry extracted from a raster, with the fraction
// of sampled opaque pixels it covers.
type DominantColor struct {
	Color    RGBA
	Fraction float64
}

// maxDominantSamples caps the pixels sampled per extraction so the cost stays
// bounded on large rasters.
const maxDominantSamples = 65536

// Dominant extracts up to maxColors dominant colors from the opaque pixels of
// the raster by quantizing samples into coarse buckets and iteratively merging
// the two closest buckets (Euclidean RGB) until maxColors remain.
func Dominant(img *raster.Image, maxColors int) []DominantColor {
	if img == nil || maxColors <= 0 {
		return nil
	}

	type bucket struct {
		color  RGBA
		weight int
	}

	// 4 bits per channel keeps the merge loop small.
	quantize := func(r, g, b uint8) RGBA {
		return RGBA{R: r &^ 0x0F, G: g &^ 0x0F, B: b &^ 0x0F, A: 255}
	}

	total := img.Width * img.Height
	stride := 1
	if total > maxDominantSamples {
		stride = total / maxDominantSamples
	}

	index := make(map[RGBA]int)
	var buckets []bucket
	sampled := 0
	for i := 0; i < total; i += stride {
		x, y := i%img.Width, i/img.Width
		if img.Alpha(x, y) < raster.OpaqueThreshold {
			continue
		}
		r, g, b := img.RGB(x, y)
		q := quantize(r, g, b)
		if idx, ok := index[q]; ok {
			buckets[idx].weight++
		} else {
			index[q] = len(buckets)
			buckets = append(buckets, bucket{color: q, weight: 1})
		}
		sampled++
	}
	if sampled == 0 {
		return nil
	}

	for len(buckets) > maxColors {
		bestDist := math.MaxFloat64
		bestI, bestJ := 0, 1
		for i := 0; i < len(buckets); i++ {
			for j := i + 1; j < len(buckets); j++ {
				d := DistanceRGB(buckets[i].color, buckets[j].color)
				if d < bestDist {
					bestDist = d
					bestI = i
					bestJ = j
				}
			}
		}
		merged := WeightedMean(
			[]RGBA{buckets[bestI].color, buckets[bestJ].color},
			[]int{buckets[bestI].weight, buckets[bestJ].weight},
		)
		buckets[bestI] = bucket{color: merged, weight: buckets[bestI].weight + buckets[bestJ].weight}
		buckets = append(buckets[:bestJ], buckets[bestJ+1:]...)
	}

	sort.Slice(buckets, func(i, j int) bool { return buckets[i].weight > buckets[j].weight })

	out := make([]DominantColor, len(buckets))
	for i, b := range buckets {
		out[i] = DominantColor{Color: b.color, Fraction: float64(b.weight) / float64(sampled)}
	}
	return out
}
