// Package symmetry scores the bilateral (left/right) symmetry of a garment
// silhouette.
package symmetry

import (
	"math"

	"github.com/garmentfx/ghostmask/internal/geometry"
)

// Score weights: position and area carry 0.4 each, sleeves 0.2.
const (
	positionWeight = 0.4
	areaWeight     = 0.4
	sleeveWeight   = 0.2

	// Centroid displacement (in coordinate units) at which the position
	// score bottoms out.
	positionFalloff = 50.0

	// The engine never reports worse than moderate symmetry: missing or
	// noisy geometry is a data-quality issue, not a garment defect.
	floor = 0.5
)

// Bilateral compares the garment's left half against its mirrored right half.
// The garment boundary is split at the horizontal bounding-box center; the
// right subset is mirrored across that line and compared by centroid
// displacement and by shoelace area ratio. When both sleeve polygons are
// supplied their area ratio contributes as well, otherwise the sleeve term
// defaults to 1. The result is clamped to [0.5, 1.0].
func Bilateral(garment geometry.Polygon, leftSleeve, rightSleeve *geometry.Polygon) float64 {
	if !garment.Valid() {
		return floor
	}

	bounds := garment.Bounds()
	centerX := (bounds.MinX + bounds.MaxX) / 2

	var left, right []geometry.Point
	for _, pt := range garment.Points {
		if pt.X <= centerX {
			left = append(left, pt)
		} else {
			right = append(right, pt)
		}
	}
	if len(left) < 3 || len(right) < 3 {
		return floor
	}

	// Mirror the right subset across the center line.
	mirrored := make([]geometry.Point, len(right))
	for i, pt := range right {
		mirrored[i] = geometry.Point{X: 2*centerX - pt.X, Y: pt.Y}
	}

	positionScore := positionSymmetry(left, mirrored)
	areaScore := areaRatio(
		geometry.Polygon{Points: left}.Area(),
		geometry.Polygon{Points: right}.Area(),
	)

	sleeveScore := 1.0
	if leftSleeve != nil && rightSleeve != nil && leftSleeve.Valid() && rightSleeve.Valid() {
		sleeveScore = areaRatio(leftSleeve.Area(), rightSleeve.Area())
	}

	score := positionWeight*positionScore + areaWeight*areaScore + sleeveWeight*sleeveScore
	return clamp(score, floor, 1)
}

func positionSymmetry(left, mirroredRight []geometry.Point) float64 {
	lc := centroid(left)
	rc := centroid(mirroredRight)
	dist := math.Hypot(lc.X-rc.X, lc.Y-rc.Y)
	return math.Max(0, 1-dist/positionFalloff)
}

func areaRatio(a, b float64) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	lo, hi := math.Min(a, b), math.Max(a, b)
	if hi == 0 {
		return 0
	}
	return lo / hi
}

func centroid(pts []geometry.Point) geometry.Point {
	if len(pts) == 0 {
		return geometry.Point{}
	}
	var sx, sy float64
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(pts))
	return geometry.Point{X: sx / n, Y: sy / n}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
