// Package geometry defines the named mask polygons produced by upstream
// segmentation and the polygon math the refinement stages rely on.
package geometry

import "math"

// Polygon names form a small fixed vocabulary shared with the upstream
// segmentation collaborator.
const (
	NameGarment = "garment"
	NameNeck    = "neck"
	NameSleeveL = "sleeve_l"
	NameSleeveR = "sleeve_r"
	NameHem     = "hem"
	NamePlacket = "placket"

	// PreservePrefix prefixes protective polygons appended by the zone guard,
	// e.g. "preserve_label".
	PreservePrefix = "preserve_"
)

// Point is a 2-D coordinate in the shared mask coordinate space
// (normalized 0-1 or raster pixels).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a named, closed 2-D boundary. IsHole distinguishes cut-outs
// (hollow regions) from outer boundaries.
type Polygon struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
	IsHole bool    `json:"is_hole"`
}

// Clone returns a deep copy of the polygon.
func (p Polygon) Clone() Polygon {
	pts := make([]Point, len(p.Points))
	copy(pts, p.Points)
	return Polygon{Name: p.Name, Points: pts, IsHole: p.IsHole}
}

// Valid reports whether the polygon has enough points to bound an area.
func (p Polygon) Valid() bool {
	return len(p.Points) >= 3
}

// Area returns the absolute polygon area via the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p.Points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p.Points[i].X*p.Points[j].Y - p.Points[j].X*p.Points[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the mean of the boundary points.
func (p Polygon) Centroid() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, pt := range p.Points {
		sx += pt.X
		sy += pt.Y
	}
	n := float64(len(p.Points))
	return Point{X: sx / n, Y: sy / n}
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the box.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of the box.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Overlaps reports whether two boxes intersect.
func (b BBox) Overlaps(o BBox) bool {
	return b.MinX <= o.MaxX && o.MinX <= b.MaxX &&
		b.MinY <= o.MaxY && o.MinY <= b.MaxY
}

// Bounds returns the polygon's axis-aligned bounding box.
func (p Polygon) Bounds() BBox {
	if len(p.Points) == 0 {
		return BBox{}
	}
	b := BBox{
		MinX: p.Points[0].X, MinY: p.Points[0].Y,
		MaxX: p.Points[0].X, MaxY: p.Points[0].Y,
	}
	for _, pt := range p.Points[1:] {
		if pt.X < b.MinX {
			b.MinX = pt.X
		}
		if pt.X > b.MaxX {
			b.MaxX = pt.X
		}
		if pt.Y < b.MinY {
			b.MinY = pt.Y
		}
		if pt.Y > b.MaxY {
			b.MaxY = pt.Y
		}
	}
	return b
}

// ScaleAboutCentroid scales every point radially about the polygon centroid.
// Factors below 1 shrink the polygon, above 1 expand it. The input is not
// modified.
func (p Polygon) ScaleAboutCentroid(factor float64) Polygon {
	c := p.Centroid()
	out := p.Clone()
	for i, pt := range out.Points {
		out.Points[i] = Point{
			X: c.X + (pt.X-c.X)*factor,
			Y: c.Y + (pt.Y-c.Y)*factor,
		}
	}
	return out
}

// ExpandFromCentroid moves every point radially outward from the centroid by
// a fixed distance in coordinate units. Points coincident with the centroid
// stay put.
func (p Polygon) ExpandFromCentroid(buffer float64) Polygon {
	if buffer == 0 {
		return p.Clone()
	}
	c := p.Centroid()
	out := p.Clone()
	for i, pt := range out.Points {
		dx, dy := pt.X-c.X, pt.Y-c.Y
		dist := math.Hypot(dx, dy)
		if dist == 0 {
			continue
		}
		scale := (dist + buffer) / dist
		out.Points[i] = Point{X: c.X + dx*scale, Y: c.Y + dy*scale}
	}
	return out
}

// SelfIntersects reports whether any two non-adjacent boundary segments cross.
// Self-intersection is tolerated by the engine but flagged as degraded input.
func (p Polygon) SelfIntersects() bool {
	n := len(p.Points)
	if n < 4 {
		return false
	}
	for i := 0; i < n; i++ {
		a1 := p.Points[i]
		a2 := p.Points[(i+1)%n]
		for j := i + 1; j < n; j++ {
			// Skip adjacent segments (shared endpoints).
			if j == i || (j+1)%n == i || (i+1)%n == j {
				continue
			}
			b1 := p.Points[j]
			b2 := p.Points[(j+1)%n]
			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(a1, a2, b1, b2 Point) bool {
	d1 := cross(b1, b2, a1)
	d2 := cross(b1, b2, a2)
	d3 := cross(a1, a2, b1)
	d4 := cross(a1, a2, b2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func cross(o, a, b Point) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// FindByName returns the first polygon with the given name, or nil.
func FindByName(polys []Polygon, name string) *Polygon {
	for i := range polys {
		if polys[i].Name == name {
			return &polys[i]
		}
	}
	return nil
}

// ClonePolygons deep-copies a polygon set so a stage can own its input.
func ClonePolygons(polys []Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		out[i] = p.Clone()
	}
	return out
}

// NormalizedLimit is the largest coordinate magnitude still treated as a
// normalized (0-1) polygon set.
const NormalizedLimit = 1.5

// IsNormalized reports whether the polygon set uses normalized coordinates.
func IsNormalized(polys []Polygon) bool {
	return MaxCoord(polys) <= NormalizedLimit
}

// ScaleToRaster maps a polygon set into raster pixel coordinates. Normalized
// sets are scaled by the raster size; raster-space sets pass through as a
// copy.
func ScaleToRaster(polys []Polygon, width, height int) []Polygon {
	out := ClonePolygons(polys)
	if !IsNormalized(out) {
		return out
	}
	fw, fh := float64(width), float64(height)
	for i := range out {
		for j, pt := range out[i].Points {
			out[i].Points[j] = Point{X: pt.X * fw, Y: pt.Y * fh}
		}
	}
	return out
}

// MaxCoord returns the largest coordinate magnitude across all polygons,
// used to tell normalized sets from raster-space sets.
func MaxCoord(polys []Polygon) float64 {
	max := 0.0
	for _, p := range polys {
		for _, pt := range p.Points {
			if v := math.Abs(pt.X); v > max {
				max = v
			}
			if v := math.Abs(pt.Y); v > max {
				max = v
			}
		}
	}
	return max
}
