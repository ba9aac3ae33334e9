package geometry

import (
	"math"
	"testing"
)

func square(x0, y0, side float64) Polygon {
	return Polygon{
		Name: "garment",
		Points: []Point{
			{X: x0, Y: y0},
			{X: x0 + side, Y: y0},
			{X: x0 + side, Y: y0 + side},
			{X: x0, Y: y0 + side},
		},
	}
}

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{"unit square", square(0, 0, 1), 1},
		{"10x10 square", square(5, 5, 10), 100},
		{"triangle", Polygon{Points: []Point{{0, 0}, {4, 0}, {0, 3}}}, 6},
		{"degenerate two points", Polygon{Points: []Point{{0, 0}, {1, 1}}}, 0},
		{"empty", Polygon{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.Area(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestCentroidAndBounds(t *testing.T) {
	p := square(10, 20, 10)
	c := p.Centroid()
	if c.X != 15 || c.Y != 25 {
		t.Errorf("Centroid() = %+v, want (15, 25)", c)
	}
	b := p.Bounds()
	if b.MinX != 10 || b.MinY != 20 || b.MaxX != 20 || b.MaxY != 30 {
		t.Errorf("Bounds() = %+v", b)
	}
	if b.Width() != 10 || b.Height() != 10 {
		t.Errorf("Width/Height = %f/%f, want 10/10", b.Width(), b.Height())
	}
}

func TestBBoxOverlaps(t *testing.T) {
	a := square(0, 0, 10).Bounds()
	tests := []struct {
		name string
		b    BBox
		want bool
	}{
		{"contained", square(2, 2, 3).Bounds(), true},
		{"partial", square(8, 8, 10).Bounds(), true},
		{"touching edge", square(10, 0, 5).Bounds(), true},
		{"disjoint", square(20, 20, 5).Bounds(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScaleAboutCentroid(t *testing.T) {
	p := square(0, 0, 10)
	shrunk := p.ScaleAboutCentroid(0.5)

	if shrunk.Area() != p.Area()/4 {
		t.Errorf("halving scale should quarter area: %f vs %f", shrunk.Area(), p.Area())
	}
	// Centroid is preserved.
	c := shrunk.Centroid()
	if math.Abs(c.X-5) > 1e-9 || math.Abs(c.Y-5) > 1e-9 {
		t.Errorf("centroid moved: %+v", c)
	}
	// Input untouched.
	if p.Points[0] != (Point{0, 0}) {
		t.Error("ScaleAboutCentroid mutated its input")
	}
}

func TestExpandFromCentroid(t *testing.T) {
	p := square(0, 0, 10)
	grown := p.ExpandFromCentroid(5)
	if grown.Area() <= p.Area() {
		t.Errorf("expansion did not grow area: %f vs %f", grown.Area(), p.Area())
	}
	// Every corner moved outward by the buffer distance.
	origDist := math.Hypot(5, 5)
	for _, pt := range grown.Points {
		d := math.Hypot(pt.X-5, pt.Y-5)
		if math.Abs(d-(origDist+5)) > 1e-9 {
			t.Errorf("corner at distance %f, want %f", d, origDist+5)
		}
	}
}

func TestSelfIntersects(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want bool
	}{
		{"square", square(0, 0, 10), false},
		{"triangle", Polygon{Points: []Point{{0, 0}, {4, 0}, {2, 3}}}, false},
		{"bowtie", Polygon{Points: []Point{{0, 0}, {10, 10}, {10, 0}, {0, 10}}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.poly.SelfIntersects(); got != tt.want {
				t.Errorf("SelfIntersects = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScaleToRaster(t *testing.T) {
	t.Run("normalized set is scaled", func(t *testing.T) {
		polys := []Polygon{square(0.1, 0.2, 0.5)}
		out := ScaleToRaster(polys, 200, 100)
		if out[0].Points[0] != (Point{X: 20, Y: 20}) {
			t.Errorf("first point = %+v, want (20, 20)", out[0].Points[0])
		}
		if out[0].Points[2] != (Point{X: 120, Y: 70}) {
			t.Errorf("third point = %+v, want (120, 70)", out[0].Points[2])
		}
	})

	t.Run("raster set passes through", func(t *testing.T) {
		polys := []Polygon{square(10, 10, 50)}
		out := ScaleToRaster(polys, 200, 100)
		if out[0].Points[2] != (Point{X: 60, Y: 60}) {
			t.Errorf("raster coordinates were rescaled: %+v", out[0].Points[2])
		}
	})

	t.Run("input is not aliased", func(t *testing.T) {
		polys := []Polygon{square(0.1, 0.1, 0.5)}
		out := ScaleToRaster(polys, 100, 100)
		out[0].Points[0].X = 999
		if polys[0].Points[0].X == 999 {
			t.Error("ScaleToRaster aliased the input points")
		}
	})
}

func TestFindByName(t *testing.T) {
	polys := []Polygon{
		{Name: NameGarment},
		{Name: NameNeck, IsHole: true},
	}
	if FindByName(polys, NameNeck) == nil {
		t.Error("neck polygon not found")
	}
	if FindByName(polys, NameSleeveL) != nil {
		t.Error("found a sleeve that does not exist")
	}
}
