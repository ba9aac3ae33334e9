// Package compositor rasterizes named mask polygons into a garment mask and
// punches or keeps solid the requested hollow regions (neckline, cuffs,
// armholes, front opening) per region type and per-style heuristics.
//
// Punching is a subtract composite: the region is painted in the cut-out
// color over the existing solid fill, never alpha-blended, so punched regions
// are binary (fully transparent) rather than partially see-through.
package compositor

import (
	"sort"
	"strings"

	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/geometry"
	"github.com/garmentfx/ghostmask/internal/raster"
)

// Request asks for one hollow region to be punched (or explicitly kept
// solid). InnerVisible and the free-form notes ride through to diagnostics
// for the downstream rendering stage.
type Request struct {
	RegionType        string `json:"region_type"`
	KeepHollow        bool   `json:"keep_hollow"`
	InnerVisible      bool   `json:"inner_visible"`
	InnerDescription  string `json:"inner_description"`
	EdgeSamplingNotes string `json:"edge_sampling_notes"`
}

// Report describes which hollow regions were actually applied and how each
// was resolved.
type Report struct {
	HollowApplied int
	PolygonDriven []string // resolved from a matching named polygon
	Generated     []string // procedurally generated from a style template
	Defaulted     []string // fell back to the default ellipse
	KeptSolid     []string // keep_hollow was false
}

// regionAliases maps hollow region types onto the named-polygon vocabulary.
var regionAliases = map[string]string{
	RegionNeckline:     geometry.NameNeck,
	RegionSleeveLeft:   geometry.NameSleeveL,
	RegionSleeveRight:  geometry.NameSleeveR,
	RegionFrontOpening: geometry.NamePlacket,
}

// Rasterize draws every non-hole garment polygon as solid fill, resolves each
// hollow request (named polygon first, then style template, then default
// ellipse), punches the kept-hollow regions, and finally re-asserts preserve
// zones as solid fill so protected markings are never left punched.
func Rasterize(
	polys []geometry.Polygon,
	requests []Request,
	hints StyleHints,
	width, height int,
) (*raster.Image, *Report, []faults.Warning, error) {
	img, err := raster.New(width, height, 4)
	if err != nil {
		return nil, nil, nil, err
	}

	scaled := geometry.ScaleToRaster(polys, width, height)
	report := &Report{}
	var warnings []faults.Warning

	// Solid garment fill.
	garmentBox, haveGarment := geometry.BBox{}, false
	for _, p := range scaled {
		if p.IsHole || p.Name != geometry.NameGarment {
			continue
		}
		if !p.Valid() {
			warnings = append(warnings, faults.Geometryf(p.Name,
				"garment polygon has %d points, need >= 3; skipped", len(p.Points)))
			continue
		}
		if p.SelfIntersects() {
			warnings = append(warnings, faults.Geometryf(p.Name,
				"garment boundary self-intersects; fill may be degraded"))
		}
		fillPolygon(img, p, 255, 255, 255, 255)
		b := p.Bounds()
		if !haveGarment {
			garmentBox, haveGarment = b, true
		} else {
			garmentBox = union(garmentBox, b)
		}
	}
	if !haveGarment {
		warnings = append(warnings, faults.Geometryf(geometry.NameGarment,
			"no valid garment polygon; templates anchored to full canvas"))
		garmentBox = geometry.BBox{MaxX: float64(width), MaxY: float64(height)}
	}

	// Hollow regions.
	for _, req := range requests {
		if !req.KeepHollow {
			report.KeptSolid = append(report.KeptSolid, req.RegionType)
			continue
		}

		if named := matchNamedPolygon(scaled, req.RegionType); named != nil {
			if named.SelfIntersects() {
				warnings = append(warnings, faults.Geometryf(named.Name,
					"hole boundary self-intersects; punch may be degraded"))
			}
			fillPolygon(img, *named, 0, 0, 0, 0)
			report.PolygonDriven = append(report.PolygonDriven, req.RegionType)
			report.HollowApplied++
			continue
		}

		region, styled := generateRegion(req.RegionType, hints, garmentBox)
		fillPolygon(img, region, 0, 0, 0, 0)
		if styled {
			report.Generated = append(report.Generated, req.RegionType)
		} else {
			report.Defaulted = append(report.Defaulted, req.RegionType)
		}
		report.HollowApplied++
	}

	// Preserve zones win over punching: paint them back solid.
	for _, p := range scaled {
		if p.IsHole || !strings.HasPrefix(p.Name, geometry.PreservePrefix) || !p.Valid() {
			continue
		}
		fillPolygon(img, p, 255, 255, 255, 255)
	}

	return img, report, warnings, nil
}

// matchNamedPolygon finds a valid hole polygon matching the region type,
// either by direct name or through the region alias table.
func matchNamedPolygon(polys []geometry.Polygon, regionType string) *geometry.Polygon {
	for i := range polys {
		if !polys[i].IsHole || !polys[i].Valid() {
			continue
		}
		if polys[i].Name == regionType || polys[i].Name == regionAliases[regionType] {
			return &polys[i]
		}
	}
	return nil
}

func union(a, b geometry.BBox) geometry.BBox {
	if b.MinX < a.MinX {
		a.MinX = b.MinX
	}
	if b.MinY < a.MinY {
		a.MinY = b.MinY
	}
	if b.MaxX > a.MaxX {
		a.MaxX = b.MaxX
	}
	if b.MaxY > a.MaxY {
		a.MaxY = b.MaxY
	}
	return a
}

// fillPolygon paints the polygon interior with the given color and alpha
// using an even-odd scanline fill. Sample points sit at pixel centers.
func fillPolygon(img *raster.Image, p geometry.Polygon, r, g, b, a uint8) {
	if !p.Valid() {
		return
	}
	bounds := p.Bounds()
	y0 := clampInt(int(bounds.MinY), 0, img.Height-1)
	y1 := clampInt(int(bounds.MaxY)+1, 0, img.Height-1)

	n := len(p.Points)
	xs := make([]float64, 0, 8)

	for y := y0; y <= y1; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := 0; i < n; i++ {
			p1 := p.Points[i]
			p2 := p.Points[(i+1)%n]
			if (p1.Y <= cy && p2.Y > cy) || (p2.Y <= cy && p1.Y > cy) {
				t := (cy - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		if len(xs) < 2 {
			continue
		}
		sort.Float64s(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := clampInt(int(xs[i]+0.5), 0, img.Width-1)
			x1 := clampInt(int(xs[i+1]-0.5), 0, img.Width-1)
			for x := x0; x <= x1; x++ {
				img.SetRGB(x, y, r, g, b)
				img.SetAlpha(x, y, a)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
