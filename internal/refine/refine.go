// Package refine composes the mask algorithms into the single public refine
// operation: proportion correction, zone protection, edge refinement, hollow
// compositing, and quality metric computation.
//
// The engine is stateless and synchronous. Each call owns its raster and
// polygon copies exclusively, so independent calls may run fully in parallel
// with zero coordination.
package refine

import (
	"errors"

	"github.com/garmentfx/ghostmask/internal/color"
	"github.com/garmentfx/ghostmask/internal/compositor"
	"github.com/garmentfx/ghostmask/internal/edge"
	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/geometry"
	"github.com/garmentfx/ghostmask/internal/holes"
	"github.com/garmentfx/ghostmask/internal/morphology"
	"github.com/garmentfx/ghostmask/internal/preserve"
	"github.com/garmentfx/ghostmask/internal/proportion"
	"github.com/garmentfx/ghostmask/internal/raster"
	"github.com/garmentfx/ghostmask/internal/smoothing"
	"github.com/garmentfx/ghostmask/internal/symmetry"
)

// Neutral metric fallbacks, returned when a metric cannot be computed so the
// caller is never blocked by a missing optional input.
const (
	FallbackSymmetry        = 0.88
	FallbackEdgeRoughnessPx = 2.2
	FallbackShoulderRatio   = 0.45
	FallbackNeckInnerRatio  = 0.12
)

// Edge-refinement stage constants.
const (
	refineKernelSize    = 3
	refineSmoothDiam    = 5
	refineSigmaColor    = 25.0
	refineSigmaSpace    = 7.0
	refineHoleMin       = 1
	refineHoleMax       = 400
	refineConnectivity  = 8
	defaultMaskSize     = 1024
	dominantColorCount  = 4
	shoulderLineFromTop = 0.25
)

// Input is everything one refinement call consumes. The engine never retains
// any of it.
type Input struct {
	Source         *raster.Image
	Polygons       []geometry.Polygon
	Hints          compositor.StyleHints
	HollowRequests []compositor.Request
	PreserveZones  []preserve.Zone
	MaskWidth      int
	MaskHeight     int
}

// Metrics is the quality report attached to every result, even on partial
// failure.
type Metrics struct {
	Symmetry           float64 `json:"symmetry"`
	EdgeRoughnessPx    float64 `json:"edge_roughness_px"`
	ShoulderWidthRatio float64 `json:"shoulder_width_ratio"`
	NeckInnerRatio     float64 `json:"neck_inner_ratio"`
}

// Result is the terminal output of a refinement call.
type Result struct {
	Polygons       []geometry.Polygon
	Mask           *raster.Image
	Report         *compositor.Report
	Metrics        Metrics
	DominantColors []color.DominantColor
	HolesFilled    int
	Warnings       []faults.Warning
}

// Engine is a stateless refinement service. Every method takes all required
// state as arguments; nothing is shared across calls.
type Engine struct{}

// New returns a refinement engine.
func New() *Engine {
	return &Engine{}
}

// Refine runs the five sequential stages. Any stage failure other than a
// configuration error degrades that stage to a pass-through and is recorded
// as a warning; only configuration errors abort the call.
func (e *Engine) Refine(in Input) (*Result, error) {
	res := &Result{}

	w, h := in.MaskWidth, in.MaskHeight
	if w <= 0 || h <= 0 {
		if in.Source != nil {
			w, h = in.Source.Width, in.Source.Height
		} else {
			w, h = defaultMaskSize, defaultMaskSize
		}
	}

	// Stage 1: proportion correction.
	polys := geometry.ClonePolygons(in.Polygons)
	res.Warnings = append(res.Warnings, flagDegenerate(polys)...)
	tmpl := proportion.TemplateFor(in.Hints.CategoryGeneric)
	polys = proportion.ApplyTemplate(polys, tmpl)

	// Stage 2: zone protection.
	coordScale := 1.0
	if geometry.IsNormalized(polys) {
		coordScale = 1.0 / float64(w)
	}
	protected, zoneWarnings := preserve.Apply(polys, in.PreserveZones, coordScale)
	res.Warnings = append(res.Warnings, zoneWarnings...)
	polys = protected

	// Stage 3: edge refinement on the working raster.
	var working *raster.Image
	if in.Source != nil {
		working = in.Source.Clone()
		filled, err := e.refineEdges(working)
		if err != nil {
			var cfg *faults.ConfigError
			if errors.As(err, &cfg) {
				return nil, err
			}
			res.Warnings = append(res.Warnings, faults.Stagef("edge_refine",
				"degraded to input: %v", err))
			working = in.Source.Clone()
		} else {
			res.HolesFilled = filled
		}
	} else {
		res.Warnings = append(res.Warnings, faults.Stagef("edge_refine",
			"no source raster supplied; skipped"))
	}

	// Stage 4: hollow compositing.
	mask, report, compWarnings, err := compositor.Rasterize(polys, in.HollowRequests, in.Hints, w, h)
	if err != nil {
		return nil, err
	}
	res.Warnings = append(res.Warnings, compWarnings...)
	res.Mask = mask
	res.Report = report
	res.Polygons = polys

	// Stage 5: metrics.
	res.Metrics = e.computeMetrics(polys, mask, w, h, &res.Warnings)
	if working != nil {
		res.DominantColors = color.Dominant(working, dominantColorCount)
	}

	return res, nil
}

// refineEdges smooths the working raster without losing fabric edge
// character: morphological close to seal pinholes, bilateral smoothing for
// noise, then bounded hole filling for the remaining specks.
func (e *Engine) refineEdges(img *raster.Image) (int, error) {
	if err := morphology.Close(img, refineKernelSize, morphology.ShapeCircle, 1); err != nil {
		return 0, err
	}
	if err := smoothing.Bilateral(img, refineSmoothDiam, refineSigmaColor, refineSigmaSpace); err != nil {
		return 0, err
	}
	return holes.Fill(img, holes.Options{
		MinSize:      refineHoleMin,
		MaxSize:      refineHoleMax,
		Connectivity: refineConnectivity,
	})
}

func (e *Engine) computeMetrics(
	polys []geometry.Polygon,
	mask *raster.Image,
	w, h int,
	warnings *[]faults.Warning,
) Metrics {
	m := Metrics{
		Symmetry:           FallbackSymmetry,
		EdgeRoughnessPx:    FallbackEdgeRoughnessPx,
		ShoulderWidthRatio: FallbackShoulderRatio,
		NeckInnerRatio:     FallbackNeckInnerRatio,
	}

	scaled := geometry.ScaleToRaster(polys, w, h)
	garment := geometry.FindByName(scaled, geometry.NameGarment)

	if garment != nil && garment.Valid() {
		left := geometry.FindByName(scaled, geometry.NameSleeveL)
		right := geometry.FindByName(scaled, geometry.NameSleeveR)
		m.Symmetry = symmetry.Bilateral(*garment, left, right)
	} else {
		*warnings = append(*warnings, faults.Metricf("symmetry",
			"garment polygon missing; using neutral %.2f", FallbackSymmetry))
	}

	if mask != nil {
		rep := edge.Analyze(mask)
		m.EdgeRoughnessPx = rep.AverageRoughness
	} else {
		*warnings = append(*warnings, faults.Metricf("edge_roughness_px",
			"no mask rendered; using neutral %.1f", FallbackEdgeRoughnessPx))
	}

	if garment != nil && garment.Valid() {
		if span, ok := widthAtLine(*garment, shoulderLineFromTop); ok && w > 0 {
			m.ShoulderWidthRatio = span / float64(w)
		} else {
			*warnings = append(*warnings, faults.Metricf("shoulder_width_ratio",
				"shoulder line does not cross garment; using neutral %.2f", FallbackShoulderRatio))
		}
	} else {
		*warnings = append(*warnings, faults.Metricf("shoulder_width_ratio",
			"garment polygon missing; using neutral %.2f", FallbackShoulderRatio))
	}

	neck := geometry.FindByName(scaled, geometry.NameNeck)
	if neck != nil && neck.Valid() && garment != nil && garment.Area() > 0 {
		m.NeckInnerRatio = neck.Area() / garment.Area()
	} else {
		*warnings = append(*warnings, faults.Metricf("neck_inner_ratio",
			"neck polygon missing; using neutral %.2f", FallbackNeckInnerRatio))
	}

	return m
}

// widthAtLine measures the garment's horizontal extent along the line
// fraction of the way down its bounding box.
func widthAtLine(p geometry.Polygon, fraction float64) (float64, bool) {
	b := p.Bounds()
	cy := b.MinY + fraction*b.Height()
	n := len(p.Points)

	minX, maxX := 0.0, 0.0
	found := false
	for i := 0; i < n; i++ {
		p1 := p.Points[i]
		p2 := p.Points[(i+1)%n]
		if (p1.Y <= cy && p2.Y > cy) || (p2.Y <= cy && p1.Y > cy) {
			t := (cy - p1.Y) / (p2.Y - p1.Y)
			x := p1.X + t*(p2.X-p1.X)
			if !found {
				minX, maxX = x, x
				found = true
			} else {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	if !found {
		return 0, false
	}
	return maxX - minX, true
}

func flagDegenerate(polys []geometry.Polygon) []faults.Warning {
	var out []faults.Warning
	for _, p := range polys {
		if !p.Valid() {
			out = append(out, faults.Geometryf(p.Name,
				"polygon has %d points, need >= 3", len(p.Points)))
			continue
		}
		if p.SelfIntersects() {
			out = append(out, faults.Geometryf(p.Name, "boundary self-intersects"))
		}
	}
	return out
}
