// Package proportion carries the per-garment-category anatomical ratio
// standards and the proportion-correction hook applied ahead of mask
// refinement.
package proportion

import "github.com/garmentfx/ghostmask/internal/geometry"

// Ratio names used in templates.
const (
	RatioNeckToShoulder   = "neck_to_shoulder"
	RatioShoulderWidth    = "shoulder_width"
	RatioArmholeDepth     = "armhole_depth"
	RatioSleeveSymmetry   = "sleeve_symmetry"
	RatioHemlineLevel     = "hemline_level"
	RatioPlacketAlignment = "placket_alignment"
)

// Range bounds a single anatomical ratio.
type Range struct {
	Min, Max, Ideal float64
}

// Template holds the ratio standards for one garment category plus the
// adjustment weight (0..1) applied per ratio when corrections are enabled.
// Templates are immutable once constructed for a session.
type Template struct {
	Category string
	Ratios   map[string]Range
	Weights  map[string]float64
}

var templates = map[string]Template{
	"top": {
		Category: "top",
		Ratios: map[string]Range{
			RatioNeckToShoulder:   {Min: 0.28, Max: 0.42, Ideal: 0.34},
			RatioShoulderWidth:    {Min: 0.38, Max: 0.55, Ideal: 0.45},
			RatioArmholeDepth:     {Min: 0.18, Max: 0.30, Ideal: 0.24},
			RatioSleeveSymmetry:   {Min: 0.90, Max: 1.00, Ideal: 0.98},
			RatioHemlineLevel:     {Min: 0.85, Max: 1.00, Ideal: 0.95},
			RatioPlacketAlignment: {Min: 0.45, Max: 0.55, Ideal: 0.50},
		},
		Weights: map[string]float64{
			RatioNeckToShoulder:   0.8,
			RatioShoulderWidth:    0.9,
			RatioArmholeDepth:     0.6,
			RatioSleeveSymmetry:   0.9,
			RatioHemlineLevel:     0.5,
			RatioPlacketAlignment: 0.7,
		},
	},
	"bottom": {
		Category: "bottom",
		Ratios: map[string]Range{
			RatioNeckToShoulder:   {Min: 0.00, Max: 0.10, Ideal: 0.00},
			RatioShoulderWidth:    {Min: 0.30, Max: 0.48, Ideal: 0.38},
			RatioArmholeDepth:     {Min: 0.00, Max: 0.05, Ideal: 0.00},
			RatioSleeveSymmetry:   {Min: 0.95, Max: 1.00, Ideal: 1.00},
			RatioHemlineLevel:     {Min: 0.90, Max: 1.00, Ideal: 0.97},
			RatioPlacketAlignment: {Min: 0.45, Max: 0.55, Ideal: 0.50},
		},
		Weights: map[string]float64{
			RatioNeckToShoulder:   0.1,
			RatioShoulderWidth:    0.8,
			RatioArmholeDepth:     0.1,
			RatioSleeveSymmetry:   0.9,
			RatioHemlineLevel:     0.8,
			RatioPlacketAlignment: 0.6,
		},
	},
	"dress": {
		Category: "dress",
		Ratios: map[string]Range{
			RatioNeckToShoulder:   {Min: 0.26, Max: 0.40, Ideal: 0.32},
			RatioShoulderWidth:    {Min: 0.32, Max: 0.48, Ideal: 0.40},
			RatioArmholeDepth:     {Min: 0.14, Max: 0.26, Ideal: 0.20},
			RatioSleeveSymmetry:   {Min: 0.90, Max: 1.00, Ideal: 0.98},
			RatioHemlineLevel:     {Min: 0.88, Max: 1.00, Ideal: 0.96},
			RatioPlacketAlignment: {Min: 0.46, Max: 0.54, Ideal: 0.50},
		},
		Weights: map[string]float64{
			RatioNeckToShoulder:   0.8,
			RatioShoulderWidth:    0.8,
			RatioArmholeDepth:     0.6,
			RatioSleeveSymmetry:   0.9,
			RatioHemlineLevel:     0.7,
			RatioPlacketAlignment: 0.6,
		},
	},
	"outerwear": {
		Category: "outerwear",
		Ratios: map[string]Range{
			RatioNeckToShoulder:   {Min: 0.30, Max: 0.46, Ideal: 0.37},
			RatioShoulderWidth:    {Min: 0.42, Max: 0.60, Ideal: 0.50},
			RatioArmholeDepth:     {Min: 0.20, Max: 0.34, Ideal: 0.27},
			RatioSleeveSymmetry:   {Min: 0.88, Max: 1.00, Ideal: 0.97},
			RatioHemlineLevel:     {Min: 0.82, Max: 1.00, Ideal: 0.93},
			RatioPlacketAlignment: {Min: 0.44, Max: 0.56, Ideal: 0.50},
		},
		Weights: map[string]float64{
			RatioNeckToShoulder:   0.8,
			RatioShoulderWidth:    0.9,
			RatioArmholeDepth:     0.7,
			RatioSleeveSymmetry:   0.9,
			RatioHemlineLevel:     0.6,
			RatioPlacketAlignment: 0.8,
		},
	},
}

// TemplateFor looks up the template for a garment category. Unknown
// categories fall back to "top".
func TemplateFor(category string) Template {
	if t, ok := templates[category]; ok {
		return t
	}
	return templates["top"]
}

// CorrectionRule adjusts a polygon toward a template ratio. Rules are
// optional; when none are configured ApplyTemplate is a pass-through.
type CorrectionRule func(poly geometry.Polygon, tmpl Template) geometry.Polygon

// ApplyTemplate runs the configured correction rules over the polygon set.
// Output polygon count and per-polygon point counts always match the input;
// rules may only move points, never add or drop them.
func ApplyTemplate(polys []geometry.Polygon, tmpl Template, rules ...CorrectionRule) []geometry.Polygon {
	out := geometry.ClonePolygons(polys)
	if len(rules) == 0 {
		return out
	}
	for i := range out {
		for _, rule := range rules {
			adjusted := rule(out[i], tmpl)
			if len(adjusted.Points) == len(out[i].Points) {
				out[i] = adjusted
			}
		}
	}
	return out
}
