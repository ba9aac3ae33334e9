// Package ghostmask refines binary garment silhouette masks for ghost
// mannequin product photography: anatomical proportion correction,
// edge-preserving smoothing, spurious-hole closing, bilateral symmetry
// scoring, and selective punching of hollow openings (neckline, cuffs,
// armholes, front opening) with protected label/logo/hardware zones.
//
// Usage as a library:
//
//	img, _ := ghostmask.LoadImage("garment.png")
//	result, _ := ghostmask.Refine(ghostmask.Input{
//		Image:    img,
//		Polygons: polygons,
//		Style:    ghostmask.StyleHints{Category: "top", Neckline: "v_neck"},
//		HollowRequests: []ghostmask.HollowRequest{
//			{RegionType: "neckline", KeepHollow: true},
//		},
//	})
//	ghostmask.SavePNG("mask.png", result.Mask)
//
// The engine is stateless and synchronous; independent calls may run in
// parallel without coordination.
package ghostmask

import (
	"errors"
	"fmt"
	"image"

	"github.com/garmentfx/ghostmask/internal/compositor"
	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/geometry"
	"github.com/garmentfx/ghostmask/internal/imaging"
	"github.com/garmentfx/ghostmask/internal/preserve"
	"github.com/garmentfx/ghostmask/internal/raster"
	"github.com/garmentfx/ghostmask/internal/refine"
)

// Point is a 2-D coordinate in the shared mask coordinate space, either
// normalized 0-1 or raster pixels. A polygon set is treated as normalized
// when every coordinate lies within [0, 1.5].
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Polygon is a named, closed mask boundary. Recognized names: "garment",
// "neck", "sleeve_l", "sleeve_r", "hem", "placket", and "preserve_<type>".
// IsHole marks cut-outs.
type Polygon struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
	IsHole bool    `json:"is_hole"`
}

// PreserveZone is a protected region (label, logo, hardware) that must never
// be altered by mask punching. Importance drives the buffer expansion:
// critical 10px-equivalent, important 5, otherwise 0.
type PreserveZone struct {
	Type       string  `json:"type"`       // label, logo, trim, pocket, button, zipper, embellishment
	Region     Polygon `json:"region"`
	Protection string  `json:"protection"` // absolute, proportional, minimal
	Importance string  `json:"importance"` // critical, important, nice_to_have
}

// HollowRequest asks for one hollow region. Region types: "neckline",
// "sleeve_left", "sleeve_right", "armhole_left", "armhole_right",
// "front_opening".
type HollowRequest struct {
	RegionType        string `json:"region_type"`
	KeepHollow        bool   `json:"keep_hollow"`
	InnerVisible      bool   `json:"inner_visible"`
	InnerDescription  string `json:"inner_description"`
	EdgeSamplingNotes string `json:"edge_sampling_notes"`
}

// StyleHints are free-form garment style descriptors from the upstream
// analysis collaborator. Unknown values fall back to defaults.
type StyleHints struct {
	Category string `json:"category_generic"` // top, bottom, dress, outerwear
	Neckline string `json:"neckline_style"`   // v_neck, scoop, boat, high_neck, off_shoulder, crew
	Sleeves  string `json:"sleeve_configuration"` // short, long, 3_quarter, cap, sleeveless
	Closure  string `json:"closure_type"`
}

// Options configures mask rendering.
type Options struct {
	// MaskWidth/MaskHeight set the rendered mask size. Zero values default
	// to the source image size, or 1024x1024 without a source.
	MaskWidth  int
	MaskHeight int
}

// Input is everything one refinement call consumes.
type Input struct {
	Image          image.Image // decoded garment raster; may be nil
	Polygons       []Polygon
	Style          StyleHints
	HollowRequests []HollowRequest
	PreserveZones  []PreserveZone
	Options        Options
}

// QualityMetrics is always present on the result, falling back to neutral
// defaults when a metric cannot be computed.
type QualityMetrics struct {
	Symmetry           float64 `json:"symmetry"`
	EdgeRoughnessPx    float64 `json:"edge_roughness_px"`
	ShoulderWidthRatio float64 `json:"shoulder_width_ratio"`
	NeckInnerRatio     float64 `json:"neck_inner_ratio"`
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// DominantColor is a dominant garment color with its coverage fraction.
type DominantColor struct {
	Color    Color   `json:"color"`
	Fraction float64 `json:"fraction"`
}

// Result is the output of one refinement call.
type Result struct {
	Polygons    []Polygon       // refined polygon set, same schema as input
	Mask        *image.RGBA     // rendered mask
	MaskDataURI string          // mask encoded as a PNG data URI
	Metrics     QualityMetrics

	HollowApplied  int      // hollow regions actually punched
	PolygonRegions []string // regions resolved from named polygons
	StyledRegions  []string // regions generated from style templates
	DefaultRegions []string // regions that fell back to the default ellipse
	HolesFilled    int      // small transparent specks closed upstream

	DominantColors []DominantColor
	Warnings       []string // non-fatal diagnostics
}

// ConfigError is the only error kind that crosses Refine as a hard failure:
// invalid numeric parameters are never silently clamped. Everything else
// degrades to the most conservative safe output and lands in
// Result.Warnings.
type ConfigError = faults.ConfigError

// IsConfigError reports whether err is a fatal configuration error.
func IsConfigError(err error) bool {
	var cfg *ConfigError
	return errors.As(err, &cfg)
}

// Refine runs the full refinement pipeline: proportion correction, preserve
// zone protection, edge refinement, hollow-region compositing, and metric
// computation. It always returns a usable mask unless the configuration
// itself is invalid.
func Refine(in Input) (*Result, error) {
	engine := refine.New()

	var src *raster.Image
	if in.Image != nil {
		src = raster.FromImage(in.Image)
	}

	out, err := engine.Refine(refine.Input{
		Source:         src,
		Polygons:       polygonsIn(in.Polygons),
		Hints:          compositor.ParseStyleHints(in.Style.Category, in.Style.Neckline, in.Style.Sleeves, in.Style.Closure),
		HollowRequests: requestsIn(in.HollowRequests),
		PreserveZones:  zonesIn(in.PreserveZones),
		MaskWidth:      in.Options.MaskWidth,
		MaskHeight:     in.Options.MaskHeight,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		Polygons:    polygonsOut(out.Polygons),
		Metrics:     QualityMetrics(out.Metrics),
		HolesFilled: out.HolesFilled,
	}
	if out.Report != nil {
		res.HollowApplied = out.Report.HollowApplied
		res.PolygonRegions = out.Report.PolygonDriven
		res.StyledRegions = out.Report.Generated
		res.DefaultRegions = out.Report.Defaulted
	}
	if out.Mask != nil {
		res.Mask = out.Mask.ToImage()
		uri, err := imaging.EncodePNGDataURI(res.Mask)
		if err != nil {
			return nil, fmt.Errorf("encoding mask: %w", err)
		}
		res.MaskDataURI = uri
	}
	for _, c := range out.DominantColors {
		res.DominantColors = append(res.DominantColors, DominantColor{
			Color:    Color{R: c.Color.R, G: c.Color.G, B: c.Color.B, A: c.Color.A},
			Fraction: c.Fraction,
		})
	}
	for _, w := range out.Warnings {
		res.Warnings = append(res.Warnings, w.String())
	}
	return res, nil
}

// LoadImage reads an image from disk. Supports PNG, JPEG, and WEBP.
func LoadImage(path string) (image.Image, error) {
	return imaging.Load(path)
}

// SavePNG writes an image to disk as PNG.
func SavePNG(path string, img image.Image) error {
	return imaging.SavePNG(path, img)
}

func polygonsIn(polys []Polygon) []geometry.Polygon {
	out := make([]geometry.Polygon, len(polys))
	for i, p := range polys {
		pts := make([]geometry.Point, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = geometry.Point{X: pt.X, Y: pt.Y}
		}
		out[i] = geometry.Polygon{Name: p.Name, Points: pts, IsHole: p.IsHole}
	}
	return out
}

func polygonsOut(polys []geometry.Polygon) []Polygon {
	out := make([]Polygon, len(polys))
	for i, p := range polys {
		pts := make([]Point, len(p.Points))
		for j, pt := range p.Points {
			pts[j] = Point{X: pt.X, Y: pt.Y}
		}
		out[i] = Polygon{Name: p.Name, Points: pts, IsHole: p.IsHole}
	}
	return out
}

func requestsIn(reqs []HollowRequest) []compositor.Request {
	out := make([]compositor.Request, len(reqs))
	for i, r := range reqs {
		out[i] = compositor.Request(r)
	}
	return out
}

func zonesIn(zones []PreserveZone) []preserve.Zone {
	out := make([]preserve.Zone, len(zones))
	for i, z := range zones {
		pts := make([]geometry.Point, len(z.Region.Points))
		for j, pt := range z.Region.Points {
			pts[j] = geometry.Point{X: pt.X, Y: pt.Y}
		}
		out[i] = preserve.Zone{
			Type:       z.Type,
			Region:     geometry.Polygon{Name: z.Region.Name, Points: pts, IsHole: z.Region.IsHole},
			Protection: z.Protection,
			Importance: z.Importance,
		}
	}
	return out
}
