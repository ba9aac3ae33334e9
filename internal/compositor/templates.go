package compositor

import (
	"math"

	"github.com/garmentfx/ghostmask/internal/geometry"
)

// Hollow region types understood by the compositor.
const (
	RegionNeckline     = "neckline"
	RegionSleeveLeft   = "sleeve_left"
	RegionSleeveRight  = "sleeve_right"
	RegionArmholeLeft  = "armhole_left"
	RegionArmholeRight = "armhole_right"
	RegionFrontOpening = "front_opening"
)

// ellipseSegments is the vertex count used when approximating elliptical
// templates as polygons.
const ellipseSegments = 32

// ellipse builds a closed polygon approximating an axis-aligned ellipse.
func ellipse(cx, cy, rx, ry float64) geometry.Polygon {
	pts := make([]geometry.Point, ellipseSegments)
	for i := 0; i < ellipseSegments; i++ {
		a := 2 * math.Pi * float64(i) / ellipseSegments
		pts[i] = geometry.Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)}
	}
	return geometry.Polygon{Points: pts, IsHole: true}
}

// generateRegion procedurally builds a hollow region for the given region
// type at its canonical position inside the garment bounding box, using the
// style hints to pick a geometric template. The second return value is false
// when no style-specific template matched and the default ellipse was used.
func generateRegion(regionType string, hints StyleHints, garment geometry.BBox) (geometry.Polygon, bool) {
	w, h := garment.Width(), garment.Height()
	cx := garment.MinX + w/2
	top := garment.MinY

	switch regionType {
	case RegionNeckline:
		return necklineTemplate(hints.Neckline, cx, top, w, h)

	case RegionSleeveLeft:
		return sleeveTemplate(hints.Sleeves, garment, false)

	case RegionSleeveRight:
		return sleeveTemplate(hints.Sleeves, garment, true)

	case RegionArmholeLeft:
		return ellipse(garment.MinX+0.12*w, top+0.22*h, 0.05*w, 0.09*h), true

	case RegionArmholeRight:
		return ellipse(garment.MaxX-0.12*w, top+0.22*h, 0.05*w, 0.09*h), true

	case RegionFrontOpening:
		return frontOpeningTemplate(hints.Closure, cx, top, w, h)
	}

	// Unrecognized region type: default ellipse at garment center.
	return ellipse(cx, top+h/2, 0.10*w, 0.06*h), false
}

func necklineTemplate(style NecklineStyle, cx, top, w, h float64) (geometry.Polygon, bool) {
	switch style {
	case NecklineVNeck:
		// V shape: wide at the collar, tapering to a point.
		return geometry.Polygon{
			Points: []geometry.Point{
				{X: cx - 0.10*w, Y: top + 0.02*h},
				{X: cx + 0.10*w, Y: top + 0.02*h},
				{X: cx, Y: top + 0.16*h},
			},
			IsHole: true,
		}, true
	case NecklineScoop:
		return ellipse(cx, top+0.08*h, 0.11*w, 0.09*h), true
	case NecklineBoat:
		return ellipse(cx, top+0.04*h, 0.16*w, 0.035*h), true
	case NecklineHigh:
		return ellipse(cx, top+0.03*h, 0.07*w, 0.03*h), true
	case NecklineOffShoulder:
		return ellipse(cx, top+0.05*h, 0.22*w, 0.05*h), true
	case NecklineCrew:
		return ellipse(cx, top+0.06*h, 0.09*w, 0.055*h), true
	}
	// Default ellipse for unknown styles.
	return ellipse(cx, top+0.06*h, 0.10*w, 0.06*h), false
}

func sleeveTemplate(cfg SleeveConfiguration, garment geometry.BBox, right bool) (geometry.Polygon, bool) {
	w, h := garment.Width(), garment.Height()
	x := garment.MinX + 0.06*w
	if right {
		x = garment.MaxX - 0.06*w
	}

	switch cfg {
	case SleeveLong:
		// Cuff opening near the hem on the garment's outer edge.
		return ellipse(x, garment.MinY+0.88*h, 0.045*w, 0.035*h), true
	case SleeveThreeQuarter:
		return ellipse(x, garment.MinY+0.68*h, 0.045*w, 0.035*h), true
	case SleeveShort:
		return ellipse(x, garment.MinY+0.40*h, 0.05*w, 0.05*h), true
	case SleeveCap:
		return ellipse(x, garment.MinY+0.24*h, 0.035*w, 0.03*h), true
	case Sleeveless:
		// No sleeve fabric: the opening is the armhole itself.
		ax := garment.MinX + 0.12*w
		if right {
			ax = garment.MaxX - 0.12*w
		}
		return ellipse(ax, garment.MinY+0.22*h, 0.05*w, 0.09*h), true
	}
	return ellipse(x, garment.MinY+0.45*h, 0.05*w, 0.05*h), false
}

func frontOpeningTemplate(closure ClosureType, cx, top, w, h float64) (geometry.Polygon, bool) {
	halfW := 0.012 * w
	switch closure {
	case ClosureZipFront, ClosureOpenFront, ClosureButtonFront:
		// Narrow vertical strip from below the collar to the hem.
		return geometry.Polygon{
			Points: []geometry.Point{
				{X: cx - halfW, Y: top + 0.10*h},
				{X: cx + halfW, Y: top + 0.10*h},
				{X: cx + halfW, Y: top + 0.96*h},
				{X: cx - halfW, Y: top + 0.96*h},
			},
			IsHole: true,
		}, true
	}
	// Pullovers and unknown closures keep a shorter default strip.
	return geometry.Polygon{
		Points: []geometry.Point{
			{X: cx - halfW, Y: top + 0.10*h},
			{X: cx + halfW, Y: top + 0.10*h},
			{X: cx + halfW, Y: top + 0.55*h},
			{X: cx - halfW, Y: top + 0.55*h},
		},
		IsHole: true,
	}, false
}
