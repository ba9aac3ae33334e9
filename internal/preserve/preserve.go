// Package preserve expands and enforces protected regions (labels, logos,
// hardware) against mask modification. Its core safety invariant: a critical
// preserve zone and a hollow cut-out must never overlap in the final
// composite.
package preserve

import (
	"strings"

	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/geometry"
)

// Zone types recognized from upstream label/logo detections.
const (
	TypeLabel         = "label"
	TypeLogo          = "logo"
	TypeBrand         = "brand"
	TypeTrim          = "trim"
	TypePocket        = "pocket"
	TypeButton        = "button"
	TypeZipper        = "zipper"
	TypeEmbellishment = "embellishment"
)

// Protection levels.
const (
	ProtectionAbsolute     = "absolute"
	ProtectionProportional = "proportional"
	ProtectionMinimal      = "minimal"
)

// Importance tiers. Critical zones get the largest buffer expansion.
const (
	ImportanceCritical   = "critical"
	ImportanceImportant  = "important"
	ImportanceNiceToHave = "nice_to_have"
)

// Buffer expansion per importance tier, in pixel-equivalent units.
const (
	bufferCritical  = 10.0
	bufferImportant = 5.0
)

// holeShrinkFactor is applied per round when a hole overlaps a critical
// marking zone.
const holeShrinkFactor = 0.9

// maxShrinkRounds bounds the shrink loop on pathological geometry.
const maxShrinkRounds = 25

// Zone is a protected region supplied by upstream detection. Zones are
// consumed once per refinement call and never persisted.
type Zone struct {
	Type       string           `json:"type"`
	Region     geometry.Polygon `json:"region"`
	Protection string           `json:"protection"`
	Importance string           `json:"importance"`
}

// Buffer returns the outward expansion for the zone's importance tier.
func (z Zone) Buffer() float64 {
	switch z.Importance {
	case ImportanceCritical:
		return bufferCritical
	case ImportanceImportant:
		return bufferImportant
	default:
		return 0
	}
}

// marking reports whether the zone protects brand markings, which must never
// be punched through by a hollow cut-out.
func (z Zone) marking() bool {
	switch z.Type {
	case TypeLabel, TypeLogo, TypeBrand:
		return true
	}
	return false
}

// Apply builds a protective polygon for each zone (expanded outward from its
// centroid by the importance buffer scaled by coordScale) and appends it to
// the polygon set as a non-hole "preserve_<type>" entry.
//
// For critical marking zones, every hole polygon overlapping the protective
// region's bounding box is shrunk toward its own centroid, 10% per round,
// until the boxes no longer overlap. Holes are never deleted.
//
// coordScale converts pixel-equivalent buffer units into the polygon
// coordinate space (1 for raster coordinates, 1/rasterSize for normalized).
func Apply(polys []geometry.Polygon, zones []Zone, coordScale float64) ([]geometry.Polygon, []faults.Warning) {
	out := geometry.ClonePolygons(polys)
	var warnings []faults.Warning
	if coordScale <= 0 {
		coordScale = 1
	}

	for _, zone := range zones {
		if !zone.Region.Valid() {
			warnings = append(warnings, faults.Geometryf(
				"preserve_"+zone.Type, "zone region has %d points, need >= 3; skipped",
				len(zone.Region.Points)))
			continue
		}

		protective := zone.Region.ExpandFromCentroid(zone.Buffer() * coordScale)
		protective.Name = PreserveName(zone.Type)
		protective.IsHole = false

		if zone.marking() && zone.Importance == ImportanceCritical {
			guardBox := protective.Bounds()
			for i := range out {
				if !out[i].IsHole || !out[i].Valid() {
					continue
				}
				shrunk := false
				for round := 0; round < maxShrinkRounds && out[i].Bounds().Overlaps(guardBox); round++ {
					out[i] = out[i].ScaleAboutCentroid(holeShrinkFactor)
					shrunk = true
				}
				if shrunk && out[i].Bounds().Overlaps(guardBox) {
					warnings = append(warnings, faults.Geometryf(
						out[i].Name, "still overlaps critical %s zone after %d shrink rounds",
						zone.Type, maxShrinkRounds))
				}
			}
		}

		out = append(out, protective)
	}
	return out, warnings
}

// PreserveName returns the polygon name for a protective zone of the given type.
func PreserveName(zoneType string) string {
	zoneType = strings.TrimSpace(zoneType)
	if zoneType == "" {
		zoneType = "zone"
	}
	return geometry.PreservePrefix + zoneType
}
