package proportion

import (
	"testing"

	"github.com/garmentfx/ghostmask/internal/geometry"
)

func TestTemplateFor(t *testing.T) {
	tests := []struct {
		category string
		want     string
	}{
		{"top", "top"},
		{"bottom", "bottom"},
		{"dress", "dress"},
		{"outerwear", "outerwear"},
		{"swimwear", "top"}, // unknown falls back to top
		{"", "top"},
	}
	for _, tt := range tests {
		t.Run(tt.category, func(t *testing.T) {
			if got := TemplateFor(tt.category); got.Category != tt.want {
				t.Errorf("TemplateFor(%q).Category = %q, want %q", tt.category, got.Category, tt.want)
			}
		})
	}
}

func TestTemplateRangesWellFormed(t *testing.T) {
	ratios := []string{
		RatioNeckToShoulder, RatioShoulderWidth, RatioArmholeDepth,
		RatioSleeveSymmetry, RatioHemlineLevel, RatioPlacketAlignment,
	}
	for _, category := range []string{"top", "bottom", "dress", "outerwear"} {
		tmpl := TemplateFor(category)
		for _, name := range ratios {
			r, ok := tmpl.Ratios[name]
			if !ok {
				t.Errorf("%s: missing ratio %s", category, name)
				continue
			}
			if r.Min > r.Max {
				t.Errorf("%s/%s: min %f > max %f", category, name, r.Min, r.Max)
			}
			if r.Ideal < r.Min || r.Ideal > r.Max {
				t.Errorf("%s/%s: ideal %f outside [%f, %f]", category, name, r.Ideal, r.Min, r.Max)
			}
			w, ok := tmpl.Weights[name]
			if !ok || w < 0 || w > 1 {
				t.Errorf("%s/%s: weight %f out of [0, 1]", category, name, w)
			}
		}
	}
}

func TestApplyTemplate_PassThrough(t *testing.T) {
	polys := []geometry.Polygon{
		{Name: geometry.NameGarment, Points: []geometry.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		}},
		{Name: geometry.NameNeck, IsHole: true, Points: []geometry.Point{
			{X: 4, Y: 0}, {X: 6, Y: 0}, {X: 5, Y: 2},
		}},
	}

	out := ApplyTemplate(polys, TemplateFor("top"))

	if len(out) != len(polys) {
		t.Fatalf("polygon count changed: %d -> %d", len(polys), len(out))
	}
	for i := range out {
		if len(out[i].Points) != len(polys[i].Points) {
			t.Errorf("polygon %d point count changed: %d -> %d",
				i, len(polys[i].Points), len(out[i].Points))
		}
		if out[i].Name != polys[i].Name || out[i].IsHole != polys[i].IsHole {
			t.Errorf("polygon %d identity changed: %+v", i, out[i])
		}
	}

	// Pass-through still clones: mutating the output must not touch the input.
	out[0].Points[0].X = 99
	if polys[0].Points[0].X == 99 {
		t.Error("ApplyTemplate aliased the input points")
	}
}

func TestApplyTemplate_RulesMovePointsOnly(t *testing.T) {
	polys := []geometry.Polygon{
		{Name: geometry.NameGarment, Points: []geometry.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10},
		}},
	}

	shift := func(poly geometry.Polygon, tmpl Template) geometry.Polygon {
		out := poly.Clone()
		for i := range out.Points {
			out.Points[i].X += 1
		}
		return out
	}
	// A rule that tries to drop points must be rejected.
	truncate := func(poly geometry.Polygon, tmpl Template) geometry.Polygon {
		out := poly.Clone()
		out.Points = out.Points[:2]
		return out
	}

	out := ApplyTemplate(polys, TemplateFor("top"), shift, truncate)

	if len(out[0].Points) != 4 {
		t.Fatalf("point count changed: %d", len(out[0].Points))
	}
	if out[0].Points[0].X != 1 {
		t.Errorf("shift rule not applied: first point %+v", out[0].Points[0])
	}
}
