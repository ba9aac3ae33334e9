package ghostmask_test

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garmentfx/ghostmask"
)

func testInput() ghostmask.Input {
	return ghostmask.Input{
		Polygons: []ghostmask.Polygon{
			{
				Name: "garment",
				Points: []ghostmask.Point{
					{X: 0.1, Y: 0.05}, {X: 0.9, Y: 0.05},
					{X: 0.9, Y: 0.95}, {X: 0.1, Y: 0.95},
				},
			},
		},
		Style: ghostmask.StyleHints{
			Category: "top",
			Neckline: "v_neck",
			Sleeves:  "short",
			Closure:  "pullover",
		},
		HollowRequests: []ghostmask.HollowRequest{
			{RegionType: "neckline", KeepHollow: true},
		},
		Options: ghostmask.Options{MaskWidth: 128, MaskHeight: 128},
	}
}

func TestRefine_EndToEnd(t *testing.T) {
	result, err := ghostmask.Refine(testInput())
	require.NoError(t, err)
	require.NotNil(t, result)

	require.NotNil(t, result.Mask)
	assert.Equal(t, 128, result.Mask.Bounds().Dx())
	assert.Equal(t, 128, result.Mask.Bounds().Dy())

	assert.True(t, strings.HasPrefix(result.MaskDataURI, "data:image/png;base64,"),
		"mask data URI prefix: %.40s", result.MaskDataURI)

	assert.Equal(t, 1, result.HollowApplied)
	assert.Equal(t, []string{"neckline"}, result.StyledRegions,
		"v_neck hint should drive the template, not the default ellipse")
	assert.Empty(t, result.DefaultRegions)

	assert.GreaterOrEqual(t, result.Metrics.Symmetry, 0.5)
	assert.LessOrEqual(t, result.Metrics.Symmetry, 1.0)
	assert.Len(t, result.Polygons, 1)
}

func TestRefine_WithSourceImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = 180, 40, 40, 255
		}
	}

	in := testInput()
	in.Image = src
	in.Options = ghostmask.Options{} // default to the source size

	result, err := ghostmask.Refine(in)
	require.NoError(t, err)

	assert.Equal(t, 64, result.Mask.Bounds().Dx())
	require.NotEmpty(t, result.DominantColors)
	top := result.DominantColors[0]
	assert.Greater(t, top.Color.R, top.Color.B, "dominant color should be red")
	assert.InDelta(t, 1.0, top.Fraction, 0.01)
}

func TestRefine_NamedNeckPolygon(t *testing.T) {
	in := testInput()
	in.Polygons = append(in.Polygons, ghostmask.Polygon{
		Name:   "neck",
		IsHole: true,
		Points: []ghostmask.Point{
			{X: 0.42, Y: 0.05}, {X: 0.58, Y: 0.05}, {X: 0.5, Y: 0.18},
		},
	})

	result, err := ghostmask.Refine(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"neckline"}, result.PolygonRegions)
	assert.Empty(t, result.StyledRegions)
}

func TestRefine_PreserveZones(t *testing.T) {
	in := testInput()
	in.Polygons = []ghostmask.Polygon{
		{Name: "garment", Points: []ghostmask.Point{
			{X: 0, Y: 0}, {X: 300, Y: 0}, {X: 300, Y: 300}, {X: 0, Y: 300},
		}},
	}
	in.Options = ghostmask.Options{MaskWidth: 300, MaskHeight: 300}
	in.PreserveZones = []ghostmask.PreserveZone{{
		Type:       "label",
		Importance: "critical",
		Protection: "absolute",
		Region: ghostmask.Polygon{Points: []ghostmask.Point{
			{X: 100, Y: 100}, {X: 140, Y: 100}, {X: 140, Y: 140}, {X: 100, Y: 140},
		}},
	}}

	result, err := ghostmask.Refine(in)
	require.NoError(t, err)

	var found bool
	for _, p := range result.Polygons {
		if p.Name == "preserve_label" {
			found = true
			assert.False(t, p.IsHole)
		}
	}
	assert.True(t, found, "protective polygon missing from result set")
}

func TestRefine_ConfigError(t *testing.T) {
	in := testInput()
	// Source too small for the edge-refinement kernel.
	in.Image = image.NewRGBA(image.Rect(0, 0, 2, 2))

	_, err := ghostmask.Refine(in)
	require.Error(t, err)
	assert.True(t, ghostmask.IsConfigError(err))
}

func TestIsConfigError(t *testing.T) {
	assert.False(t, ghostmask.IsConfigError(nil))
	assert.False(t, ghostmask.IsConfigError(errors.New("boom")))
}

func TestRefine_EmptyInputStillProducesMask(t *testing.T) {
	result, err := ghostmask.Refine(ghostmask.Input{
		Options: ghostmask.Options{MaskWidth: 32, MaskHeight: 32},
	})
	require.NoError(t, err)

	assert.NotNil(t, result.Mask)
	assert.NotEmpty(t, result.Warnings)
	// Neutral metric fallbacks.
	assert.Equal(t, 0.88, result.Metrics.Symmetry)
	assert.Equal(t, 0.45, result.Metrics.ShoulderWidthRatio)
	assert.Equal(t, 0.12, result.Metrics.NeckInnerRatio)
}
