package color

import (
	"math"
	"testing"

	"github.com/garmentfx/ghostmask/internal/raster"
)

func TestDistanceRGB(t *testing.T) {
	tests := []struct {
		name string
		a, b RGBA
		want float64
	}{
		{"identical", RGBA{100, 100, 100, 255}, RGBA{100, 100, 100, 255}, 0},
		{"black to white", RGBA{0, 0, 0, 255}, RGBA{255, 255, 255, 255}, MaxRGBDistance},
		{"single channel", RGBA{0, 0, 0, 255}, RGBA{30, 0, 0, 255}, 30},
		{"pythagorean", RGBA{0, 0, 0, 255}, RGBA{3, 4, 0, 255}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DistanceRGB(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("DistanceRGB = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestNormalizedDistance(t *testing.T) {
	if got := NormalizedDistance(RGBA{0, 0, 0, 255}, RGBA{255, 255, 255, 255}); got != 1 {
		t.Errorf("black/white normalized distance = %f, want 1", got)
	}
	if got := NormalizedDistance(RGBA{50, 50, 50, 255}, RGBA{50, 50, 50, 255}); got != 0 {
		t.Errorf("identical normalized distance = %f, want 0", got)
	}
}

func TestWeightedMean(t *testing.T) {
	tests := []struct {
		name    string
		colors  []RGBA
		weights []int
		want    RGBA
	}{
		{"empty", nil, nil, RGBA{}},
		{
			"equal weights",
			[]RGBA{{0, 0, 0, 255}, {200, 100, 50, 255}},
			nil,
			RGBA{100, 50, 25, 255},
		},
		{
			"weighted toward first",
			[]RGBA{{0, 0, 0, 255}, {100, 100, 100, 255}},
			[]int{3, 1},
			RGBA{25, 25, 25, 255},
		},
		{
			"zero total weight",
			[]RGBA{{10, 10, 10, 255}},
			[]int{0},
			RGBA{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeightedMean(tt.colors, tt.weights); got != tt.want {
				t.Errorf("WeightedMean = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDominant_TwoToneRaster(t *testing.T) {
	// 20x20: left half red, right half blue, all opaque.
	img, err := raster.New(20, 20, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 {
				img.SetRGB(x, y, 200, 16, 16)
			} else {
				img.SetRGB(x, y, 16, 16, 200)
			}
			img.SetAlpha(x, y, 255)
		}
	}

	colors := Dominant(img, 4)
	if len(colors) != 2 {
		t.Fatalf("got %d dominant colors, want 2", len(colors))
	}
	var sum float64
	for _, c := range colors {
		if math.Abs(c.Fraction-0.5) > 1e-9 {
			t.Errorf("fraction = %f, want 0.5", c.Fraction)
		}
		sum += c.Fraction
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("fractions sum to %f, want 1", sum)
	}
}

func TestDominant_MergesToMaxColors(t *testing.T) {
	// Four distinct quantization buckets forced down to two palette entries.
	img, err := raster.New(4, 1, 4)
	if err != nil {
		t.Fatal(err)
	}
	shades := [][3]uint8{{0, 0, 0}, {32, 32, 32}, {224, 224, 224}, {255, 255, 255}}
	for x, s := range shades {
		img.SetRGB(x, 0, s[0], s[1], s[2])
		img.SetAlpha(x, 0, 255)
	}

	colors := Dominant(img, 2)
	if len(colors) != 2 {
		t.Fatalf("got %d dominant colors, want 2", len(colors))
	}
	// Nearby shades merge with each other, not across the dark/light split.
	if colors[0].Color.R > 64 == (colors[1].Color.R > 64) {
		t.Errorf("merge crossed the dark/light split: %+v", colors)
	}
}

func TestDominant_IgnoresTransparentPixels(t *testing.T) {
	img, err := raster.New(10, 10, 4)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.SetRGB(x, y, 0, 255, 0) // transparent green background
		}
	}
	img.SetRGB(5, 5, 240, 16, 16)
	img.SetAlpha(5, 5, 255)

	colors := Dominant(img, 4)
	if len(colors) != 1 {
		t.Fatalf("got %d dominant colors, want 1", len(colors))
	}
	if colors[0].Color.G > colors[0].Color.R {
		t.Errorf("transparent green leaked into the palette: %+v", colors[0].Color)
	}
	if colors[0].Fraction != 1 {
		t.Errorf("fraction = %f, want 1", colors[0].Fraction)
	}
}

func TestDominant_EmptyInputs(t *testing.T) {
	if got := Dominant(nil, 4); got != nil {
		t.Errorf("nil raster returned %+v", got)
	}

	img, err := raster.New(5, 5, 4)
	if err != nil {
		t.Fatal(err)
	}
	if got := Dominant(img, 4); got != nil {
		t.Errorf("fully transparent raster returned %+v", got)
	}
	if got := Dominant(img, 0); got != nil {
		t.Errorf("maxColors=0 returned %+v", got)
	}
}
