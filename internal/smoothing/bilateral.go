// Package smoothing implements an edge-preserving bilateral filter over the
// RGB channels of a raster. Alpha is passed through unchanged so mask shape
// is never affected by smoothing.
package smoothing

import (
	"math"

	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/raster"
)

// Bilateral applies a joint spatial-Gaussian x color-Gaussian weighted average
// to every interior pixel within a diameter x diameter neighborhood. Spatial
// weights are precomputed once per call; color weights come from Euclidean
// RGB distance to the center pixel. The border band of diameter/2 pixels is
// left unmodified.
//
// The O(diameter²) cost per pixel is acceptable: refinement runs once per
// garment, not per frame.
func Bilateral(img *raster.Image, diameter int, sigmaColor, sigmaSpace float64) error {
	if img == nil {
		return faults.Configf("image", "must not be nil")
	}
	if diameter <= 0 {
		return faults.Configf("diameter", "must be positive, got %d", diameter)
	}
	if diameter > img.Width || diameter > img.Height {
		return faults.Configf("diameter", "%d exceeds image dimensions %dx%d",
			diameter, img.Width, img.Height)
	}
	if sigmaColor <= 0 || sigmaSpace <= 0 {
		return faults.Configf("sigma", "sigma_color and sigma_space must be positive, got %g/%g",
			sigmaColor, sigmaSpace)
	}

	half := diameter / 2
	w, h := img.Width, img.Height

	// Spatial weight table, computed once per call.
	spatial := make([]float64, diameter*diameter)
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[(dy+half)*diameter+(dx+half)] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	src := img.Clone()
	twoSigmaColor2 := 2 * sigmaColor * sigmaColor

	for y := half; y < h-half; y++ {
		for x := half; x < w-half; x++ {
			cr, cg, cb := src.RGB(x, y)
			var sumR, sumG, sumB, sumW float64
			for dy := -half; dy <= half; dy++ {
				for dx := -half; dx <= half; dx++ {
					nr, ng, nb := src.RGB(x+dx, y+dy)
					dr := float64(nr) - float64(cr)
					dg := float64(ng) - float64(cg)
					db := float64(nb) - float64(cb)
					colorW := math.Exp(-(dr*dr + dg*dg + db*db) / twoSigmaColor2)
					wgt := spatial[(dy+half)*diameter+(dx+half)] * colorW
					sumR += float64(nr) * wgt
					sumG += float64(ng) * wgt
					sumB += float64(nb) * wgt
					sumW += wgt
				}
			}
			if sumW > 0 {
				img.SetRGB(x, y,
					uint8(math.Round(sumR/sumW)),
					uint8(math.Round(sumG/sumW)),
					uint8(math.Round(sumB/sumW)))
			}
		}
	}
	return nil
}
