// Package morphology implements erosion and dilation over configurable
// structuring elements. Operations act on the alpha channel only; color
// channels are left untouched.
package morphology

import (
	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/raster"
)

// Shape selects the structuring-element inclusion predicate.
type Shape string

const (
	ShapeCircle  Shape = "circle"  // Euclidean: dx²+dy² <= r²
	ShapeSquare  Shape = "square"  // always on
	ShapeDiamond Shape = "diamond" // Manhattan: |dx|+|dy| <= r
	ShapeCross   Shape = "cross"   // dx == 0 or dy == 0
)

// Kernel is a structuring element: the set of neighbor offsets that are "on".
type Kernel struct {
	Size    int
	Half    int
	Offsets [][2]int // (dx, dy) pairs satisfying the shape predicate
}

// NewKernel builds a structuring element of the given size and shape.
// A pixel at offset (dx, dy) from the kernel center is on iff it satisfies
// the shape's inclusion predicate.
func NewKernel(size int, shape Shape) (*Kernel, error) {
	if size <= 0 {
		return nil, faults.Configf("kernel_size", "must be positive, got %d", size)
	}
	half := size / 2
	k := &Kernel{Size: size, Half: half}
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if kernelOn(shape, dx, dy, half) {
				k.Offsets = append(k.Offsets, [2]int{dx, dy})
			}
		}
	}
	return k, nil
}

func kernelOn(shape Shape, dx, dy, r int) bool {
	switch shape {
	case ShapeSquare:
		return true
	case ShapeDiamond:
		return abs(dx)+abs(dy) <= r
	case ShapeCross:
		return dx == 0 || dy == 0
	default: // circle
		return dx*dx+dy*dy <= r*r
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Erode sets each alpha to the minimum alpha under the kernel. Border pixels
// within kernelSize/2 of any edge are left unmodified. Iterations beyond the
// first re-run the operation on its own output; erosion never increases mask
// area across iterations.
func Erode(img *raster.Image, kernelSize int, shape Shape, iterations int) error {
	return apply(img, kernelSize, shape, iterations, false)
}

// Dilate sets each alpha to the maximum alpha under the kernel, with the same
// border and iteration rules as Erode. Dilation never decreases mask area.
func Dilate(img *raster.Image, kernelSize int, shape Shape, iterations int) error {
	return apply(img, kernelSize, shape, iterations, true)
}

// Open runs erosion then dilation with the same kernel, removing small
// protrusions and specks.
func Open(img *raster.Image, kernelSize int, shape Shape, iterations int) error {
	if err := Erode(img, kernelSize, shape, iterations); err != nil {
		return err
	}
	return Dilate(img, kernelSize, shape, iterations)
}

// Close runs dilation then erosion with the same kernel, sealing small gaps.
func Close(img *raster.Image, kernelSize int, shape Shape, iterations int) error {
	if err := Dilate(img, kernelSize, shape, iterations); err != nil {
		return err
	}
	return Erode(img, kernelSize, shape, iterations)
}

func apply(img *raster.Image, kernelSize int, shape Shape, iterations int, dilate bool) error {
	if img == nil {
		return faults.Configf("image", "must not be nil")
	}
	if kernelSize > img.Width || kernelSize > img.Height {
		return faults.Configf("kernel_size", "%d exceeds image dimensions %dx%d",
			kernelSize, img.Width, img.Height)
	}
	if iterations <= 0 {
		return faults.Configf("iterations", "must be positive, got %d", iterations)
	}
	k, err := NewKernel(kernelSize, shape)
	if err != nil {
		return err
	}
	if img.Channels < 4 {
		// No alpha plane to operate on.
		return nil
	}

	w, h := img.Width, img.Height
	src := make([]uint8, w*h)
	dst := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src[y*w+x] = img.Alpha(x, y)
		}
	}

	for it := 0; it < iterations; it++ {
		copy(dst, src)
		for y := k.Half; y < h-k.Half; y++ {
			for x := k.Half; x < w-k.Half; x++ {
				var best uint8
				if dilate {
					best = 0
				} else {
					best = 255
				}
				for _, off := range k.Offsets {
					v := src[(y+off[1])*w+(x+off[0])]
					if dilate {
						if v > best {
							best = v
						}
					} else {
						if v < best {
							best = v
						}
					}
				}
				dst[y*w+x] = best
			}
		}
		src, dst = dst, src
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetAlpha(x, y, src[y*w+x])
		}
	}
	return nil
}
