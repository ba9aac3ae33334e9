// Package holes closes small spurious transparent gaps in a garment mask via
// connectivity-based flood fill. Only components whose pixel count falls
// inside a configured window are filled, so legitimate large openings such as
// a neckline are never touched.
package holes

import (
	"github.com/garmentfx/ghostmask/internal/faults"
	"github.com/garmentfx/ghostmask/internal/raster"
)

// Options controls a fill pass.
type Options struct {
	MinSize      int  // inclusive lower bound on component pixel count
	MaxSize      int  // inclusive upper bound on component pixel count
	Connectivity int  // 4 (orthogonal) or 8 (orthogonal + diagonal)
	WhitenRGB    bool // also set filled pixels' RGB to white
}

var neighbors4 = [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

var neighbors8 = [][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Fill scans the raster once in row order. Each unvisited transparent pixel
// (alpha below the opaque threshold) seeds an iterative explicit-stack flood
// fill over same-status neighbors. Components whose size lies within
// [MinSize, MaxSize] are made fully opaque; all others are left untouched but
// stay marked visited, so every pixel is visited at most once and total work
// is O(width*height). Returns the number of components filled.
func Fill(img *raster.Image, opts Options) (int, error) {
	if img == nil {
		return 0, faults.Configf("image", "must not be nil")
	}
	if opts.Connectivity != 4 && opts.Connectivity != 8 {
		return 0, faults.Configf("connectivity", "must be 4 or 8, got %d", opts.Connectivity)
	}
	if opts.MinSize < 0 || opts.MaxSize < opts.MinSize {
		return 0, faults.Configf("size_window", "need 0 <= min <= max, got [%d, %d]",
			opts.MinSize, opts.MaxSize)
	}
	if img.Channels < 4 {
		return 0, nil
	}

	dirs := neighbors4
	if opts.Connectivity == 8 {
		dirs = neighbors8
	}

	w, h := img.Width, img.Height
	visited := make([]bool, w*h)
	filled := 0

	component := make([][2]int, 0, 256)
	stack := make([][2]int, 0, 256)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || img.Alpha(x, y) >= raster.OpaqueThreshold {
				continue
			}

			component = component[:0]
			stack = stack[:0]
			stack = append(stack, [2]int{x, y})
			visited[idx] = true

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				component = append(component, p)

				for _, d := range dirs {
					nx, ny := p[0]+d[0], p[1]+d[1]
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					ni := ny*w + nx
					if visited[ni] || img.Alpha(nx, ny) >= raster.OpaqueThreshold {
						continue
					}
					visited[ni] = true
					stack = append(stack, [2]int{nx, ny})
				}
			}

			if len(component) >= opts.MinSize && len(component) <= opts.MaxSize {
				for _, p := range component {
					img.SetAlpha(p[0], p[1], 255)
					if opts.WhitenRGB {
						img.SetRGB(p[0], p[1], 255, 255, 255)
					}
				}
				filled++
			}
		}
	}
	return filled, nil
}
