package main

import (
	"fmt"
	"image"
	"os"

	"github.com/garmentfx/ghostmask"
	"github.com/garmentfx/ghostmask/internal/cli"
)

func main() {
	cfg, err := cli.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	job, err := cli.LoadJob(cfg.JobPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var img image.Image
	if cfg.ImagePath != "" {
		fmt.Printf("Loading image: %s\n", cfg.ImagePath)
		img, err = ghostmask.LoadImage(cfg.ImagePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Image loaded: %dx%d\n", img.Bounds().Dx(), img.Bounds().Dy())
	}

	opts := ghostmask.Options{}
	if img == nil {
		opts.MaskWidth = cfg.MaskSize
		opts.MaskHeight = cfg.MaskSize
	}

	fmt.Printf("Refining mask (category=%s, neckline=%s, sleeves=%s)...\n",
		job.Style.Category, job.Style.Neckline, job.Style.Sleeves)
	result, err := ghostmask.Refine(ghostmask.Input{
		Image:          img,
		Polygons:       job.Polygons,
		Style:          job.Style,
		HollowRequests: job.HollowRequests,
		PreserveZones:  job.PreserveZones,
		Options:        opts,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Hollow regions applied: %d (polygon-driven %d, styled %d, default %d)\n",
		result.HollowApplied, len(result.PolygonRegions), len(result.StyledRegions), len(result.DefaultRegions))
	fmt.Printf("Holes filled: %d\n", result.HolesFilled)
	fmt.Printf("Metrics: symmetry=%.3f roughness=%.2fpx shoulder=%.3f neck=%.3f\n",
		result.Metrics.Symmetry, result.Metrics.EdgeRoughnessPx,
		result.Metrics.ShoulderWidthRatio, result.Metrics.NeckInnerRatio)
	for _, w := range result.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	fmt.Printf("Saving mask: %s\n", cfg.OutPath)
	if err := ghostmask.SavePNG(cfg.OutPath, result.Mask); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done!")
}
