// Package cli parses the ghostmask command-line arguments and the JSON job
// file describing one refinement.
package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/garmentfx/ghostmask"
)

// Job is the JSON job file schema: the polygons, style hints, hollow-region
// requests, and preserve zones for one garment.
type Job struct {
	Polygons       []ghostmask.Polygon       `json:"polygons"`
	Style          ghostmask.StyleHints      `json:"style"`
	HollowRequests []ghostmask.HollowRequest `json:"hollow_requests"`
	PreserveZones  []ghostmask.PreserveZone  `json:"preserve_zones"`
}

// Config holds the parsed CLI arguments.
type Config struct {
	ImagePath string
	JobPath   string
	OutPath   string
	MaskSize  int
}

// Parse parses CLI arguments and returns a validated Config.
func Parse() (Config, error) {
	imagePath := flag.String("image", "", "Path to the cleaned garment image (optional; PNG, JPEG, WEBP)")
	jobPath := flag.String("job", "", "Path to the JSON job file with polygons, style hints, hollow requests, and preserve zones (required)")
	outPath := flag.String("out", "", "Path for the rendered mask (required, must be .png)")
	maskSize := flag.Int("mask-size", 1024, "Rendered mask size in pixels when no source image is given")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ghostmask [options]\n\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n  ghostmask --image=garment.png --job=job.json --out=mask.png\n")
	}

	flag.Parse()

	if *jobPath == "" {
		return Config{}, fmt.Errorf("--job is required")
	}
	if *outPath == "" {
		return Config{}, fmt.Errorf("--out is required")
	}
	if ext := strings.ToLower(filepath.Ext(*outPath)); ext != ".png" {
		return Config{}, fmt.Errorf("--out must be a .png file, got %q", ext)
	}
	if *maskSize <= 0 {
		return Config{}, fmt.Errorf("--mask-size must be positive, got %d", *maskSize)
	}

	return Config{
		ImagePath: *imagePath,
		JobPath:   *jobPath,
		OutPath:   *outPath,
		MaskSize:  *maskSize,
	}, nil
}

// LoadJob reads and decodes the JSON job file.
func LoadJob(path string) (Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Job{}, fmt.Errorf("reading job file: %w", err)
	}
	var job Job
	if err := json.Unmarshal(data, &job); err != nil {
		return Job{}, fmt.Errorf("parsing job file: %w", err)
	}
	return job, nil
}
