// Package config loads daemon configuration from the environment, with an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the ghostmaskd settings.
type Config struct {
	Addr         string // listen address
	LogLevel     string // zerolog level name
	MaskSize     int    // default rendered mask size when requests omit it
	MaxBodyBytes int64  // request body cap for /v1/refine
}

// Load reads configuration from the environment. A .env file is loaded if
// present; its absence is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         envOr("GHOSTMASKD_ADDR", ":8080"),
		LogLevel:     envOr("GHOSTMASKD_LOG_LEVEL", "info"),
		MaskSize:     1024,
		MaxBodyBytes: 32 << 20,
	}

	if v := os.Getenv("GHOSTMASKD_MASK_SIZE"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("GHOSTMASKD_MASK_SIZE must be a positive integer, got %q", v)
		}
		cfg.MaskSize = size
	}
	if v := os.Getenv("GHOSTMASKD_MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("GHOSTMASKD_MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
