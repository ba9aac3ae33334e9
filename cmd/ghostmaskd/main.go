package main

import (
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/garmentfx/ghostmask/internal/config"
	"github.com/garmentfx/ghostmask/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Error().Err(err).Msg("loading config")
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	srv := server.New(log, cfg.MaskSize, cfg.MaxBodyBytes)

	log.Info().Str("addr", cfg.Addr).Int("mask_size", cfg.MaskSize).Msg("starting ghostmaskd")
	if err := http.ListenAndServe(cfg.Addr, srv.Router()); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
