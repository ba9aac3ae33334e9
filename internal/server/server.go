// Package server exposes the refine operation over HTTP for the orchestration
// layer: POST /v1/refine takes the mask job as JSON (images as PNG data URIs)
// and returns the refined polygons, rendered mask, and quality metrics.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/garmentfx/ghostmask"
	"github.com/garmentfx/ghostmask/internal/imaging"
)

// Server handles refine requests.
type Server struct {
	log          zerolog.Logger
	maskSize     int
	maxBodyBytes int64
}

// New builds a Server with the given defaults.
func New(log zerolog.Logger, maskSize int, maxBodyBytes int64) *Server {
	return &Server{log: log, maskSize: maskSize, maxBodyBytes: maxBodyBytes}
}

// Router assembles the chi router with logging and recovery middleware.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/refine", s.handleRefine)
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// RefineRequest is the wire form of one refine job.
type RefineRequest struct {
	ImageDataURI   string                    `json:"image_data_uri,omitempty"`
	Polygons       []ghostmask.Polygon       `json:"polygons"`
	Style          ghostmask.StyleHints      `json:"style"`
	HollowRequests []ghostmask.HollowRequest `json:"hollow_requests"`
	PreserveZones  []ghostmask.PreserveZone  `json:"preserve_zones"`
	MaskWidth      int                       `json:"mask_width,omitempty"`
	MaskHeight     int                       `json:"mask_height,omitempty"`
}

// RefineResponse is the wire form of a refine result.
type RefineResponse struct {
	Polygons       []ghostmask.Polygon       `json:"polygons"`
	MaskDataURI    string                    `json:"mask_data_uri"`
	Metrics        ghostmask.QualityMetrics  `json:"metrics"`
	HollowApplied  int                       `json:"hollow_applied"`
	PolygonRegions []string                  `json:"polygon_regions,omitempty"`
	StyledRegions  []string                  `json:"styled_regions,omitempty"`
	DefaultRegions []string                  `json:"default_regions,omitempty"`
	HolesFilled    int                       `json:"holes_filled"`
	DominantColors []ghostmask.DominantColor `json:"dominant_colors,omitempty"`
	Warnings       []string                  `json:"warnings,omitempty"`
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBodyBytes)

	var req RefineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	in := ghostmask.Input{
		Polygons:       req.Polygons,
		Style:          req.Style,
		HollowRequests: req.HollowRequests,
		PreserveZones:  req.PreserveZones,
		Options: ghostmask.Options{
			MaskWidth:  req.MaskWidth,
			MaskHeight: req.MaskHeight,
		},
	}
	if in.Options.MaskWidth == 0 && in.Options.MaskHeight == 0 {
		in.Options.MaskWidth = s.maskSize
		in.Options.MaskHeight = s.maskSize
	}

	if req.ImageDataURI != "" {
		img, err := imaging.DecodeDataURI(req.ImageDataURI)
		if err != nil {
			writeError(w, http.StatusBadRequest, "image_data_uri: "+err.Error())
			return
		}
		in.Image = img
	}

	result, err := ghostmask.Refine(in)
	if err != nil {
		if ghostmask.IsConfigError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("refine failed")
		writeError(w, http.StatusInternalServerError, "refinement failed")
		return
	}

	writeJSON(w, http.StatusOK, RefineResponse{
		Polygons:       result.Polygons,
		MaskDataURI:    result.MaskDataURI,
		Metrics:        result.Metrics,
		HollowApplied:  result.HollowApplied,
		PolygonRegions: result.PolygonRegions,
		StyledRegions:  result.StyledRegions,
		DefaultRegions: result.DefaultRegions,
		HolesFilled:    result.HolesFilled,
		DominantColors: result.DominantColors,
		Warnings:       result.Warnings,
	})
}

// requestLogger logs one structured line per request.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
