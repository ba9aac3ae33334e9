// Package faults defines the error taxonomy shared by the refinement engine.
//
// Only ConfigError is fatal: it crosses the public Refine boundary as a hard
// failure. Everything else degrades to the most conservative safe output and
// is reported through non-fatal Warning records on the result.
package faults

import "fmt"

// ConfigError reports an invalid numeric parameter (non-positive kernel size,
// kernel larger than the image, malformed connectivity). It is never silently
// clamped.
type ConfigError struct {
	Param string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Msg)
}

// Configf builds a ConfigError for the named parameter.
func Configf(param, format string, args ...any) *ConfigError {
	return &ConfigError{Param: param, Msg: fmt.Sprintf(format, args...)}
}

// Warning kinds attached to a refinement result.
const (
	KindGeometry = "geometry"
	KindMetric   = "metric"
	KindStage    = "stage"
)

// Warning is a non-fatal diagnostic: a degenerate polygon skipped for a
// stage, a stage that fell back to its input, or a metric that fell back to
// its neutral constant.
type Warning struct {
	Kind    string
	Subject string
	Msg     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Kind, w.Subject, w.Msg)
}

// Geometryf builds a geometry warning for the named polygon or zone.
func Geometryf(subject, format string, args ...any) Warning {
	return Warning{Kind: KindGeometry, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// Metricf builds a metric-fallback warning for the named metric.
func Metricf(subject, format string, args ...any) Warning {
	return Warning{Kind: KindMetric, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}

// Stagef builds a stage-degraded warning for the named pipeline stage.
func Stagef(subject, format string, args ...any) Warning {
	return Warning{Kind: KindStage, Subject: subject, Msg: fmt.Sprintf(format, args...)}
}
