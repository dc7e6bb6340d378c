// Package pipeline provides the core visualization pipeline for bionet.
//
// This package implements the complete parse → layout → render pipeline that
// is shared by the CLI, the TUI, and the HTTP server. Centralizing it keeps
// behavior consistent across entry points and gives every stage the same
// content-addressed caching.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: extract the interaction network from GraphML-style text
//  2. Layout: run the force simulation over the filtered subgraph until it
//     settles, producing a frame of final positions
//  3. Render: generate output in various formats (SVG, DOT, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:   "network.xml",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"time"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/errors"
	"github.com/lbartels/bionet/pkg/sim"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, TUI, and Server
// =============================================================================

const (
	// DefaultWeightThreshold is the default minimum edge weight.
	DefaultWeightThreshold = 0.0007

	// DefaultDegreeThreshold is the default minimum node degree (exclusive).
	DefaultDegreeThreshold = 0

	// DefaultMaxSteps bounds a layout run even if alpha never reaches the
	// floor (e.g. a pathological graph that keeps oscillating).
	DefaultMaxSteps = 1000

	// DefaultCacheTTL is how long cached stages stay valid.
	DefaultCacheTTL = 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatDOT:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// ValidateFormats checks that every requested format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q (valid: svg, dot, png, json)", f)
		}
	}
	return nil
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Parse options
	Input   string `json:"input,omitempty"`   // path to GraphML-style source
	Refresh bool   `json:"refresh,omitempty"` // bypass stage caches

	// Filter options. WeightThreshold is a pointer so an explicit zero,
	// which keeps every edge, is distinguishable from an unset field.
	WeightThreshold *float64 `json:"weight_threshold,omitempty"`
	DegreeThreshold int      `json:"degree_threshold,omitempty"`

	// Layout options
	Width    float64 `json:"width,omitempty"`
	Height   float64 `json:"height,omitempty"`
	MaxSteps int     `json:"max_steps,omitempty"`

	// Render options
	Formats    []string `json:"formats,omitempty"`
	Highlight  string   `json:"highlight,omitempty"` // category name or "all"
	ShowLabels bool     `json:"show_labels,omitempty"`
}

// SetDefaults fills unset fields with pipeline defaults.
func (o *Options) SetDefaults() {
	if o.WeightThreshold == nil {
		w := DefaultWeightThreshold
		o.WeightThreshold = &w
	}
	if o.Width == 0 || o.Height == 0 {
		cfg := sim.DefaultConfig()
		if o.Width == 0 {
			o.Width = cfg.Width
		}
		if o.Height == 0 {
			o.Height = cfg.Height
		}
	}
	if o.MaxSteps == 0 {
		o.MaxSteps = DefaultMaxSteps
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Highlight == "" {
		o.Highlight = bionet.HighlightAll.String()
	}
}

// Thresholds returns the filter thresholds from the options, clamped.
// An unset weight falls back to the pipeline default.
func (o *Options) Thresholds() bionet.Thresholds {
	weight := DefaultWeightThreshold
	if o.WeightThreshold != nil {
		weight = *o.WeightThreshold
	}
	return bionet.ClampThresholds(bionet.Thresholds{
		Weight: weight,
		Degree: o.DegreeThreshold,
	})
}

// SimConfig returns the simulation config implied by the options.
func (o *Options) SimConfig() sim.Config {
	cfg := sim.DefaultConfig()
	cfg.Width = o.Width
	cfg.Height = o.Height
	return cfg
}

// =============================================================================
// Result - Pipeline Output
// =============================================================================

// Stats records per-stage timing and counts.
type Stats struct {
	ParseTime  time.Duration `json:"parse_time"`
	LayoutTime time.Duration `json:"layout_time"`
	RenderTime time.Duration `json:"render_time"`
	NodeCount  int           `json:"node_count"`
	EdgeCount  int           `json:"edge_count"`
	Steps      int           `json:"steps"`
}

// CacheInfo records which stages were served from cache.
type CacheInfo struct {
	ParseHit  bool `json:"parse_hit"`
	LayoutHit bool `json:"layout_hit"`
	RenderHit bool `json:"render_hit"`
}

// Result is the output of a complete pipeline run.
type Result struct {
	Graph     *bionet.Graph     `json:"graph,omitempty"`
	GraphHash string            `json:"graph_hash,omitempty"`
	Layout    *sim.Frame        `json:"layout,omitempty"`
	Artifacts map[string][]byte `json:"-"`
	Stats     Stats             `json:"stats"`
	CacheInfo CacheInfo         `json:"cache_info"`
}
