package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/cache"
	"github.com/lbartels/bionet/pkg/errors"
	"github.com/lbartels/bionet/pkg/observability"
	"github.com/lbartels/bionet/pkg/render"
	"github.com/lbartels/bionet/pkg/sim"
)

// =============================================================================
// Runner - Pipeline Execution with Caching
// =============================================================================

// Runner executes the visualization pipeline with content-addressed caching.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *charmlog.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil keyer falls back to the default key scheme.
func NewRunner(c cache.Cache, k cache.Keyer, logger *charmlog.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = charmlog.New(os.Stderr)
	}
	return &Runner{Cache: c, Keyer: k, Logger: logger}
}

// Execute runs the complete parse → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	opts.SetDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	result := &Result{Artifacts: make(map[string][]byte)}

	if err := r.runParse(ctx, opts, result); err != nil {
		return nil, err
	}
	if err := r.runLayout(ctx, opts, result); err != nil {
		return nil, err
	}
	if err := r.runRender(ctx, opts, result); err != nil {
		return nil, err
	}

	r.Logger.Info("pipeline complete",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"steps", result.Stats.Steps,
		"parse", result.Stats.ParseTime,
		"layout", result.Stats.LayoutTime,
		"render", result.Stats.RenderTime)

	return result, nil
}

// =============================================================================
// Stage 1: Parse
// =============================================================================

func (r *Runner) runParse(ctx context.Context, opts Options, result *Result) error {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Input)

	source, err := os.ReadFile(opts.Input)
	if err != nil {
		err = errors.Wrap(errors.ErrCodeDataLoad, err, "failed to read %s", opts.Input)
		hooks.OnParseComplete(ctx, opts.Input, 0, 0, time.Since(start), err)
		return err
	}

	result.GraphHash = cache.Hash(source)
	key := r.Keyer.GraphKey(result.GraphHash)

	if !opts.Refresh {
		if data, ok, _ := r.Cache.Get(ctx, key); ok {
			var g bionet.Graph
			if err := json.Unmarshal(data, &g); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				result.Graph = &g
				result.CacheInfo.ParseHit = true
			}
		}
	}

	if result.Graph == nil {
		observability.Cache().OnCacheMiss(ctx, key)
		g := bionet.ParseBytes(source)
		bionet.ComputeDegrees(g)
		result.Graph = g

		if data, err := json.Marshal(g); err == nil {
			if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err == nil {
				observability.Cache().OnCacheSet(ctx, key, len(data))
			}
		}
	}

	result.Stats.ParseTime = time.Since(start)
	result.Stats.NodeCount = len(result.Graph.Nodes)
	result.Stats.EdgeCount = len(result.Graph.Edges)
	hooks.OnParseComplete(ctx, opts.Input, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.ParseTime, nil)

	r.Logger.Debug("parse complete",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"cached", result.CacheInfo.ParseHit,
		"duration", result.Stats.ParseTime)
	return nil
}

// =============================================================================
// Stage 2: Layout
// =============================================================================

func (r *Runner) runLayout(ctx context.Context, opts Options, result *Result) error {
	start := time.Now()
	hooks := observability.Pipeline()

	thresholds := opts.Thresholds()
	key := r.Keyer.LayoutKey(result.GraphHash, cache.LayoutKeyOpts{
		WeightThreshold: thresholds.Weight,
		DegreeThreshold: thresholds.Degree,
		Width:           opts.Width,
		Height:          opts.Height,
		Highlight:       opts.Highlight,
		ShowLabels:      opts.ShowLabels,
	})

	if !opts.Refresh {
		if data, ok, _ := r.Cache.Get(ctx, key); ok {
			var f sim.Frame
			if err := json.Unmarshal(data, &f); err == nil {
				observability.Cache().OnCacheHit(ctx, key)
				result.Layout = &f
				result.CacheInfo.LayoutHit = true
				result.Stats.LayoutTime = time.Since(start)
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, key)
	}

	engine := sim.NewEngine(result.Graph, thresholds, opts.SimConfig())
	hooks.OnLayoutStart(ctx, len(engine.Frame(false).Nodes))

	engine.SetHighlight(bionet.ParseCategory(opts.Highlight))

	steps := 0
	for steps < opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "layout canceled")
		}
		if !engine.Step() {
			break
		}
		steps++
	}
	result.Stats.Steps = steps

	frame := engine.Frame(opts.ShowLabels)
	result.Layout = &frame
	result.Stats.LayoutTime = time.Since(start)
	hooks.OnLayoutComplete(ctx, steps, engine.Alpha(), result.Stats.LayoutTime, nil)

	if data, err := json.Marshal(frame); err == nil {
		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}

	r.Logger.Debug("layout complete",
		"steps", steps,
		"alpha", engine.Alpha(),
		"visible_nodes", len(frame.Nodes),
		"visible_edges", len(frame.Edges),
		"duration", result.Stats.LayoutTime)
	return nil
}

// =============================================================================
// Stage 3: Render
// =============================================================================

func (r *Runner) runRender(ctx context.Context, opts Options, result *Result) error {
	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)

	layoutHash := cache.Hash(mustJSON(result.Layout))
	allHit := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, cache.ArtifactKeyOpts{
			Format:     format,
			Style:      opts.Highlight,
			ShowLabels: opts.ShowLabels,
		})

		if !opts.Refresh {
			if data, ok, _ := r.Cache.Get(ctx, key); ok {
				observability.Cache().OnCacheHit(ctx, key)
				result.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, key)
		}
		allHit = false

		data, err := r.renderFormat(ctx, format, *result.Layout)
		if err != nil {
			hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
			return err
		}
		result.Artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, DefaultCacheTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}

	result.CacheInfo.RenderHit = allHit && len(opts.Formats) > 0
	result.Stats.RenderTime = time.Since(start)
	hooks.OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	r.Logger.Debug("render complete",
		"formats", len(opts.Formats),
		"duration", result.Stats.RenderTime)
	return nil
}

func (r *Runner) renderFormat(ctx context.Context, format string, frame sim.Frame) ([]byte, error) {
	switch format {
	case FormatSVG:
		return render.RenderSVG(frame, render.WithInteraction()), nil
	case FormatDOT:
		return []byte(render.ToDOT(frame)), nil
	case FormatPNG:
		return render.RenderDOTPNG(ctx, render.ToDOT(frame))
	case FormatJSON:
		return json.MarshalIndent(frame, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}
}

func mustJSON(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
