package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	charmlog "github.com/charmbracelet/log"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/cache"
	"github.com/lbartels/bionet/pkg/errors"
)

const sampleNetwork = `<?xml version="1.0"?>
<graphml>
  <node id="EGFR" label="EGFR-Protein"/>
  <node id="TP53" label="TP53-Protein"/>
  <node id="GAPDH" label="GAPDH-Protein"/>
  <edge source="EGFR" target="TP53" id="1" weight="0.0012"/>
  <edge source="TP53" target="GAPDH" id="2" weight="0.0004"/>
</graphml>`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.xml")
	if err := os.WriteFile(path, []byte(sampleNetwork), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	return NewRunner(c, nil, charmlog.New(io.Discard))
}

func TestRunnerExecute(t *testing.T) {
	r := testRunner(t, nil)
	result, err := r.Execute(context.Background(), Options{
		Input:    writeSample(t),
		Formats:  []string{FormatSVG, FormatDOT, FormatJSON},
		MaxSteps: 50,
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Stats.NodeCount != 3 || result.Stats.EdgeCount != 2 {
		t.Errorf("parsed %d nodes / %d edges, want 3 / 2", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.GraphHash == "" {
		t.Error("graph hash not recorded")
	}
	if result.Stats.Steps == 0 {
		t.Error("layout ran zero steps")
	}

	// The default weight threshold drops the 0.0004 edge but all three
	// nodes clear the degree threshold and stay visible.
	if got := len(result.Layout.Nodes); got != 3 {
		t.Errorf("layout has %d visible nodes, want 3", got)
	}
	if got := len(result.Layout.Edges); got != 1 {
		t.Errorf("layout has %d visible edges, want 1", got)
	}

	for _, format := range []string{FormatSVG, FormatDOT, FormatJSON} {
		if len(result.Artifacts[format]) == 0 {
			t.Errorf("missing %s artifact", format)
		}
	}
	if !strings.Contains(string(result.Artifacts[FormatSVG]), `id="node-EGFR"`) {
		t.Error("svg artifact missing node element")
	}
	if !strings.Contains(string(result.Artifacts[FormatDOT]), "layout=neato") {
		t.Error("dot artifact missing layout directive")
	}
}

func TestRunnerExecute_MissingInput(t *testing.T) {
	r := testRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{Input: "/nonexistent/network.xml"})
	if err == nil {
		t.Fatal("expected error for missing input")
	}
	if errors.GetCode(err) != errors.ErrCodeDataLoad {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeDataLoad)
	}
}

func TestRunnerExecute_InvalidFormat(t *testing.T) {
	r := testRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{
		Input:   writeSample(t),
		Formats: []string{"gif"},
	})
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("error code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestRunnerExecute_CacheHitsOnSecondRun(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	opts := Options{
		Input:    writeSample(t),
		Formats:  []string{FormatSVG},
		MaxSteps: 50,
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ParseHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("cold run reported cache hits: %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ParseHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("warm run missed cache: %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatSVG]) != string(second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered artifact")
	}
}

func TestRunnerExecute_HighlightChangesLayoutKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	opts := Options{
		Input:    writeSample(t),
		Formats:  []string{FormatJSON},
		MaxSteps: 50,
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	colors := map[string]string{}
	for _, n := range first.Layout.Nodes {
		colors[n.ID] = n.Color
	}
	if colors["TP53"] != bionet.ColorOf(bionet.Cancer) {
		t.Errorf("TP53 color = %q, want %q", colors["TP53"], bionet.ColorOf(bionet.Cancer))
	}

	// A different highlight must not reuse the first run's layout frame:
	// node colors are baked into it.
	opts.Highlight = "signaling"
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("highlighted run was served the unhighlighted layout frame")
	}
	for _, n := range second.Layout.Nodes {
		if n.Color != bionet.DimmedColor {
			t.Errorf("node %s color = %q, want dimmed %q", n.ID, n.Color, bionet.DimmedColor)
		}
	}
}

func TestRunnerExecute_LabelsChangeLayoutKey(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	opts := Options{
		Input:    writeSample(t),
		Formats:  []string{FormatJSON},
		MaxSteps: 50,
	}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	opts.ShowLabels = true
	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.LayoutHit {
		t.Error("labeled run was served the unlabeled layout frame")
	}
}

func TestRunnerExecute_ZeroWeightKeepsAllEdges(t *testing.T) {
	r := testRunner(t, nil)
	weight := 0.0
	result, err := r.Execute(context.Background(), Options{
		Input:           writeSample(t),
		WeightThreshold: &weight,
		Formats:         []string{FormatJSON},
		MaxSteps:        50,
	})
	if err != nil {
		t.Fatal(err)
	}

	// An explicit zero threshold admits every edge; it must not be swapped
	// for the default.
	if got := len(result.Layout.Edges); got != 2 {
		t.Errorf("layout has %d visible edges, want 2", got)
	}
}

func TestRunnerExecute_RefreshBypassesCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := testRunner(t, fc)
	opts := Options{
		Input:    writeSample(t),
		Formats:  []string{FormatSVG},
		MaxSteps: 50,
	}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatal(err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.ParseHit || result.CacheInfo.LayoutHit || result.CacheInfo.RenderHit {
		t.Errorf("refresh run served from cache: %+v", result.CacheInfo)
	}
}

func TestRunnerExecute_CanceledContext(t *testing.T) {
	r := testRunner(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Execute(ctx, Options{Input: writeSample(t)})
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
