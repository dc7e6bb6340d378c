package cli

import (
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/lbartels/bionet/pkg/bionet"
	"github.com/lbartels/bionet/pkg/cache"
	"github.com/lbartels/bionet/pkg/pipeline"
)

func testCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	c.Logger = log.New(io.Discard)
	return c
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "empty defaults to svg", input: "", want: []string{"svg"}},
		{name: "single", input: "png", want: []string{"png"}},
		{name: "multiple", input: "svg,dot,json", want: []string{"svg", "dot", "json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseFormats(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRenderBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{name: "no output strips input extension", output: "", input: "network.xml", want: "network"},
		{name: "output with format extension", output: "out.svg", input: "network.xml", want: "out"},
		{name: "output with foreign extension", output: "out.backup", input: "network.xml", want: "out.backup"},
		{name: "bare output", output: "out", input: "network.xml", want: "out"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderBasePath(tt.output, tt.input); got != tt.want {
				t.Errorf("renderBasePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestNewOptions(t *testing.T) {
	c := testCLI(t)
	c.Config.Thresholds.Weight = 0.002
	c.Config.Canvas.Width = 1024

	opts := c.newOptions()
	if opts.WeightThreshold == nil || *opts.WeightThreshold != 0.002 {
		t.Errorf("WeightThreshold = %v, want 0.002", opts.WeightThreshold)
	}
	if opts.Width != 1024 {
		t.Errorf("Width = %v, want 1024", opts.Width)
	}
	if opts.MaxSteps != pipeline.DefaultMaxSteps {
		t.Errorf("MaxSteps = %d, want default", opts.MaxSteps)
	}
}

func TestNewCache(t *testing.T) {
	c := testCLI(t)

	c.Config.Cache.Backend = "none"
	cch, err := c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cch.(*cache.NullCache); !ok {
		t.Errorf("backend none: got %T, want *cache.NullCache", cch)
	}

	c.Config.Cache.Backend = "memory"
	cch, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cch.(*cache.MemoryCache); !ok {
		t.Errorf("backend memory: got %T, want *cache.MemoryCache", cch)
	}

	c.Config.Cache.Backend = "file"
	c.Config.Cache.Dir = t.TempDir()
	cch, err = c.newCache(false)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cch.(*cache.FileCache); !ok {
		t.Errorf("backend file: got %T, want *cache.FileCache", cch)
	}

	// The no-cache override wins regardless of backend.
	cch, err = c.newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cch.(*cache.NullCache); !ok {
		t.Errorf("noCache: got %T, want *cache.NullCache", cch)
	}
}

func TestRunParse(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "network.xml")
	content := `<graphml>
  <node id="EGFR" label="EGFR-Protein"/>
  <node id="TP53" label="TP53-Protein"/>
  <edge source="EGFR" target="TP53" id="1" weight="0.001"/>
</graphml>`
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	c := testCLI(t)
	output := filepath.Join(dir, "graph.json")
	if err := c.runParse(input, output); err != nil {
		t.Fatalf("runParse() error = %v", err)
	}

	g, err := bionet.ReadGraphFile(output)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(g.Nodes) != 2 || len(g.Edges) != 1 {
		t.Errorf("output has %d nodes / %d edges, want 2 / 1", len(g.Nodes), len(g.Edges))
	}
	if g.Nodes[0].Degree != 1 {
		t.Errorf("degree = %d, want 1", g.Nodes[0].Degree)
	}
}

func TestRunParse_MissingInput(t *testing.T) {
	c := testCLI(t)
	if err := c.runParse("/nonexistent/network.xml", ""); err == nil {
		t.Fatal("expected error for missing input")
	}
}

func TestRootCommand(t *testing.T) {
	c := testCLI(t)
	root := c.RootCommand()

	for _, name := range []string{"parse", "layout", "render", "view", "serve", "stats", "graphs", "cache", "completion"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}
