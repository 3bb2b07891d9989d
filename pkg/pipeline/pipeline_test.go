package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/forcegraph/pkg/errors"
	"github.com/matzehuels/forcegraph/pkg/layout/force"
)

func quietRunner() *Runner {
	return NewRunner(log.NewWithOptions(io.Discard, log.Options{}))
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "txt"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Zero options should validate: %v", err)
	}

	if opts.Topology != DefaultTopology || opts.Placement != DefaultPlacement {
		t.Errorf("topology/placement = %q/%q", opts.Topology, opts.Placement)
	}
	if opts.Seed != DefaultSeed || opts.Size != DefaultSize {
		t.Errorf("seed/size = %d/%v", opts.Seed, opts.Size)
	}
	if opts.Layout != force.DefaultConfig() {
		t.Errorf("Layout = %+v, want defaults", opts.Layout)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "svg" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
}

func TestOptionsKeepExplicitLayout(t *testing.T) {
	opts := Options{Layout: force.Config{Area: 900, Speed: 2}}
	if err := opts.ValidateForBuild(); err != nil {
		t.Fatal(err)
	}
	if opts.Layout.Area != 900 || opts.Layout.Speed != 2 || opts.Layout.Gravity != 0 {
		t.Errorf("explicit layout overwritten: %+v", opts.Layout)
	}
	if opts.Layout.Update != force.UpdateScaled {
		t.Errorf("Update default not applied: %q", opts.Layout.Update)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"negative steps", Options{Steps: -3}, errors.ErrCodeInvalidInput},
		{"negative size", Options{Size: -1}, errors.ErrCodeInvalidInput},
		{"bad layout", Options{Layout: force.Config{Area: -1}}, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	r := quietRunner()
	e, err := r.Build(Options{Topology: "star:6", Pinned: []int{0}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if e.Len() != 6 {
		t.Errorf("Len() = %d, want 6", e.Len())
	}
	if n, _ := e.Node(0); !n.Pinned {
		t.Error("node 0 should be pinned")
	}

	if _, err := r.Build(Options{Topology: "blob"}); !errors.Is(err, errors.ErrCodeInvalidTopology) {
		t.Errorf("unknown topology error = %v", err)
	}
	if _, err := r.Build(Options{Placement: "spiral"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("unknown placement error = %v", err)
	}
	if _, err := r.Build(Options{Pinned: []int{99}}); !errors.Is(err, errors.ErrCodeUnknownNode) {
		t.Errorf("unknown pinned node error = %v", err)
	}
}

func TestBuildDeterministic(t *testing.T) {
	r := quietRunner()
	a, _ := r.Build(Options{Seed: 9})
	b, _ := r.Build(Options{Seed: 9})
	for i, n := range a.Snapshot().Nodes {
		if b.Snapshot().Nodes[i].Pos != n.Pos {
			t.Fatalf("node %d placed differently with the same seed", n.ID)
		}
	}
}

func TestExecute(t *testing.T) {
	res, err := quietRunner().Execute(context.Background(), Options{
		Steps:   20,
		Formats: []string{"dot", "txt"},
		Width:   40,
		Height:  12,
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Stats.NodeCount != 17 || res.Stats.EdgeCount != 16 || res.Stats.Steps != 20 {
		t.Errorf("Stats = %+v", res.Stats)
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "graph G {") {
		t.Error("dot artifact missing")
	}
	if len(res.Artifacts["txt"]) == 0 {
		t.Error("txt artifact missing")
	}
	if res.Run.RunID == "" {
		t.Error("RunID should be set")
	}

	// The returned engine continues from the final snapshot.
	if res.Engine.Snapshot().Nodes[3].Pos != res.Run.Snapshot.Nodes[3].Pos {
		t.Error("engine and run snapshot disagree")
	}
}

func TestExecuteCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := quietRunner().Execute(ctx, Options{Formats: []string{"dot"}})
	if err == nil || !strings.Contains(err.Error(), "layout") {
		t.Errorf("Execute on cancelled context = %v, want layout error", err)
	}
}
