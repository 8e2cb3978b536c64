package paths

import (
	"path/filepath"
	"strings"
	"testing"

	"licensecrawl/internal/config"
)

func TestResolveUsesFlag(t *testing.T) {
	root := t.TempDir()
	pp, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if pp.Root != root {
		t.Fatalf("Root = %q, want %q", pp.Root, root)
	}
	if pp.ConfigFile != filepath.Join(root, "licensecrawl.yaml") {
		t.Fatalf("unexpected ConfigFile %q", pp.ConfigFile)
	}
	if pp.ResultsDir != filepath.Join(root, "results") {
		t.Fatalf("unexpected ResultsDir %q", pp.ResultsDir)
	}
}

func TestApplyConfigRelativeResultsDir(t *testing.T) {
	pp := newProjectPaths("/proj")
	cfg := config.Default()
	cfg.Output.ResultsDir = "scan-out"

	pp = ApplyConfig(pp, cfg)
	want := filepath.Join("/proj", "scan-out")
	if pp.ResultsDir != want {
		t.Fatalf("ResultsDir = %q, want %q", pp.ResultsDir, want)
	}
}

func TestResultsFileForDistinctTargets(t *testing.T) {
	pp := newProjectPaths("/proj")
	a := pp.ResultsFileFor("/src/a")
	b := pp.ResultsFileFor("/src/b")
	if a == b {
		t.Fatalf("expected distinct results files, got %q twice", a)
	}
	if !strings.HasPrefix(a, filepath.Join("/proj", "results")) {
		t.Fatalf("results file %q outside results dir", a)
	}
	if !strings.HasSuffix(a, ".txt") {
		t.Fatalf("results file %q missing .txt suffix", a)
	}
}
