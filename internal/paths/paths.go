package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"licensecrawl/internal/config"
)

// ProjectPaths captures canonical locations for a licensecrawl project.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	MetaDir    string
	ResultsDir string
	LogsDir    string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	metaDir := filepath.Join(root, ".licensecrawl")
	return ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "licensecrawl.yaml"),
		MetaDir:    metaDir,
		ResultsDir: filepath.Join(root, "results"),
		LogsDir:    filepath.Join(root, "logs"),
	}
}

// ApplyConfig folds config overrides into the resolved layout.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if dir := strings.TrimSpace(cfg.Output.ResultsDir); dir != "" {
		pp.ResultsDir = resolveProjectPath(pp.Root, dir)
	}
	return pp
}

func resolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureMetaDirs creates the results/logs hierarchy alongside the hidden
// .licensecrawl metadata directory.
func (p ProjectPaths) EnsureMetaDirs() error {
	dirs := []string{p.MetaDir, p.ResultsDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ResultsFileFor names the per-target results file under ResultsDir. Each
// target gets its own file so concurrent pipelines never share one.
func (p ProjectPaths) ResultsFileFor(target string) string {
	return filepath.Join(p.ResultsDir, sanitizeName(target)+".txt")
}

// RawDocumentFileFor names the per-target raw report file under ResultsDir.
func (p ProjectPaths) RawDocumentFileFor(target string) string {
	return filepath.Join(p.ResultsDir, sanitizeName(target)+".yml")
}

func sanitizeName(target string) string {
	abs, err := filepath.Abs(target)
	if err != nil {
		abs = target
	}
	name := strings.Trim(filepath.ToSlash(abs), "/")
	if name == "" {
		name = "root"
	}
	replacer := strings.NewReplacer("/", "_", ":", "_", " ", "_")
	return replacer.Replace(name)
}
