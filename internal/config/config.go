package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config captures project-level settings for the scan pipeline.
type Config struct {
	Version int           `yaml:"version"`
	Scanner ScannerConfig `yaml:"scanner"`
	Output  OutputConfig  `yaml:"output"`
}

// ScannerConfig pins and locates the wrapped scanner.
type ScannerConfig struct {
	// PinnedVersion overrides the built-in askalono pin.
	PinnedVersion string `yaml:"pinned_version"`
	// DownloadURL overrides the resolved release URL, e.g. for mirrors.
	DownloadURL string `yaml:"download_url"`
	// CacheDir overrides the per-user download cache directory.
	CacheDir string `yaml:"cache_dir"`
}

// OutputConfig controls where scan artifacts are written.
type OutputConfig struct {
	// ResultsDir overrides the default results directory, resolved relative
	// to the project root when not absolute.
	ResultsDir string `yaml:"results_dir"`
	// RawDocuments also writes the per-file raw report next to each results
	// file when true.
	RawDocuments bool `yaml:"raw_documents"`
}

const currentVersion = 1

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Version: currentVersion,
		Output:  OutputConfig{RawDocuments: true},
	}
}

// Load reads the config file at path. A missing file yields Default().
func Load(path string) (Config, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configs this version of the tool cannot honor.
func (c Config) Validate() error {
	if c.Version != currentVersion {
		return fmt.Errorf("unsupported config version %d (want %d)", c.Version, currentVersion)
	}
	return nil
}
