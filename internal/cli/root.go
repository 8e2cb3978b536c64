package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"licensecrawl/internal/askalono"
	"licensecrawl/internal/config"
	"licensecrawl/internal/execx"
	"licensecrawl/internal/logx"
	"licensecrawl/internal/paths"
)

func runner() execx.Runner {
	return execx.CmdRunner{}
}

// newFetcher builds the artifact fetcher with config overrides applied.
func newFetcher(id askalono.ToolIdentity, cfg config.Config, logger zerolog.Logger) *askalono.Fetcher {
	var opts []askalono.FetcherOption
	if cfg.Scanner.CacheDir != "" {
		opts = append(opts, askalono.WithCacheDir(cfg.Scanner.CacheDir))
	}
	if cfg.Scanner.DownloadURL != "" {
		opts = append(opts, askalono.WithDownloadURL(cfg.Scanner.DownloadURL))
	}
	return askalono.NewFetcher(id, logger, opts...)
}

var (
	projectDir string
	outputJSON bool
	verbose    bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licensecrawl",
		Short: "License scanner pipeline wrapping askalono",
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newToolsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupProject resolves the project layout, loads config, and opens the
// project logger. Callers must close the returned closer.
func setupProject() (paths.ProjectPaths, config.Config, zerolog.Logger, io.Closer, error) {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, zerolog.Nop(), nil, err
	}

	cfg, err := config.Load(pp.ConfigFile)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, zerolog.Nop(), nil, err
	}
	pp = paths.ApplyConfig(pp, cfg)

	if err := pp.EnsureMetaDirs(); err != nil {
		return paths.ProjectPaths{}, config.Config{}, zerolog.Nop(), nil, err
	}

	logger, closer, err := logx.New(pp, verbose)
	if err != nil {
		return paths.ProjectPaths{}, config.Config{}, zerolog.Nop(), nil, err
	}
	return pp, cfg, logger, closer, nil
}
