package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"licensecrawl/internal/askalono"
	"licensecrawl/internal/execx"
)

// crawlSubcommand is the askalono mode that walks a directory tree.
const crawlSubcommand = "crawl"

// Executor runs the bootstrapped scanner against target directories.
type Executor struct {
	runner execx.Runner
	log    zerolog.Logger
}

// NewExecutor builds an Executor on top of the given runner.
func NewExecutor(runner execx.Runner, log zerolog.Logger) *Executor {
	return &Executor{runner: runner, log: log}
}

// ScanPath crawls target with the bootstrapped artifact and interprets the
// output. The recorded interval brackets the full subprocess lifetime. On
// exit success the captured stdout is copied verbatim to resultsFile and then
// parsed; on failure a ScanError carries the process's failure output.
//
// No timeout is enforced here; a hung scanner blocks until ctx does something
// about it. Callers wanting bounded scans must bound ctx.
func (e *Executor) ScanPath(ctx context.Context, art *askalono.Artifact, target, resultsFile string, prov Provenance, details ScannerDetails) (*ScanResult, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}

	trace, runErr := e.runner.Run(ctx, art.Path, []string{crawlSubcommand, abs}, execx.RunOptions{})

	if stderr := strings.TrimSpace(string(trace.Stderr)); stderr != "" {
		// The scanner chatters on stderr even on healthy runs.
		e.log.Debug().Str("target", target).Msg(stderr)
	}

	if runErr != nil {
		output := strings.TrimSpace(string(trace.Stderr))
		if output == "" {
			output = strings.TrimSpace(string(trace.Stdout))
		}
		return nil, &ScanError{Target: target, Output: output}
	}

	if err := os.WriteFile(resultsFile, trace.Stdout, 0o644); err != nil {
		return nil, fmt.Errorf("write results file: %w", err)
	}

	result, err := askalono.ParseResultsFile(resultsFile)
	if err != nil {
		return nil, err
	}

	return &ScanResult{
		Target:     target,
		Provenance: prov,
		Scanner:    details,
		Summary: Summary{
			StartTime: trace.StartedAt,
			EndTime:   trace.FinishedAt,
			FileCount: result.FileCount,
			Licenses:  result.SortedLicenses(),
			Errors:    result.SortedErrors(),
		},
		RawDocument: result.RawDocument,
	}, nil
}
