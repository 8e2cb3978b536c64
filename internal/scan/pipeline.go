package scan

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"licensecrawl/internal/askalono"
	"licensecrawl/internal/execx"
)

// Request names one target directory and the results file its crawl output
// lands in. Each request must use its own results file; the file passes from
// the executor (writer) to the parser (reader) and is never shared.
type Request struct {
	Target      string
	ResultsFile string
}

// Outcome pairs a request with what became of it. A failed target does not
// abort its siblings.
type Outcome struct {
	Target string
	Result *ScanResult
	Err    error
}

// Bootstrapper acquires a ready-to-execute scanner artifact.
// *askalono.Fetcher is the production implementation.
type Bootstrapper interface {
	Bootstrap(ctx context.Context, opts askalono.BootstrapOptions) (*askalono.Artifact, error)
}

// Pipeline wires bootstrap, version verification, and scan execution into the
// sequential ensure-then-fan-out flow. Not safe for concurrent use; run one
// Pipeline per goroutine if parallel scans are wanted, each with its own
// results files.
type Pipeline struct {
	identity askalono.ToolIdentity
	fetcher  Bootstrapper
	runner   execx.Runner
	executor *Executor
	log      zerolog.Logger

	artifact *askalono.Artifact
	version  string
}

// NewPipeline assembles a pipeline for one tool identity.
func NewPipeline(id askalono.ToolIdentity, fetcher Bootstrapper, runner execx.Runner, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		identity: id,
		fetcher:  fetcher,
		runner:   runner,
		executor: NewExecutor(runner, log),
		log:      log,
	}
}

// EnsureTool bootstraps the scanner once and verifies it honors the pinned
// version, re-bootstrapping with a forced download when the first artifact
// reports a different version. Subsequent calls reuse the verified artifact.
func (p *Pipeline) EnsureTool(ctx context.Context) (string, error) {
	if p.artifact != nil {
		return p.version, nil
	}

	art, version, err := p.bootstrapVerified(ctx, askalono.BootstrapOptions{})
	if err != nil {
		return "", err
	}

	if version != p.identity.PinnedVersion {
		p.log.Warn().
			Str("reported", version).
			Str("pinned", p.identity.PinnedVersion).
			Msg("cached scanner does not satisfy pin, re-bootstrapping")
		_ = art.Release()

		art, version, err = p.bootstrapVerified(ctx, askalono.BootstrapOptions{Force: true})
		if err != nil {
			return "", err
		}
		if version != p.identity.PinnedVersion {
			_ = art.Release()
			return "", fmt.Errorf("scanner reports version %s, pinned %s", version, p.identity.PinnedVersion)
		}
	}

	p.artifact = art
	p.version = version
	return version, nil
}

func (p *Pipeline) bootstrapVerified(ctx context.Context, opts askalono.BootstrapOptions) (*askalono.Artifact, string, error) {
	art, err := p.fetcher.Bootstrap(ctx, opts)
	if err != nil {
		return nil, "", err
	}
	version, err := askalono.Version(ctx, p.runner, art)
	if err != nil {
		_ = art.Release()
		return nil, "", err
	}
	return art, version, nil
}

// ScanAll processes the requests strictly in order. EnsureTool runs first if
// it has not already; per-target failures are recorded in the outcome and do
// not stop the remaining targets.
func (p *Pipeline) ScanAll(ctx context.Context, requests []Request, prov Provenance) ([]Outcome, error) {
	version, err := p.EnsureTool(ctx)
	if err != nil {
		return nil, err
	}

	details := ScannerDetails{Name: p.identity.Name, Version: version}

	outcomes := make([]Outcome, 0, len(requests))
	for _, req := range requests {
		result, err := p.executor.ScanPath(ctx, p.artifact, req.Target, req.ResultsFile, prov, details)
		if err != nil {
			p.log.Error().Str("target", req.Target).Err(err).Msg("scan failed")
		}
		outcomes = append(outcomes, Outcome{Target: req.Target, Result: result, Err: err})
	}
	return outcomes, nil
}

// Close releases the bootstrapped artifact, if any.
func (p *Pipeline) Close() error {
	art := p.artifact
	p.artifact = nil
	p.version = ""
	return art.Release()
}
