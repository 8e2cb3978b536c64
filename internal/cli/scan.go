package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"licensecrawl/internal/askalono"
	"licensecrawl/internal/platform"
	"licensecrawl/internal/scan"
	"licensecrawl/internal/tui"
)

var provenanceFlags []string

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <path>...",
		Short: "Scan source trees for license findings",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScan,
	}

	cmd.Flags().StringArrayVar(&provenanceFlags, "provenance", nil,
		"Provenance metadata as key=value, attached to results (repeatable)")

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	pp, cfg, logger, closer, err := setupProject()
	if err != nil {
		return err
	}
	defer closer.Close()

	prov, err := parseProvenance(provenanceFlags)
	if err != nil {
		return err
	}

	identity, err := askalono.NewIdentity(platform.CurrentHost(), cfg.Scanner.PinnedVersion)
	if err != nil {
		return err
	}

	fetcher := newFetcher(identity, cfg, logger)

	pipeline := scan.NewPipeline(identity, fetcher, runner(), logger)
	defer pipeline.Close()

	requests := make([]scan.Request, 0, len(args))
	for _, target := range args {
		requests = append(requests, scan.Request{
			Target:      target,
			ResultsFile: pp.ResultsFileFor(target),
		})
	}

	outcomes, err := pipeline.ScanAll(cmd.Context(), requests, prov)
	if err != nil {
		return err
	}

	if cfg.Output.RawDocuments {
		for _, outcome := range outcomes {
			if outcome.Result == nil {
				continue
			}
			if err := writeRawDocument(outcome.Result, pp.RawDocumentFileFor(outcome.Target)); err != nil {
				logger.Error().Str("target", outcome.Target).Err(err).Msg("write raw document")
			}
		}
	}

	if err := printOutcomes(cmd, outcomes); err != nil {
		return err
	}

	var errs []error
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", outcome.Target, outcome.Err))
		}
	}
	return errors.Join(errs...)
}

func writeRawDocument(result *scan.ScanResult, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := result.EncodeRawDocument(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func parseProvenance(flags []string) (scan.Provenance, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	prov := make(scan.Provenance, len(flags))
	for _, kv := range flags {
		key, value, found := strings.Cut(kv, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid provenance %q (want key=value)", kv)
		}
		prov[key] = value
	}
	return prov, nil
}

func printOutcomes(cmd *cobra.Command, outcomes []scan.Outcome) error {
	mode := tui.DetectMode(cmd.OutOrStdout(), outputJSON)

	if mode == tui.ModeJSON {
		type jsonOutcome struct {
			Target string           `json:"target"`
			Result *scan.ScanResult `json:"result,omitempty"`
			Error  string           `json:"error,omitempty"`
		}
		rows := make([]jsonOutcome, 0, len(outcomes))
		for _, outcome := range outcomes {
			row := jsonOutcome{Target: outcome.Target, Result: outcome.Result}
			if outcome.Err != nil {
				row.Error = outcome.Err.Error()
			}
			rows = append(rows, row)
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	table := tui.NewTable([]tui.Column{
		{Header: "TARGET", Width: 32},
		{Header: "STATUS", Width: 8},
		{Header: "FILES", Width: 6},
		{Header: "TIME", Width: 8},
		{Header: "LICENSES", Width: 0},
	})
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			table.AddRow(outcome.Target, "failed", "-", "-", outcome.Err.Error())
			continue
		}
		summary := outcome.Result.Summary
		table.AddRow(
			outcome.Target,
			"scanned",
			fmt.Sprintf("%d", summary.FileCount),
			summary.EndTime.Sub(summary.StartTime).Round(time.Millisecond).String(),
			strings.Join(summary.Licenses, ", "),
		)
	}
	table.Write(cmd.OutOrStdout(), mode)
	return nil
}
