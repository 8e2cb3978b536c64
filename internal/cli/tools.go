package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"licensecrawl/internal/askalono"
	"licensecrawl/internal/platform"
	"licensecrawl/internal/scan"
	"licensecrawl/internal/tui"
)

var installForce bool

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Manage the wrapped scanner",
	}

	cmd.AddCommand(newToolsListCmd())
	cmd.AddCommand(newToolsInstallCmd())

	return cmd
}

// toolStatus is the list/install report for the managed scanner.
type toolStatus struct {
	Tool      string `json:"tool"`
	Pinned    string `json:"pinned"`
	Platform  string `json:"platform"`
	URL       string `json:"url"`
	Cached    bool   `json:"cached"`
	Version   string `json:"version,omitempty"`
	Satisfied bool   `json:"satisfied"`
	Error     string `json:"error,omitempty"`
}

func newToolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the resolved scanner identity and cache state",
		RunE:  runToolsList,
	}
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	_, cfg, logger, closer, err := setupProject()
	if err != nil {
		return err
	}
	defer closer.Close()

	identity, err := askalono.NewIdentity(platform.CurrentHost(), cfg.Scanner.PinnedVersion)
	if err != nil {
		return err
	}

	fetcher := newFetcher(identity, cfg, logger)

	_, cached := fetcher.CachedDownload()
	status := toolStatus{
		Tool:     identity.Name,
		Pinned:   identity.PinnedVersion,
		Platform: string(identity.PlatformSuffix),
		URL:      identity.DownloadURL(),
		Cached:   cached,
	}
	return printToolStatus(cmd, status)
}

func newToolsInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Bootstrap the pinned scanner and verify its version",
		RunE:  runToolsInstall,
	}

	cmd.Flags().BoolVar(&installForce, "force", false, "Re-download even if a cached copy exists")

	return cmd
}

func runToolsInstall(cmd *cobra.Command, _ []string) error {
	_, cfg, logger, closer, err := setupProject()
	if err != nil {
		return err
	}
	defer closer.Close()

	identity, err := askalono.NewIdentity(platform.CurrentHost(), cfg.Scanner.PinnedVersion)
	if err != nil {
		return err
	}

	fetcher := newFetcher(identity, cfg, logger)

	status := toolStatus{
		Tool:     identity.Name,
		Pinned:   identity.PinnedVersion,
		Platform: string(identity.PlatformSuffix),
		URL:      identity.DownloadURL(),
	}

	if installForce {
		art, err := fetcher.Bootstrap(cmd.Context(), askalono.BootstrapOptions{Force: true})
		if err != nil {
			status.Error = err.Error()
			_ = printToolStatus(cmd, status)
			return err
		}
		defer art.Release()

		version, err := askalono.Version(cmd.Context(), runner(), art)
		if err != nil {
			status.Error = err.Error()
			_ = printToolStatus(cmd, status)
			return err
		}
		status.Version = version
		status.Satisfied = version == identity.PinnedVersion
	} else {
		pipeline := scan.NewPipeline(identity, fetcher, runner(), logger)
		defer pipeline.Close()

		version, err := pipeline.EnsureTool(cmd.Context())
		if err != nil {
			status.Error = err.Error()
			_ = printToolStatus(cmd, status)
			return err
		}
		status.Version = version
		status.Satisfied = true
	}

	_, status.Cached = fetcher.CachedDownload()
	return printToolStatus(cmd, status)
}

func printToolStatus(cmd *cobra.Command, status toolStatus) error {
	if outputJSON {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	mode := tui.DetectMode(cmd.OutOrStdout(), false)
	table := tui.NewTable([]tui.Column{
		{Header: "TOOL", Width: 10},
		{Header: "PINNED", Width: 14},
		{Header: "VERSION", Width: 14},
		{Header: "STATUS", Width: 8},
		{Header: "URL", Width: 0},
	})

	state := "pending"
	switch {
	case status.Error != "":
		state = "failed"
	case status.Satisfied:
		state = "installed"
	case status.Cached:
		state = "cached"
	}
	version := status.Version
	if version == "" {
		version = "-"
	}
	table.AddRow(status.Tool, status.Pinned, version, state, status.URL)
	table.Write(cmd.OutOrStdout(), mode)

	if status.Error != "" {
		cmd.Printf("  error: %s\n", status.Error)
	}
	return nil
}
