package askalono

import (
	"context"
	"fmt"
	"strings"

	"licensecrawl/internal/execx"
)

// Version runs the bootstrapped executable with its version flag and returns
// the bare semantic version, stripped of the leading tool name. Whether the
// reported version satisfies the pin is the caller's decision.
func Version(ctx context.Context, runner execx.Runner, art *Artifact) (string, error) {
	trace, err := runner.Run(ctx, art.Path, []string{"--version"}, execx.RunOptions{})
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", ToolName, err)
	}

	line := firstLine(strings.TrimSpace(string(trace.Stdout)))
	return strings.TrimPrefix(line, ToolName+" "), nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
