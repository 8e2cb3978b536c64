package tui

import (
	"io"
	"os"
	"runtime"
	"strings"
)

// OutputMode describes how scan progress and results should be rendered.
type OutputMode int

const (
	// ModeStyled writes a lipgloss-styled table to a terminal.
	ModeStyled OutputMode = iota
	// ModePlain writes an unstyled table.
	ModePlain
	// ModeJSON writes structured JSON output.
	ModeJSON
)

// DetectMode determines the appropriate output mode for the given writer.
func DetectMode(out io.Writer, jsonOutput bool) OutputMode {
	if jsonOutput {
		return ModeJSON
	}
	file, ok := out.(*os.File)
	if !ok {
		return ModePlain
	}
	info, err := file.Stat()
	if err != nil {
		return ModePlain
	}
	if info.Mode()&os.ModeCharDevice == 0 {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeStyled
}
