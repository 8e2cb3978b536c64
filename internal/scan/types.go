package scan

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Provenance is caller-supplied metadata describing where the scanned source
// tree came from. Opaque to the pipeline; it is attached to results untouched.
type Provenance map[string]string

// ScannerDetails identifies the scanner that produced a result.
type ScannerDetails struct {
	Name          string `json:"name"`
	Version       string `json:"version"`
	Configuration string `json:"configuration,omitempty"`
}

// Summary is the machine-readable digest of one scan.
type Summary struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	FileCount int       `json:"file_count"`
	Licenses  []string  `json:"licenses"`
	Errors    []string  `json:"errors"`
}

// ScanResult is the timed, attributed result for a single target path.
// RawDocument is the ordered per-file report; encode it with EncodeRawDocument
// rather than JSON.
type ScanResult struct {
	Target      string         `json:"target"`
	Provenance  Provenance     `json:"provenance,omitempty"`
	Scanner     ScannerDetails `json:"scanner"`
	Summary     Summary        `json:"summary"`
	RawDocument *yaml.Node     `json:"-"`
}

// EncodeRawDocument writes the raw per-file document as yaml.
func (r *ScanResult) EncodeRawDocument(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r.RawDocument); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
