package scan

import "fmt"

// ScanError reports a crawl that exited unsuccessfully. Fatal for the current
// target path only; sibling scans proceed. No automatic retry.
type ScanError struct {
	Target string
	Output string
}

func (e *ScanError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("scan of %s failed", e.Target)
	}
	return fmt.Sprintf("scan of %s failed: %s", e.Target, e.Output)
}
