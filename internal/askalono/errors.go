package askalono

import "fmt"

// DownloadError reports a failed artifact download. Fatal for the current
// bootstrap attempt; callers may retry the whole bootstrap later.
type DownloadError struct {
	URL    string
	Status string
	Err    error
}

func (e *DownloadError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("download %s: %v", e.URL, e.Err)
	case e.Status != "":
		return fmt.Sprintf("download %s: unexpected status %s", e.URL, e.Status)
	default:
		return fmt.Sprintf("download %s: empty response body", e.URL)
	}
}

func (e *DownloadError) Unwrap() error { return e.Err }
