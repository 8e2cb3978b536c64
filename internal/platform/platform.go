package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupportedPlatform is returned when the host OS has no published
// askalono build. There is no recovery path short of moving to a supported
// platform, so callers should treat it as a configuration error.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Tag identifies one of the three release flavors askalono ships.
type Tag string

const (
	TagLinux Tag = "linux"
	TagMac   Tag = "mac"
	// TagExe is the Windows flavor; the release asset is named by extension
	// rather than by OS.
	TagExe Tag = "exe"
)

// Host carries the facts Classify needs about the machine we run on. It is a
// plain value so tests can classify arbitrary hosts without touching process
// globals.
type Host struct {
	OS string
}

// CurrentHost describes the running process's host.
func CurrentHost() Host {
	return Host{OS: runtime.GOOS}
}

// Classify maps a host to its release tag.
func Classify(h Host) (Tag, error) {
	switch h.OS {
	case "linux":
		return TagLinux, nil
	case "darwin":
		return TagMac, nil
	case "windows":
		return TagExe, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedPlatform, h.OS)
	}
}
