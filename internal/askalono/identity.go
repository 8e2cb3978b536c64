package askalono

import (
	"fmt"

	"licensecrawl/internal/platform"
)

const (
	// ToolName is the executable's upstream name, also the prefix it prints
	// in front of its version string.
	ToolName = "askalono"

	// DefaultPinnedVersion is the release the pipeline is contracted to run.
	DefaultPinnedVersion = "0.2.0-beta.1"

	releaseURLTemplate = "https://github.com/amzn/askalono/releases/download/%s/%s"

	// windowsBuildURL points at the only Windows build ever published. Upstream
	// never shipped a versioned Windows asset at the pinned release, so this
	// URL is fixed regardless of the pin. Deliberate upstream inconsistency;
	// do not "fix" it here.
	windowsBuildURL = "https://github.com/develar/askalono/releases/download/v0.2.0/askalono.exe"
)

// ToolIdentity pins down exactly which askalono build the pipeline runs.
// Construct it once (NewIdentity) and pass it explicitly; components never
// consult process globals to find out which tool they serve.
type ToolIdentity struct {
	Name           string
	PinnedVersion  string
	PlatformSuffix platform.Tag
}

// NewIdentity builds the identity for the given host. pinnedVersion may be
// empty to accept the default pin.
func NewIdentity(host platform.Host, pinnedVersion string) (ToolIdentity, error) {
	tag, err := platform.Classify(host)
	if err != nil {
		return ToolIdentity{}, err
	}
	if pinnedVersion == "" {
		pinnedVersion = DefaultPinnedVersion
	}
	return ToolIdentity{
		Name:           ToolName,
		PinnedVersion:  pinnedVersion,
		PlatformSuffix: tag,
	}, nil
}

// ExecutableName returns the local file name for the artifact, e.g.
// "askalono.linux".
func (id ToolIdentity) ExecutableName() string {
	return fmt.Sprintf("%s.%s", id.Name, id.PlatformSuffix)
}

// DownloadURL resolves the release asset URL for this identity.
func (id ToolIdentity) DownloadURL() string {
	if id.PlatformSuffix == platform.TagExe {
		return windowsBuildURL
	}
	return fmt.Sprintf(releaseURLTemplate, id.PinnedVersion, id.ExecutableName())
}
