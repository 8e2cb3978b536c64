package askalono

import (
	"errors"
	"strings"
	"testing"

	"licensecrawl/internal/platform"
)

func TestNewIdentityDefaultsPin(t *testing.T) {
	id, err := NewIdentity(platform.Host{OS: "linux"}, "")
	if err != nil {
		t.Fatalf("NewIdentity returned error: %v", err)
	}
	if id.PinnedVersion != DefaultPinnedVersion {
		t.Fatalf("PinnedVersion = %q, want %q", id.PinnedVersion, DefaultPinnedVersion)
	}
	if id.Name != ToolName {
		t.Fatalf("Name = %q, want %q", id.Name, ToolName)
	}
}

func TestNewIdentityUnsupportedHost(t *testing.T) {
	_, err := NewIdentity(platform.Host{OS: "plan9"}, "")
	if !errors.Is(err, platform.ErrUnsupportedPlatform) {
		t.Fatalf("err = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestExecutableName(t *testing.T) {
	cases := map[string]string{
		"linux":   "askalono.linux",
		"darwin":  "askalono.mac",
		"windows": "askalono.exe",
	}
	for os, want := range cases {
		id, err := NewIdentity(platform.Host{OS: os}, "")
		if err != nil {
			t.Fatalf("NewIdentity(%q) returned error: %v", os, err)
		}
		if got := id.ExecutableName(); got != want {
			t.Fatalf("ExecutableName for %q = %q, want %q", os, got, want)
		}
	}
}

func TestDownloadURLContainsPin(t *testing.T) {
	for _, os := range []string{"linux", "darwin"} {
		id, err := NewIdentity(platform.Host{OS: os}, "1.2.3")
		if err != nil {
			t.Fatalf("NewIdentity(%q) returned error: %v", os, err)
		}
		url := id.DownloadURL()
		if !strings.Contains(url, "1.2.3") {
			t.Fatalf("DownloadURL for %q = %q, missing pinned version", os, url)
		}
		if !strings.HasSuffix(url, id.ExecutableName()) {
			t.Fatalf("DownloadURL for %q = %q, missing executable name", os, url)
		}
	}
}

func TestDownloadURLWindowsIgnoresPin(t *testing.T) {
	pinned, err := NewIdentity(platform.Host{OS: "windows"}, "9.9.9")
	if err != nil {
		t.Fatalf("NewIdentity returned error: %v", err)
	}
	defaulted, err := NewIdentity(platform.Host{OS: "windows"}, "")
	if err != nil {
		t.Fatalf("NewIdentity returned error: %v", err)
	}

	if pinned.DownloadURL() != defaulted.DownloadURL() {
		t.Fatal("windows download URL should not depend on the pinned version")
	}
	if strings.Contains(pinned.DownloadURL(), "9.9.9") {
		t.Fatalf("windows URL %q unexpectedly contains the pin", pinned.DownloadURL())
	}
}
