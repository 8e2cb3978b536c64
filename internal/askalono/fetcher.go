package askalono

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"

	"licensecrawl/internal/platform"
)

// cacheDirEnv overrides the per-user download cache location.
const cacheDirEnv = "LICENSECRAWL_CACHE_DIR"

// Artifact is a bootstrapped executable in its own scratch directory. The
// caller owns the handle and must call Release when done, on success and
// failure paths alike. Once Bootstrap returns, the directory is read-only from
// this package's point of view and safe for concurrent readers.
type Artifact struct {
	Dir  string
	Path string
}

// Release removes the scratch directory. Safe to call more than once.
func (a *Artifact) Release() error {
	if a == nil || a.Dir == "" {
		return nil
	}
	err := os.RemoveAll(a.Dir)
	a.Dir = ""
	a.Path = ""
	return err
}

// BootstrapOptions configures a single bootstrap attempt.
type BootstrapOptions struct {
	// Force bypasses the download cache and fetches the asset again.
	Force bool
}

// Fetcher acquires the pinned askalono build for one tool identity.
type Fetcher struct {
	identity    ToolIdentity
	client      *http.Client
	cacheDir    string
	downloadURL string
	log         zerolog.Logger
}

// FetcherOption adjusts Fetcher construction.
type FetcherOption func(*Fetcher)

// WithHTTPClient swaps the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) FetcherOption {
	return func(f *Fetcher) { f.client = client }
}

// WithCacheDir overrides the download cache directory.
func WithCacheDir(dir string) FetcherOption {
	return func(f *Fetcher) { f.cacheDir = dir }
}

// WithDownloadURL overrides the resolved release URL, e.g. for mirrors.
func WithDownloadURL(url string) FetcherOption {
	return func(f *Fetcher) { f.downloadURL = url }
}

// NewFetcher builds a Fetcher for the given identity.
func NewFetcher(id ToolIdentity, log zerolog.Logger, opts ...FetcherOption) *Fetcher {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0 // retries are caller policy, not ours
	retryClient.Logger = nil

	f := &Fetcher{
		identity: id,
		client:   retryClient.StandardClient(),
		log:      log,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.cacheDir == "" {
		f.cacheDir = defaultCacheDir()
	}
	return f
}

// defaultCacheDir determines the per-user cache directory for downloads.
func defaultCacheDir() string {
	if override, ok := os.LookupEnv(cacheDirEnv); ok && override != "" {
		if abs, err := filepath.Abs(override); err == nil {
			return abs
		}
	}
	base, err := os.UserCacheDir()
	if err != nil {
		base = os.TempDir()
	}
	return filepath.Join(base, "licensecrawl")
}

// Bootstrap produces a ready-to-execute artifact in a fresh scratch directory.
// It issues a single cached GET for the resolved URL; a cache hit is logged
// but behaves byte-for-byte like a fresh fetch. Bootstrap is not safe for
// concurrent first-time invocation; serialize it and fan scans out afterwards.
func (f *Fetcher) Bootstrap(ctx context.Context, opts BootstrapOptions) (*Artifact, error) {
	cached, err := f.ensureCached(ctx, opts.Force)
	if err != nil {
		return nil, err
	}

	scratch, err := os.MkdirTemp("", "licensecrawl-")
	if err != nil {
		return nil, fmt.Errorf("create scratch dir: %w", err)
	}

	dest := filepath.Join(scratch, f.identity.ExecutableName())
	if err := copyFile(cached, dest); err != nil {
		_ = os.RemoveAll(scratch)
		return nil, fmt.Errorf("place executable: %w", err)
	}

	// Windows artifacts are executable by extension convention.
	if f.identity.PlatformSuffix != platform.TagExe {
		if err := os.Chmod(dest, 0o755); err != nil {
			_ = os.RemoveAll(scratch)
			return nil, fmt.Errorf("mark executable: %w", err)
		}
	}

	return &Artifact{Dir: scratch, Path: dest}, nil
}

// CachedDownload reports whether the pinned asset is already present in the
// download cache, and where.
func (f *Fetcher) CachedDownload() (string, bool) {
	cachedPath := f.cachedPath()
	info, err := os.Stat(cachedPath)
	return cachedPath, err == nil && info.Size() > 0
}

func (f *Fetcher) cachedPath() string {
	cachedName := fmt.Sprintf("%s-%s", f.identity.PinnedVersion, f.identity.ExecutableName())
	return filepath.Join(f.cacheDir, cachedName)
}

// ensureCached returns the path of the cached download, fetching it if needed.
func (f *Fetcher) ensureCached(ctx context.Context, force bool) (string, error) {
	cachedPath := f.cachedPath()

	if !force {
		if _, ok := f.CachedDownload(); ok {
			f.log.Debug().Str("path", cachedPath).Msg("download cache hit")
			return cachedPath, nil
		}
	}

	if err := f.download(ctx, cachedPath); err != nil {
		return "", err
	}
	return cachedPath, nil
}

func (f *Fetcher) download(ctx context.Context, dest string) error {
	downloadURL := f.downloadURL
	if downloadURL == "" {
		downloadURL = f.identity.DownloadURL()
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare cache dir: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "licensecrawl/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return &DownloadError{URL: downloadURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &DownloadError{URL: downloadURL, Status: resp.Status}
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	written, err := io.Copy(tmpFile, resp.Body)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if written == 0 {
		return &DownloadError{URL: downloadURL}
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}

	f.log.Info().Str("url", downloadURL).Str("path", dest).Msg("downloaded scanner")
	return nil
}

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return err
	}
	defer source.Close()

	dest, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		return err
	}
	return dest.Close()
}
