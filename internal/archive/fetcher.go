package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/bajicv/cgmlstget/internal/model"
)

// partSuffix is appended to the zip name while a download is in
// flight. The idempotency check only matches the final name, so a
// crashed download can never wedge a later run.
const partSuffix = ".part"

// Fetcher downloads allele archives and extracts them.
type Fetcher struct {
	// httpClient performs the archive download.
	httpClient *http.Client

	// userAgent is the User-Agent header sent with the request.
	userAgent string

	// outputDir is where the zip and the extracted directory land.
	outputDir string

	// logger records download/extract activity.
	logger *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithHTTPClient sets the HTTP client used for the download.
func WithHTTPClient(hc *http.Client) FetcherOption {
	return func(f *Fetcher) {
		f.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithOutputDir sets the directory that receives the archive and the
// extracted files. Defaults to the current working directory.
func WithOutputDir(dir string) FetcherOption {
	return func(f *Fetcher) {
		f.outputDir = dir
	}
}

// WithLogger sets the logger used for download/extract activity.
func WithLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher with default settings.
func NewFetcher(opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		httpClient: http.DefaultClient,
		userAgent:  "cgmlstget",
		outputDir:  ".",
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Result describes the outcome of FetchAndExtract.
type Result struct {
	// BaseName is the deterministic destination name,
	// "<id>_v<version>_LastChange_<YYYY-MM-DD-HH-MM>".
	BaseName string

	// ZipPath is the path of the downloaded archive.
	ZipPath string

	// Dir is the directory the archive was extracted into.
	Dir string

	// AlreadyExists is true when a previous run's zip or directory was
	// found and the operation was skipped without any network I/O.
	AlreadyExists bool

	// ExtractedFiles is the number of files written during extraction.
	ExtractedFiles int
}

// BaseName computes the deterministic destination name for a scheme's
// archive. It fails with ErrMissingVersionInfo when the version or the
// parsed last-change timestamp is absent.
func BaseName(id string, info model.VersionInfo) (string, error) {
	if !info.HasVersion() || !info.HasLastChange() {
		return "", fmt.Errorf("%w: cannot build archive name for %q", ErrMissingVersionInfo, id)
	}
	return fmt.Sprintf("%s_v%s_LastChange_%s", id, info.Version, info.LastChangeStamp()), nil
}

// FetchAndExtract downloads the allele archive at archiveURL for the
// given scheme and extracts it into a sibling directory.
//
// The existence check runs before any network I/O: if the target zip
// or directory already exists the call is a no-op reported through
// Result.AlreadyExists. A failed download removes the partial file and
// creates no directory.
func (f *Fetcher) FetchAndExtract(ctx context.Context, archiveURL, id string, info model.VersionInfo) (*Result, error) {
	base, err := BaseName(id, info)
	if err != nil {
		return nil, err
	}

	result := &Result{
		BaseName: base,
		ZipPath:  filepath.Join(f.outputDir, base+".zip"),
		Dir:      filepath.Join(f.outputDir, base),
	}

	// Never overwrite or re-download: a previous run's artifacts block
	// the whole operation.
	if pathExists(result.ZipPath) || pathExists(result.Dir) {
		f.logger.Debug("archive already present, skipping", "base", base)
		result.AlreadyExists = true
		return result, nil
	}

	if err := f.download(ctx, archiveURL, result.ZipPath); err != nil {
		return nil, err
	}

	count, err := extractZip(result.ZipPath, result.Dir)
	if err != nil {
		// The zip stays for inspection; the half-extracted directory
		// is removed so it cannot shadow a later retry by itself.
		_ = os.RemoveAll(result.Dir) //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	result.ExtractedFiles = count

	f.logger.Debug("archive extracted", "zip", result.ZipPath, "dir", result.Dir, "files", count)
	return result, nil
}

// download streams the archive to zipPath via a ".part" file that is
// renamed only after the body was copied completely. When the server
// sent a Content-Length, the byte count must match it.
func (f *Fetcher) download(ctx context.Context, archiveURL, zipPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, archiveURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: unexpected status %s for %s", ErrDownload, resp.Status, archiveURL)
	}

	partPath := zipPath + partSuffix
	out, err := os.Create(partPath) //nolint:gosec // Destination derived from validated scheme id
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		_ = out.Close()          //nolint:errcheck // Best effort cleanup
		_ = os.Remove(partPath)  //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(partPath) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	if resp.ContentLength > 0 && written != resp.ContentLength {
		_ = os.Remove(partPath) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: truncated response: got %d of %d bytes",
			ErrDownload, written, resp.ContentLength)
	}

	if err := os.Rename(partPath, zipPath); err != nil {
		_ = os.Remove(partPath) //nolint:errcheck // Best effort cleanup
		return fmt.Errorf("%w: %v", ErrDownload, err)
	}

	f.logger.Debug("archive downloaded", "url", archiveURL, "bytes", written)
	return nil
}

// extractZip unpacks the archive into destDir and returns the number
// of files written.
func extractZip(zipPath, destDir string) (int, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return 0, err
	}

	count := 0
	for _, file := range r.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return count, err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0750); err != nil {
				return count, err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0750); err != nil {
			return count, err
		}
		if err := writeZipEntry(file, target); err != nil {
			return count, err
		}
		count++
	}

	return count, nil
}

// writeZipEntry copies a single archive entry to target.
func writeZipEntry(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0640) //nolint:gosec // Path checked by safeJoin
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil { //nolint:gosec // Allele archives are trusted registry content
		_ = out.Close() //nolint:errcheck // Best effort cleanup
		return err
	}
	return out.Close()
}

// safeJoin joins an archive entry name onto destDir and rejects names
// that would escape it (zip slip).
func safeJoin(destDir, name string) (string, error) {
	target := filepath.Join(destDir, filepath.Clean(name))
	if target != filepath.Clean(destDir) &&
		!strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("unsafe path %q in archive", name)
	}
	return target, nil
}

// pathExists reports whether a file or directory exists at path.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
