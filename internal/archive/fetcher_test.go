package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bajicv/cgmlstget/internal/model"
)

// testVersionInfo returns a fully resolved VersionInfo for tests.
func testVersionInfo() model.VersionInfo {
	ts := time.Date(2024, time.January, 5, 10, 30, 0, 0, time.UTC)
	return model.VersionInfo{Version: "1.3", LastChange: &ts}
}

// buildZip assembles an in-memory zip archive from name -> content.
func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// TestBaseName tests destination name computation.
func TestBaseName(t *testing.T) {
	t.Parallel()

	t.Run("builds the deterministic name", func(t *testing.T) {
		t.Parallel()

		base, err := BaseName("Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if base != "Abaumannii_v1.3_LastChange_2024-01-05-10-30" {
			t.Errorf("got %q", base)
		}
	})

	t.Run("missing version fails with ErrMissingVersionInfo", func(t *testing.T) {
		t.Parallel()

		info := testVersionInfo()
		info.Version = ""
		if _, err := BaseName("Abaumannii", info); !errors.Is(err, ErrMissingVersionInfo) {
			t.Errorf("expected ErrMissingVersionInfo, got %v", err)
		}
	})

	t.Run("missing timestamp fails with ErrMissingVersionInfo", func(t *testing.T) {
		t.Parallel()

		info := testVersionInfo()
		info.LastChange = nil
		if _, err := BaseName("Abaumannii", info); !errors.Is(err, ErrMissingVersionInfo) {
			t.Errorf("expected ErrMissingVersionInfo, got %v", err)
		}
	})
}

// TestFetchAndExtract tests the download/extract flow.
func TestFetchAndExtract(t *testing.T) {
	t.Parallel()

	t.Run("downloads and extracts the archive", func(t *testing.T) {
		t.Parallel()

		payload := buildZip(t, map[string]string{
			"loci/locus_0001.fasta": ">allele_1\nACGT\n",
			"loci/locus_0002.fasta": ">allele_1\nTTAA\n",
		})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))

		result, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("fetch and extract failed: %v", err)
		}

		if result.AlreadyExists {
			t.Error("expected a fresh download")
		}
		if result.ExtractedFiles != 2 {
			t.Errorf("expected 2 extracted files, got %d", result.ExtractedFiles)
		}
		if _, err := os.Stat(result.ZipPath); err != nil {
			t.Errorf("zip missing: %v", err)
		}
		content, err := os.ReadFile(filepath.Join(result.Dir, "loci", "locus_0001.fasta"))
		if err != nil {
			t.Fatalf("extracted file missing: %v", err)
		}
		if string(content) != ">allele_1\nACGT\n" {
			t.Errorf("got content %q", content)
		}
		// No stray .part file.
		if _, err := os.Stat(result.ZipPath + partSuffix); !os.IsNotExist(err) {
			t.Errorf("expected no .part file, stat err: %v", err)
		}
	})

	t.Run("second call after success is a network no-op", func(t *testing.T) {
		t.Parallel()

		payload := buildZip(t, map[string]string{"locus.fasta": ">a\nAC\n"})
		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))

		if _, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo()); err != nil {
			t.Fatalf("first fetch failed: %v", err)
		}
		result, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("second fetch failed: %v", err)
		}

		if !result.AlreadyExists {
			t.Error("expected the second call to be skipped")
		}
		if got := requests.Load(); got != 1 {
			t.Errorf("expected exactly 1 request, got %d", got)
		}
	})

	t.Run("pre-existing zip blocks before any network I/O", func(t *testing.T) {
		t.Parallel()

		var requests atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			requests.Add(1)
		}))
		defer srv.Close()

		dir := t.TempDir()
		base, err := BaseName("Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, base+".zip"), []byte("old"), 0600); err != nil {
			t.Fatalf("failed to seed zip: %v", err)
		}

		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))
		result, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !result.AlreadyExists {
			t.Error("expected the call to be skipped")
		}
		if got := requests.Load(); got != 0 {
			t.Errorf("expected zero requests, got %d", got)
		}
	})

	t.Run("pre-existing directory blocks too", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		base, err := BaseName("Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := os.Mkdir(filepath.Join(dir, base), 0750); err != nil {
			t.Fatalf("failed to seed dir: %v", err)
		}

		fetcher := NewFetcher(WithOutputDir(dir))
		result, err := fetcher.FetchAndExtract(context.Background(), "http://unused.invalid/", "Abaumannii", testVersionInfo())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.AlreadyExists {
			t.Error("expected the call to be skipped")
		}
	})

	t.Run("missing version info fails before any I/O", func(t *testing.T) {
		t.Parallel()

		fetcher := NewFetcher(WithOutputDir(t.TempDir()))
		_, err := fetcher.FetchAndExtract(context.Background(), "http://unused.invalid/", "Abaumannii", model.VersionInfo{})
		if !errors.Is(err, ErrMissingVersionInfo) {
			t.Errorf("expected ErrMissingVersionInfo, got %v", err)
		}
	})

	t.Run("non-success status fails with ErrDownload and leaves nothing", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))
		_, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if !errors.Is(err, ErrDownload) {
			t.Fatalf("expected ErrDownload, got %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no artifacts, found %d entries", len(entries))
		}
	})

	t.Run("truncated download fails with ErrDownload and removes the part file", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// Promise more bytes than are sent; the client sees an
			// unexpected EOF mid-copy.
			w.Header().Set("Content-Length", "1024")
			_, _ = w.Write([]byte("short"))
		}))
		defer srv.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))
		_, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if !errors.Is(err, ErrDownload) {
			t.Fatalf("expected ErrDownload, got %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("failed to read dir: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no artifacts, found %d entries", len(entries))
		}
	})

	t.Run("zip-slip entries fail with ErrExtract", func(t *testing.T) {
		t.Parallel()

		payload := buildZip(t, map[string]string{"../evil.txt": "nope"})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(payload)
		}))
		defer srv.Close()

		dir := t.TempDir()
		fetcher := NewFetcher(WithHTTPClient(srv.Client()), WithOutputDir(dir))
		_, err := fetcher.FetchAndExtract(context.Background(), srv.URL, "Abaumannii", testVersionInfo())
		if !errors.Is(err, ErrExtract) {
			t.Fatalf("expected ErrExtract, got %v", err)
		}

		if _, err := os.Stat(filepath.Join(filepath.Dir(dir), "evil.txt")); !os.IsNotExist(err) {
			t.Errorf("zip-slip entry escaped the destination, stat err: %v", err)
		}
	})
}
