package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultBaseURL is the cgMLST.org registry root. Overridable via
	// flag or config file so tests and mirrors can be targeted.
	DefaultBaseURL = "https://www.cgmlst.org"

	// DefaultTimeout is generous for a public registry that serves
	// multi-megabyte allele archives; individual HTML pages respond in
	// well under a second.
	DefaultTimeout = 60 * time.Second

	// DefaultUserAgent identifies cgmlstget in HTTP requests. Using a
	// descriptive User-Agent lets registry operators identify client
	// traffic in their logs.
	DefaultUserAgent = "cgmlstget/1.0 (+https://github.com/bajicv/cgmlstget)"

	// DefaultMaxBodySize limits the HTML page size read from the
	// registry. 10MB is far beyond any real index or detail page while
	// preventing memory exhaustion from unexpected responses. Archive
	// downloads stream to disk and are not subject to this limit.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "cgmlstget"
)

// Config holds all options for a cgmlstget run.
//
// Design decision: We use a single flat struct instead of nested
// structs for simplicity. The number of options is manageable, and
// nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the registry root, normally https://www.cgmlst.org.
	BaseURL string

	// Timeout is the HTTP client timeout applied to every request.
	Timeout time.Duration

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string

	// MaxBodySize is the maximum HTML response body size in bytes to
	// read. Set to 0 to use the default.
	MaxBodySize int64

	// OutputDir is the directory that receives downloaded archives and
	// their extracted contents. Defaults to the current working
	// directory.
	OutputDir string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONOutput selects JSON output for listings and reports.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput selects Markdown output for listings and reports.
	// Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile, when set, receives the report instead of stdout.
	OutputFile string

	// ConfigFilePath is the path to the configuration file. If empty,
	// the tool searches the current directory, the XDG config
	// directory, and the home directory for DefaultConfigFile.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:     DefaultBaseURL,
		Timeout:     DefaultTimeout,
		UserAgent:   DefaultUserAgent,
		MaxBodySize: DefaultMaxBodySize,
		OutputDir:   ".",
	}
}

// Validate checks if the configuration is valid. It returns the first
// problem found as a sentinel error; fixing one error often makes
// others irrelevant.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrInvalidBaseURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingOutputFormats
	}

	return nil
}

// XDGConfigDir returns the XDG config directory for cgmlstget.
// On Linux: ~/.config/cgmlstget
// On macOS: ~/Library/Application Support/cgmlstget
// On Windows: %APPDATA%\cgmlstget
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}
