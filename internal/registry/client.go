package registry

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"github.com/bajicv/cgmlstget/internal/htmltable"
	"github.com/bajicv/cgmlstget/internal/model"
)

// SchemaLinkPrefix is the fixed href prefix the registry uses for
// per-scheme links on the index page. Deriving a scheme id starts by
// stripping it.
const SchemaLinkPrefix = "https://www.cgmlst.org/ncs/scheme/schema/"

// Index column headers after space-to-underscore renaming.
const (
	columnScheme      = "Scheme"
	columnTargetCount = "Target_Count"
	columnCTCount     = "CT_Count"
)

// trailingSchemaVersion matches the numeric scheme-version suffix the
// registry sometimes embeds at the end of a row's hyperlink
// (".../schema/Abaumannii1469/"). The digits belong to the published
// version, not the identifier, so they are stripped during derivation.
var trailingSchemaVersion = regexp.MustCompile(`[0-9]+/$`)

// Client fetches and parses pages from the cgMLST.org registry.
//
// Design decision: We take the *http.Client from the caller rather
// than constructing one because:
//  1. Timeout policy belongs to the CLI boundary, not the parser
//  2. Tests can point the client at an httptest server
type Client struct {
	// httpClient performs all registry requests.
	httpClient *http.Client

	// baseURL is the registry root, normally https://www.cgmlst.org.
	// It is overridable so tests and mirrors can be targeted.
	baseURL string

	// userAgent is the User-Agent header sent with every request.
	userAgent string

	// maxBodySize limits how much of a response body is read.
	maxBodySize int64

	// logger records fetch activity at debug level.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for registry requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) ClientOption {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithLogger sets the logger used for fetch activity.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a registry client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient:  http.DefaultClient,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		userAgent:   "cgmlstget",
		maxBodySize: 10 * 1024 * 1024,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IndexURL returns the registry index page URL.
func (c *Client) IndexURL() string {
	return c.baseURL + "/ncs/scheme/"
}

// DetailURL returns the detail page URL for a scheme id.
func (c *Client) DetailURL(id string) string {
	return c.baseURL + "/ncs/scheme/scheme/" + id + "/"
}

// ArchiveURL returns the allele archive URL for a scheme id.
func (c *Client) ArchiveURL(id string) string {
	return c.baseURL + "/ncs/schema/" + id + "/alleles/"
}

// ListSchemes fetches the registry index and returns one summary per
// data row, preserving page order. Each row is paired positionally
// with the anchors found in the table to derive its stable id.
func (c *Client) ListSchemes(ctx context.Context) ([]model.SchemeSummary, error) {
	table, err := c.fetchTable(ctx, c.IndexURL(), ErrRegistryFetch)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) < 1 {
		return nil, fmt.Errorf("%w: index table has no rows", ErrRegistryFetch)
	}

	columns := headerIndex(table.Rows[0])
	dataRows := table.Rows[1:]
	if len(table.Anchors) < len(dataRows) {
		return nil, fmt.Errorf("%w: index table has %d data rows but only %d links",
			ErrRegistryFetch, len(dataRows), len(table.Anchors))
	}

	summaries := make([]model.SchemeSummary, 0, len(dataRows))
	seen := make(map[string]bool, len(dataRows))
	for i, row := range dataRows {
		href := table.Anchors[i]
		id := DeriveSchemeID(href)
		if id == "" {
			return nil, fmt.Errorf("%w: empty scheme id derived from link %q", ErrRegistryFetch, href)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate scheme id %q in listing", ErrRegistryFetch, id)
		}
		seen[id] = true

		summaries = append(summaries, model.SchemeSummary{
			ID:          id,
			Name:        cellAt(row, columns, columnScheme),
			TargetCount: parseCount(cellAt(row, columns, columnTargetCount)),
			CTCount:     parseCount(cellAt(row, columns, columnCTCount)),
			SourceURL:   href,
		})
	}

	c.logger.Debug("fetched scheme listing", "url", c.IndexURL(), "schemes", len(summaries))
	return summaries, nil
}

// FetchDetail fetches a scheme's detail page and folds its two-column
// table into a key/value record. A blank first column continues the
// nearest preceding label (multi-line entries only carry the label on
// their first line); a repeated label accumulates values joined with
// model.ValueSeparator.
func (c *Client) FetchDetail(ctx context.Context, id string) (*model.SchemeDetail, error) {
	table, err := c.fetchTable(ctx, c.DetailURL(id), ErrDetailFetch)
	if err != nil {
		return nil, err
	}

	detail := model.NewSchemeDetail()
	currentKey := ""
	for _, row := range table.Rows {
		if len(row) == 0 {
			continue
		}
		key := row[0]
		value := ""
		if len(row) > 1 {
			value = row[1]
		}
		if key == "" {
			// Forward-fill: inherit the nearest preceding label. Rows
			// before the first labeled row have nothing to continue.
			if currentKey == "" {
				continue
			}
			key = currentKey
		} else {
			currentKey = key
		}
		detail.Append(key, value)
	}

	c.logger.Debug("fetched scheme detail", "id", id, "keys", detail.Len())
	return detail, nil
}

// fetchTable performs a GET and extracts the first table of the
// response. Transport failures and non-2xx statuses are wrapped with
// the caller's sentinel; htmltable.ErrNoTable propagates unwrapped.
func (c *Client) fetchTable(ctx context.Context, rawURL string, kind error) (*htmltable.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %s for %s", kind, resp.Status, rawURL)
	}

	body := io.LimitReader(resp.Body, c.maxBodySize)
	reader, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", kind, err)
	}

	return htmltable.Extract(reader)
}

// DeriveSchemeID derives the stable scheme identifier from a row's
// anchor href: the fixed schema-link prefix is stripped, then an
// optional trailing digit run immediately followed by a slash, then a
// trailing slash. The derivation is a fixed point: applying it to an
// already-derived id yields the same id.
func DeriveSchemeID(href string) string {
	id := strings.TrimPrefix(strings.TrimSpace(href), SchemaLinkPrefix)
	id = trailingSchemaVersion.ReplaceAllString(id, "")
	return strings.TrimSuffix(id, "/")
}

// headerIndex maps renamed header cells to their column positions.
// Spaces become underscores so "Target Count" is addressable as
// Target_Count regardless of how the registry renders the header.
func headerIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, cell := range header {
		columns[strings.ReplaceAll(cell, " ", "_")] = i
	}
	return columns
}

// cellAt returns the named column's cell from a row, or an empty
// string when the column is missing or the row is short.
func cellAt(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseCount parses a count cell. The registry renders some counts
// with digit grouping, so commas and spaces are removed first. An
// unparsable cell yields 0: the listing is a report, not a validator.
func parseCount(cell string) int {
	cleaned := strings.NewReplacer(",", "", " ", "").Replace(cell)
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	return n
}
