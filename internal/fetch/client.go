package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-lessonbook/internal/logger"
	"github.com/alnah/go-lessonbook/internal/yamlutil"
)

// Sentinel errors for downloads.
var (
	// ErrContentsDownload means contents.json could not be fetched; without
	// it the quarter cannot be assembled.
	ErrContentsDownload = errors.New("failed to download lesson contents")

	// ErrInvalidContents means contents.json is not a JSON object.
	ErrInvalidContents = errors.New("invalid lesson contents")

	// ErrNotFound is returned for HTTP 404 responses.
	ErrNotFound = errors.New("file not found")

	ErrHTTPStatus = errors.New("unexpected HTTP status")
)

// Defaults for NewClient.
const (
	DefaultTimeout = 30 * time.Second
	DefaultWorkers = 4
	maxFileSize    = 10 << 20
	userAgent      = "lessonbook"
)

// Range selects lessons by 1-based position in contents.json.
// Zero Start means 1; nil Stop means through the last lesson.
type Range struct {
	Start int
	Stop  *int
}

func (r Range) contains(pos int) bool {
	if pos < max(r.Start, 1) {
		return false
	}
	return r.Stop == nil || pos <= *r.Stop
}

// Client downloads lesson files over HTTP.
type Client struct {
	httpClient *http.Client
	workers    int
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client, e.g. for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithWorkers bounds concurrent week downloads.
func WithWorkers(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// NewClient creates a Client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		workers:    DefaultWorkers,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download fetches contents.json, the optional front and back matter, and
// every week in r. Only a missing contents.json is an error; other failed
// files become warnings on the bundle.
func (c *Client) Download(ctx context.Context, p Paths, r Range) (*Bundle, error) {
	raw, err := c.get(ctx, p.Contents)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrContentsDownload, p.Contents, err)
	}
	weeks, err := parseContents(raw)
	if err != nil {
		return nil, err
	}

	selected := weeks[:0]
	for i, w := range weeks {
		if r.contains(i + 1) {
			selected = append(selected, w)
		}
	}
	c.log.Debug("lesson contents", "url", p.Contents, "weeks", len(weeks), "selected", len(selected))

	bundle := &Bundle{}
	var warnings []string
	warn := func(msg string) {
		warnings = append(warnings, msg)
		c.log.Warn(msg)
	}

	if bundle.FrontMatter, err = c.optional(ctx, p.FrontMatter); err != nil {
		warn(fmt.Sprintf("front matter not downloaded: %v", err))
	}
	if bundle.BackMatter, err = c.optional(ctx, p.BackMatter); err != nil {
		warn(fmt.Sprintf("back matter not downloaded: %v", err))
	}

	contents := make([]string, len(selected))
	failures := make([]error, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, w := range selected {
		g.Go(func() error {
			body, err := c.get(gctx, p.Week(w.ID))
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failures[i] = err
				return nil
			}
			contents[i] = body
			c.log.Debug("downloaded week", "id", w.ID, "title", w.Title)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for i, w := range selected {
		if failures[i] != nil {
			warn(fmt.Sprintf("week %s not downloaded: %v", w.ID, failures[i]))
			continue
		}
		w.Content = contents[i]
		bundle.Weeks = append(bundle.Weeks, w)
	}
	bundle.Warnings = warnings
	return bundle, nil
}

// parseContents reads contents.json keeping its key order. Values are
// objects with optional "title" and "date" strings.
func parseContents(raw string) ([]Week, error) {
	entries, err := yamlutil.UnmarshalOrdered([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidContents, err)
	}

	weeks := make([]Week, 0, len(entries))
	for _, e := range entries {
		w := Week{ID: e.Key}
		if fields, ok := e.Value.(map[string]any); ok {
			w.Title = stringField(fields, "title")
			w.Date = stringField(fields, "date")
		}
		weeks = append(weeks, w)
	}
	return weeks, nil
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// optional fetches a file that may legitimately be absent.
func (c *Client) optional(ctx context.Context, url string) (string, error) {
	body, err := c.get(ctx, url)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return body, err
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("%w: %d from %s", ErrHTTPStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFileSize))
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	return string(body), nil
}
