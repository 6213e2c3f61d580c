// Package duckduckgo provides web search via the DuckDuckGo HTML endpoint.
package duckduckgo

import (
	"context"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://html.duckduckgo.com/html/"

// Client performs DuckDuckGo search operations.
type Client interface {
	// Search returns up to max results for the query, in page order.
	Search(ctx context.Context, query string, max int) ([]Result, error)

	// Available reports whether this searcher can serve queries.
	Available() bool
}

// Result is one search result snippet.
type Result struct {
	Title string
	Body  string
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default endpoint URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLimiter replaces the rate limiter. Tests pass rate.NewLimiter(rate.Inf, 1).
func WithLimiter(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a DuckDuckGo search client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Every(1100*time.Millisecond), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Available implements Client.
func (c *httpClient) Available() bool { return true }

// The HTML endpoint marks each result with result__a (title anchor) and
// result__snippet (body anchor). Attribute order varies, class position does not.
var (
	titleRe   = regexp.MustCompile(`(?s)<a[^>]*class="result__a"[^>]*>(.*?)</a>`)
	snippetRe = regexp.MustCompile(`(?s)<a[^>]*class="result__snippet"[^>]*>(.*?)</a>`)
	tagRe     = regexp.MustCompile(`<[^>]+>`)
	spaceRe   = regexp.MustCompile(`\s+`)
)

// Search implements Client.
func (c *httpClient) Search(ctx context.Context, query string, max int) ([]Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "duckduckgo: rate limit")
	}

	params := url.Values{"q": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: build request")
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; camimport/1.0)")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "duckduckgo: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	return parseResults(string(body), max), nil
}

// parseResults pairs title and snippet anchors by position.
func parseResults(page string, max int) []Result {
	titles := titleRe.FindAllStringSubmatch(page, -1)
	snippets := snippetRe.FindAllStringSubmatch(page, -1)

	var results []Result
	for i, sn := range snippets {
		if max > 0 && len(results) >= max {
			break
		}
		r := Result{Body: cleanHTML(sn[1])}
		if i < len(titles) {
			r.Title = cleanHTML(titles[i][1])
		}
		if r.Title == "" && r.Body == "" {
			continue
		}
		results = append(results, r)
	}
	return results
}

// cleanHTML strips tags, unescapes entities, and collapses whitespace.
func cleanHTML(s string) string {
	s = tagRe.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}
