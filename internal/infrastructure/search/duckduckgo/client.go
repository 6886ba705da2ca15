// Package duckduckgo searches the web through DuckDuckGo's HTML endpoint,
// which needs no API key.
package duckduckgo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"travel-agent/internal/application/port/output"
	"travel-agent/internal/domain/entity"
	"travel-agent/internal/domain/errorsx"
	"travel-agent/internal/infrastructure/httpclient"

	"github.com/mutablelogic/go-client"
	"golang.org/x/net/html"
)

var _ output.SearchPort = (*Client)(nil)

const (
	DefaultBaseURL   = "https://html.duckduckgo.com/html/"
	DefaultResults   = 8
	DefaultTimeout   = 20 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	providerName = "DuckDuckGo"
	maxPageSize  = 2 << 20
)

type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    output.LoggerPort
}

func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		UserAgent: DefaultUserAgent,
		Timeout:   DefaultTimeout,
	}
}

type Client struct {
	rest   *client.Client
	query  url.Values
	logger output.LoggerPort
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	endpoint, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo client: %w", err)
	}

	rest, err := client.New(
		client.OptEndpoint(cfg.BaseURL),
		client.OptTimeout(cfg.Timeout),
		client.OptUserAgent(cfg.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo client: %w", err)
	}

	return &Client{
		rest:   rest,
		query:  endpoint.Query(),
		logger: cfg.Logger,
	}, nil
}

// resultsPage decodes an HTML results page into at most limit results.
type resultsPage struct {
	limit   int
	results []entity.SearchResult
}

func (p *resultsPage) Unmarshal(_ http.Header, r io.Reader) error {
	results, err := ParseResults(io.LimitReader(r, maxPageSize), p.limit)
	if err != nil {
		return errorsx.Wrap(err, errorsx.ReasonSearchParse)
	}
	p.results = results
	return nil
}

// Search returns at most limit organic results for query, in page order.
// A non-positive limit means DefaultResults.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]entity.SearchResult, error) {
	if limit <= 0 {
		limit = DefaultResults
	}

	params := url.Values{}
	for k, v := range c.query {
		params[k] = append([]string(nil), v...)
	}
	params.Set("q", query)

	if c.logger != nil {
		c.logger.Debug("Search request", "query", query, "limit", limit)
	}

	page := &resultsPage{limit: limit}
	err := httpclient.Do(ctx, c.rest, providerName, page,
		client.OptQuery(params),
		client.OptReqHeader("Accept", "text/html"),
	)
	if err != nil {
		var httpErr *errorsx.HTTPError
		switch {
		case errors.As(err, &httpErr):
			return nil, errorsx.Wrap(fmt.Errorf("duckduckgo returned %s", httpErr.Status), errorsx.ReasonSearchHTTP)
		case errorsx.HasReason(err, errorsx.ReasonSearchParse):
			return nil, err
		default:
			return nil, errorsx.Wrap(fmt.Errorf("search request failed: %w", err), errorsx.ReasonSearchTransport)
		}
	}

	if c.logger != nil {
		c.logger.Debug("Search completed", "results", len(page.results))
	}
	return page.results, nil
}

// ParseResults extracts up to limit results from a DuckDuckGo HTML results page.
// Sponsored blocks (class result--ad) are skipped.
func ParseResults(r io.Reader, limit int) ([]entity.SearchResult, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	p := &resultParser{limit: limit}
	p.walk(doc)
	p.flush()

	return p.results, nil
}

type resultParser struct {
	limit   int
	results []entity.SearchResult
	current *entity.SearchResult
}

func (p *resultParser) full() bool {
	return len(p.results) >= p.limit
}

func (p *resultParser) flush() {
	if p.current != nil && p.current.Title != "" && !p.full() {
		p.results = append(p.results, *p.current)
	}
	p.current = nil
}

func (p *resultParser) walk(n *html.Node) {
	if p.full() {
		return
	}

	if n.Type == html.ElementNode {
		classes := classList(n)
		switch {
		case isOneOf("result--ad", classes...):
			return
		case isOneOf("result__a", classes...):
			p.flush()
			p.current = &entity.SearchResult{
				Title: textContent(n),
				Link:  decodeLink(attr(n, "href")),
			}
			return
		case isOneOf("result__snippet", classes...):
			if p.current != nil {
				p.current.Snippet = textContent(n)
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

// decodeLink unwraps DuckDuckGo redirect links (//duckduckgo.com/l/?uddg=...).
func decodeLink(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	if strings.HasSuffix(u.Host, "duckduckgo.com") && strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return target
		}
	}
	return href
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func classList(n *html.Node) []string {
	return strings.Fields(attr(n, "class"))
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
