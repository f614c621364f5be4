package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const scrapeResultLimit = 3

// ScrapeProvider fetches a fact-check outlet's search page and extracts
// result links with goquery. It is the live counterpart to the static
// catalog: point it at any site whose results render as anchor tags
// under a known selector.
type ScrapeProvider struct {
	name        string
	searchURL   string // format string receiving the sanitized query
	selector    string // CSS selector for result anchors
	credibility int
	client      *http.Client
}

// NewScrapeProvider wires an HTTP client; a nil client gets a 10s timeout default.
func NewScrapeProvider(name, searchURL, selector string, credibility int, client *http.Client) *ScrapeProvider {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &ScrapeProvider{
		name:        name,
		searchURL:   searchURL,
		selector:    selector,
		credibility: credibility,
		client:      client,
	}
}

func (p *ScrapeProvider) Name() string { return p.name }

func (p *ScrapeProvider) Lookup(ctx context.Context, query string) ([]Source, error) {
	pageURL := fmt.Sprintf(p.searchURL, query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", pageURL, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", pageURL, err)
	}

	var out []Source
	doc.Find(p.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || href == "" {
			return true
		}
		title := strings.TrimSpace(sel.Text())
		if title == "" {
			return true
		}
		out = append(out, Source{
			Title:       title,
			URL:         href,
			Credibility: p.credibility,
		})
		return len(out) < scrapeResultLimit
	})

	return out, nil
}
