// Package finviz scrapes the Finviz quote page. One HTTP fetch and one HTML
// parse serve a logical request; the extraction routines all walk the same
// parsed document.
//
// Finviz blocks non-browser user agents, so every request goes out with a
// browser-identifying User-Agent header. Extraction failures are reported as
// structural errors, distinct from fetch failures: markup drift needs a code
// change, a transient network error does not.
package finviz

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tigerding/stockapi/internal/infra"
	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/utils"
)

const sourceName = "finviz"

// DefaultBaseURL is the production scrape target origin.
const DefaultBaseURL = "https://finviz.com"

// Client scrapes quote pages from Finviz.
type Client struct {
	// BaseURL is the scrape target origin, without a trailing slash.
	// Overridable for tests.
	BaseURL string

	now func() time.Time
}

// New creates a Finviz client against the production site.
func New() *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		now:     utils.NowEastern,
	}
}

// fetchPage downloads and parses the quote page for the ticker.
func (c *Client) fetchPage(ctx context.Context, ticker string) (*goquery.Document, error) {
	pageURL := fmt.Sprintf("%s/quote.ashx?t=%s", c.BaseURL, url.QueryEscape(ticker))
	body, _, err := infra.DoGet(ctx, pageURL, map[string]string{
		"Accept": "text/html",
	})
	if err != nil {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("quote page %s: %w", ticker, err),
		}
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("parse quote page %s: %w", ticker, err),
		}
	}
	return doc, nil
}
