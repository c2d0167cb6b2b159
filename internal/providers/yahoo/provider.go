// Package yahoo implements the structured-source adapter over the Yahoo
// Finance public JSON APIs (v8 chart, v10 quoteSummary). It covers price
// history, financial statements, SEC filings, the earnings calendar, company
// news, and the fundamentals half of the stock metadata.
//
// The upstream client is plain blocking HTTP; every operation is dispatched
// through the shared call gate so a slow upstream never stalls the serving
// layer.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tigerding/stockapi/internal/infra"
	"github.com/tigerding/stockapi/internal/provider"
)

const (
	sourceName = "yahoo"

	// DefaultBaseURL is the Yahoo Finance query API origin.
	DefaultBaseURL = "https://query1.finance.yahoo.com"

	// DefaultFeedURL is the company-news RSS endpoint.
	DefaultFeedURL = "https://feeds.finance.yahoo.com/rss/2.0/headline"
)

// Client is the structured-source adapter. Zero-value fields fall back to
// production defaults; tests point BaseURL at a local server.
type Client struct {
	BaseURL string
	FeedURL string

	gate   *infra.Gate
	parser *gofeed.Parser
	now    func() time.Time
}

// New creates a yahoo client whose upstream calls are bounded by gate.
func New(gate *infra.Gate) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		FeedURL: DefaultFeedURL,
		gate:    gate,
		parser:  gofeed.NewParser(),
		now:     time.Now,
	}
}

// --- Shared helpers ---

func jsonHeaders() map[string]string {
	return map[string]string{"Accept": "application/json"}
}

// fetchJSON performs a gated GET request and decodes the response into dest.
// Any failure comes back classified as an upstream error.
func (c *Client) fetchJSON(ctx context.Context, url string, dest any) error {
	err := c.gate.Do(ctx, func() error {
		body, _, err := infra.DoGet(ctx, url, jsonHeaders())
		if err != nil {
			return err
		}
		defer body.Close()

		data, err := io.ReadAll(body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if err := json.Unmarshal(data, dest); err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}
		return nil
	})
	if err != nil {
		return &provider.ErrUpstream{Source: sourceName, Err: err}
	}
	return nil
}

// quoteSummary fetches the requested quoteSummary modules for a ticker and
// returns the first result.
func (c *Client) quoteSummary(ctx context.Context, ticker, modules string) (*yfQuoteSummaryResult, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=%s", c.BaseURL, ticker, modules)

	var resp yfQuoteSummaryResponse
	if err := c.fetchJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.QuoteSummary.Error != nil {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("quoteSummary %s: %s", ticker, resp.QuoteSummary.Error.Description),
		}
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("no quoteSummary data for %s", ticker),
		}
	}
	return &resp.QuoteSummary.Result[0], nil
}
