package yahoo

import (
	"context"
	"fmt"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
)

// RSSNews returns company headlines from the Yahoo Finance RSS feed, as an
// alternate news source to the scraped one. Items without a timestamp or
// link are skipped.
func (c *Client) RSSNews(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	url := fmt.Sprintf("%s?s=%s&region=US&lang=en-US", c.FeedURL, ticker)

	var items []models.NewsItem
	err := c.gate.Do(ctx, func() error {
		feed, err := c.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			return fmt.Errorf("parse RSS %s: %w", ticker, err)
		}

		items = make([]models.NewsItem, 0, len(feed.Items))
		for _, item := range feed.Items {
			if item.Link == "" || item.PublishedParsed == nil {
				continue
			}
			n := models.NewsItem{
				Date:      *item.PublishedParsed,
				Title:     item.Title,
				Link:      item.Link,
				Publisher: "Yahoo Finance",
			}
			if item.Image != nil {
				n.ThumbnailSrc = item.Image.URL
			}
			items = append(items, n)
		}
		return nil
	})
	if err != nil {
		return nil, &provider.ErrUpstream{Source: sourceName, Err: err}
	}
	return items, nil
}
