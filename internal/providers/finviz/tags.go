package finviz

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
)

// Tags extracts the classification links from the quote page header. An
// absent container or an empty link set is a structural failure: either the
// page layout changed or the ticker does not resolve to a quote page.
func (c *Client) Tags(ctx context.Context, ticker string) ([]models.Tag, error) {
	doc, err := c.fetchPage(ctx, ticker)
	if err != nil {
		return nil, err
	}

	container := doc.Find(".quote-links div").First()
	if container.Length() == 0 {
		return nil, &provider.ErrStructure{
			Source: sourceName,
			Detail: "tags container not found",
		}
	}

	links := container.Find("a")
	if links.Length() == 0 {
		return nil, &provider.ErrStructure{
			Source: sourceName,
			Detail: "tag links not found",
		}
	}

	tags := make([]models.Tag, 0, links.Length())
	links.Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		tags = append(tags, models.Tag{
			Name: strings.TrimSpace(sel.Text()),
			Link: c.BaseURL + "/" + strings.TrimPrefix(href, "/"),
		})
	})
	return tags, nil
}
