package finviz

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
	"github.com/tigerding/stockapi/pkg/utils"
)

// rawNewsRow is a news table row before its date string has been repaired.
type rawNewsRow struct {
	date      string
	title     string
	link      string
	publisher string
	thumb     string
}

// News extracts the news table from the quote page. Rows without a headline
// link or without a parenthesized publisher are dropped; publisher-less rows
// belong to the premium feed and carry no usable link. Dates are repaired
// before parsing, see repairDates.
func (c *Client) News(ctx context.Context, ticker string) ([]models.NewsItem, error) {
	doc, err := c.fetchPage(ctx, ticker)
	if err != nil {
		return nil, err
	}

	rows := doc.Find("#news-table tr")
	if rows.Length() == 0 {
		return nil, &provider.ErrStructure{
			Source: sourceName,
			Detail: "news table not found",
		}
	}

	var raws []rawNewsRow
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		content := cells.Eq(1)

		headline := content.Find("a").First()
		href, ok := headline.Attr("href")
		title := strings.TrimSpace(headline.Text())
		if !ok || href == "" || title == "" {
			return
		}

		publisher, ok := parenSuffix(content.Text())
		if !ok {
			return
		}

		thumb, _ := content.Find("img").First().Attr("src")

		raws = append(raws, rawNewsRow{
			date:      strings.TrimSpace(cells.Eq(0).Text()),
			title:     title,
			link:      href,
			publisher: publisher,
			thumb:     thumb,
		})
	})

	repairDates(raws, c.now())

	items := make([]models.NewsItem, 0, len(raws))
	for _, r := range raws {
		ts, err := time.ParseInLocation(utils.NewsTimestampLayout, r.date, utils.Eastern)
		if err != nil {
			continue
		}
		items = append(items, models.NewsItem{
			Date:         ts,
			Title:        r.title,
			Link:         r.link,
			Publisher:    r.publisher,
			ThumbnailSrc: r.thumb,
		})
	}
	return items, nil
}

// repairDates resolves every row to a full date string in a single
// left-to-right pass. The page renders the day only on the first row of each
// calendar day, so a row starting with a digit is a bare time and borrows
// the day token of the previous, already-resolved row. A leading "Today"
// literal becomes the current calendar date in the exchange timezone. The
// first row is expected to carry a full date; that is an upstream invariant,
// not something this pass defends against.
func repairDates(rows []rawNewsRow, now time.Time) {
	for i := range rows {
		d := rows[i].date
		switch {
		case strings.HasPrefix(d, "Today"):
			rows[i].date = utils.FormatNewsDay(now) + strings.TrimPrefix(d, "Today")
		case d != "" && d[0] >= '0' && d[0] <= '9':
			if i > 0 {
				day, _, _ := strings.Cut(rows[i-1].date, " ")
				rows[i].date = day + " " + d
			}
		}
	}
}

// parenSuffix pulls the publisher name out of the trailing parenthesized
// suffix of a news cell's text.
func parenSuffix(s string) (string, bool) {
	s = strings.TrimSpace(s)
	open := strings.LastIndex(s, "(")
	closing := strings.LastIndex(s, ")")
	if open < 0 || closing < open+1 {
		return "", false
	}
	pub := strings.TrimSpace(s[open+1 : closing])
	if pub == "" {
		return "", false
	}
	return pub, true
}
