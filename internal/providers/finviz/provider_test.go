package finviz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/utils"
)

func newTestClient(t *testing.T, html string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("t") == "" {
			t.Error("missing t query parameter")
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, html)
	}))
	t.Cleanup(srv.Close)

	c := New()
	c.BaseURL = srv.URL
	return c
}

// --- Tags ---

func TestTags(t *testing.T) {
	c := newTestClient(t, `<html><body>
		<div class="quote-links"><div>
			<a href="screener.ashx?v=111&f=sec_technology">Technology</a>
			<a href="screener.ashx?v=111&f=ind_consumerelectronics">Consumer Electronics</a>
			<a href="screener.ashx?v=111&f=geo_usa">USA</a>
		</div></div>
	</body></html>`)

	tags, err := c.Tags(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Tags: %v", err)
	}
	if len(tags) != 3 {
		t.Fatalf("got %d tags, want 3", len(tags))
	}
	if tags[0].Name != "Technology" {
		t.Errorf("tag name = %q", tags[0].Name)
	}
	want := c.BaseURL + "/screener.ashx?v=111&f=sec_technology"
	if tags[0].Link != want {
		t.Errorf("tag link = %q, want %q", tags[0].Link, want)
	}
}

func TestTagsMissingContainerIsStructural(t *testing.T) {
	c := newTestClient(t, `<html><body><p>not a quote page</p></body></html>`)

	_, err := c.Tags(context.Background(), "AAPL")

	var st *provider.ErrStructure
	if !errors.As(err, &st) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
	var up *provider.ErrUpstream
	if errors.As(err, &up) {
		t.Error("structural failure must not look like a fetch failure")
	}
}

func TestTagsEmptyContainerIsStructural(t *testing.T) {
	c := newTestClient(t, `<html><body><div class="quote-links"><div></div></div></body></html>`)

	_, err := c.Tags(context.Background(), "AAPL")

	var st *provider.ErrStructure
	if !errors.As(err, &st) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
}

// --- Snapshot metadata ---

func TestPartialMetaInfo(t *testing.T) {
	c := newTestClient(t, `<html><body><table class="snapshot-table2"><tr>
		<td>Index</td><td>DJIA, S&amp;P 500</td>
		<td>P/E</td><td>29.11</td>
		<td>EPS Y/Y TTM</td><td>10.50%</td>
		<td>EPS Q/Q</td><td>-3.20%</td>
		<td>EPS Surprise</td><td>1.75%</td>
		<td>Sales</td><td>383.93B</td>
	</tr></table></body></html>`)

	p, err := c.PartialMetaInfo(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("PartialMetaInfo: %v", err)
	}

	if p.IndexRaw == nil || *p.IndexRaw != "DJIA, S&P 500" {
		t.Errorf("index raw = %v, want comma-joined string", p.IndexRaw)
	}
	if p.EPSGrowthYoYTTM == nil || *p.EPSGrowthYoYTTM != 0.105 {
		t.Errorf("EPS Y/Y = %v, want 0.105", p.EPSGrowthYoYTTM)
	}
	if p.EPSGrowthQoQ == nil || *p.EPSGrowthQoQ != -0.032 {
		t.Errorf("EPS Q/Q = %v, want -0.032", p.EPSGrowthQoQ)
	}
	if p.EPSSurprise == nil || *p.EPSSurprise != 0.0175 {
		t.Errorf("EPS surprise = %v, want 0.0175", p.EPSSurprise)
	}

	// Unrecognized labels (P/E, Sales) are ignored, and identity fields only
	// ever come from the structured source.
	if p.PE != nil || p.Ticker != nil {
		t.Error("unrecognized snapshot labels must be ignored")
	}
	if p.Count() != 4 {
		t.Errorf("field count = %d, want 4", p.Count())
	}
}

func TestPartialMetaInfoPlaceholderValuesSkipped(t *testing.T) {
	c := newTestClient(t, `<html><body><table class="snapshot-table2"><tr>
		<td>Index</td><td>-</td>
		<td>EPS Q/Q</td><td>5.00%</td>
	</tr></table></body></html>`)

	p, err := c.PartialMetaInfo(context.Background(), "TINY")
	if err != nil {
		t.Fatalf("PartialMetaInfo: %v", err)
	}
	if p.IndexRaw != nil {
		t.Error("placeholder value should leave the field unset")
	}
	if p.EPSGrowthQoQ == nil || *p.EPSGrowthQoQ != 0.05 {
		t.Errorf("EPS Q/Q = %v, want 0.05", p.EPSGrowthQoQ)
	}
}

func TestPartialMetaInfoMissingTableIsStructural(t *testing.T) {
	c := newTestClient(t, `<html><body></body></html>`)

	_, err := c.PartialMetaInfo(context.Background(), "AAPL")

	var st *provider.ErrStructure
	if !errors.As(err, &st) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
}

// --- News ---

func newsRow(date, content string) string {
	return fmt.Sprintf(`<tr><td>%s</td><td>%s</td></tr>`, date, content)
}

func newsPage(rows ...string) string {
	page := `<html><body><table id="news-table">`
	for _, r := range rows {
		page += r
	}
	return page + `</table></body></html>`
}

func TestNewsBorrowsDayFromPreviousRow(t *testing.T) {
	c := newTestClient(t, newsPage(
		newsRow("Jan-05-24 09:00AM", `<a href="https://example.com/1">First</a> (Reuters)`),
		newsRow("09:30AM", `<a href="https://example.com/2">Second</a> (Bloomberg)`),
		newsRow("10:15AM", `<a href="https://example.com/3">Third</a> (Reuters)`),
	))
	c.now = func() time.Time { return time.Date(2024, 1, 6, 12, 0, 0, 0, utils.Eastern) }

	items, err := c.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, item := range items {
		if got := item.Date.Format(utils.NewsDayLayout); got != "Jan-05-24" {
			t.Errorf("item %d day = %q, want Jan-05-24", i, got)
		}
	}
	if items[1].Date.Hour() != 9 || items[1].Date.Minute() != 30 {
		t.Errorf("item 1 time = %v, want 09:30", items[1].Date)
	}
}

func TestNewsResolvesTodayToken(t *testing.T) {
	c := newTestClient(t, newsPage(
		newsRow("Today 02:00PM", `<a href="https://example.com/1">Headline</a> (WSJ)`),
	))
	c.now = func() time.Time { return time.Date(2024, 3, 4, 15, 0, 0, 0, utils.Eastern) }

	items, err := c.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}
	want := time.Date(2024, 3, 4, 14, 0, 0, 0, utils.Eastern)
	if !items[0].Date.Equal(want) {
		t.Errorf("date = %v, want %v", items[0].Date, want)
	}
}

func TestNewsTodayDayCarriesToLaterRows(t *testing.T) {
	c := newTestClient(t, newsPage(
		newsRow("Today 02:00PM", `<a href="https://example.com/1">First</a> (Reuters)`),
		newsRow("02:30PM", `<a href="https://example.com/2">Second</a> (Reuters)`),
	))
	c.now = func() time.Time { return time.Date(2024, 3, 4, 15, 0, 0, 0, utils.Eastern) }

	items, err := c.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if got := items[1].Date.Format(utils.NewsDayLayout); got != "Mar-04-24" {
		t.Errorf("second row day = %q, want Mar-04-24", got)
	}
}

func TestNewsSkipsUnusableRows(t *testing.T) {
	c := newTestClient(t, newsPage(
		newsRow("Jan-05-24 09:00AM", `<a href="https://example.com/1">Kept</a> (Reuters)`),
		// No parenthesized publisher: premium feed row.
		newsRow("09:30AM", `<a href="https://example.com/2">Premium story</a>`),
		// No headline link.
		newsRow("10:00AM", `Plain text row (Reuters)`),
		newsRow("10:30AM", `<a href="https://example.com/3">Also kept</a> (Bloomberg)`),
	))
	c.now = func() time.Time { return time.Date(2024, 1, 6, 12, 0, 0, 0, utils.Eastern) }

	items, err := c.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Title != "Kept" || items[1].Title != "Also kept" {
		t.Errorf("wrong rows survived: %+v", items)
	}
	if items[0].Publisher != "Reuters" || items[1].Publisher != "Bloomberg" {
		t.Errorf("publishers = %q, %q", items[0].Publisher, items[1].Publisher)
	}
}

func TestNewsThumbnail(t *testing.T) {
	c := newTestClient(t, newsPage(
		newsRow("Jan-05-24 09:00AM",
			`<img src="https://cdn.example.com/thumb.jpg"><a href="https://example.com/1">Story</a> (Reuters)`),
	))

	items, err := c.News(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("News: %v", err)
	}
	if items[0].ThumbnailSrc != "https://cdn.example.com/thumb.jpg" {
		t.Errorf("thumbnail = %q", items[0].ThumbnailSrc)
	}
}

func TestNewsMissingTableIsStructural(t *testing.T) {
	c := newTestClient(t, `<html><body><p>nothing here</p></body></html>`)

	_, err := c.News(context.Background(), "AAPL")

	var st *provider.ErrStructure
	if !errors.As(err, &st) {
		t.Fatalf("expected ErrStructure, got %v", err)
	}
}

func TestRepairDates(t *testing.T) {
	now := time.Date(2024, 3, 4, 15, 0, 0, 0, utils.Eastern)
	rows := []rawNewsRow{
		{date: "Today 02:00PM"},
		{date: "01:45PM"},
		{date: "Mar-01-24 11:00AM"},
		{date: "10:30AM"},
	}
	repairDates(rows, now)

	want := []string{
		"Mar-04-24 02:00PM",
		"Mar-04-24 01:45PM",
		"Mar-01-24 11:00AM",
		"Mar-01-24 10:30AM",
	}
	for i, w := range want {
		if rows[i].date != w {
			t.Errorf("row %d = %q, want %q", i, rows[i].date, w)
		}
	}
}
