package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
	"github.com/tigerding/stockapi/pkg/utils"
)

// History returns daily (or finer, per interval) price bars for the ticker,
// constrained by either the request's explicit start/end range or its named
// period. Bars come back ordered by date ascending.
//
// A bar dated "today" in the exchange timezone is dropped: the session is
// still open, so the bar is provisional and unreliable before market close.
func (c *Client) History(ctx context.Context, ticker, interval string, req provider.HistoryRequest) ([]models.PriceBar, error) {
	if interval == "" {
		interval = "1d"
	}

	var url string
	if req.HasRange() {
		url = fmt.Sprintf(
			"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=%s",
			c.BaseURL, ticker, req.Start.Unix(), req.End.Unix(), interval,
		)
	} else {
		url = fmt.Sprintf(
			"%s/v8/finance/chart/%s?range=%s&interval=%s",
			c.BaseURL, ticker, req.Period, interval,
		)
	}

	var resp yfChartResponse
	if err := c.fetchJSON(ctx, url, &resp); err != nil {
		return nil, err
	}
	if resp.Chart.Error != nil {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("chart %s: %s", ticker, resp.Chart.Error.Description),
		}
	}
	if len(resp.Chart.Result) == 0 {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("no price data for %s", ticker),
		}
	}

	bars := parseBars(resp.Chart.Result[0])
	return c.dropProvisionalBar(bars), nil
}

// parseBars converts a chart result into price bars, skipping null cells.
func parseBars(result yfChartResult) []models.PriceBar {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	q := result.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		b := models.PriceBar{Date: time.Unix(ts, 0).In(utils.Eastern)}
		if i < len(q.Open) && q.Open[i] != nil {
			b.Open = *q.Open[i]
		}
		if i < len(q.High) && q.High[i] != nil {
			b.High = *q.High[i]
		}
		if i < len(q.Low) && q.Low[i] != nil {
			b.Low = *q.Low[i]
		}
		if i < len(q.Close) && q.Close[i] != nil {
			b.Close = *q.Close[i]
		}
		if i < len(q.Volume) && q.Volume[i] != nil {
			b.Volume = *q.Volume[i]
		}
		bars = append(bars, b)
	}
	return bars
}

// dropProvisionalBar removes the most recent bar when it belongs to the
// current trading day in the exchange timezone.
func (c *Client) dropProvisionalBar(bars []models.PriceBar) []models.PriceBar {
	if len(bars) == 0 {
		return bars
	}
	last := bars[len(bars)-1]
	if utils.SameDayEastern(last.Date, c.now()) {
		return bars[:len(bars)-1]
	}
	return bars
}
