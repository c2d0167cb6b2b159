package yahoo

import (
	"context"
	"time"

	"github.com/tigerding/stockapi/pkg/models"
)

// Filings returns the ticker's SEC filings in the order the provider lists
// them.
func (c *Client) Filings(ctx context.Context, ticker string) ([]models.SECFiling, error) {
	r, err := c.quoteSummary(ctx, ticker, "secFilings")
	if err != nil {
		return nil, err
	}
	if r.SECFilings == nil {
		return nil, nil
	}

	filings := make([]models.SECFiling, 0, len(r.SECFilings.Filings))
	for _, f := range r.SECFilings.Filings {
		filings = append(filings, models.SECFiling{
			Date:  filingDate(f),
			Type:  f.Type,
			Title: f.Title,
			Link:  f.EdgarURL,
		})
	}
	return filings, nil
}

func filingDate(f yfFiling) time.Time {
	if t, err := time.Parse("2006-01-02", f.Date); err == nil {
		return t
	}
	if f.EpochDate > 0 {
		return time.Unix(f.EpochDate, 0).UTC()
	}
	return time.Time{}
}
