package yahoo

import (
	"context"

	"github.com/tigerding/stockapi/internal/metainfo"
)

// infoModules are the quoteSummary modules covering the fundamentals half of
// the stock metadata.
const infoModules = "price,summaryProfile,summaryDetail,defaultKeyStatistics,financialData"

// PartialMetaInfo fetches the fundamentals view of the stock metadata.
// Identity fields (ticker, name, exchange) are always present in the
// provider payload; every other field missing from it is simply recorded as
// absent, never a failure.
func (c *Client) PartialMetaInfo(ctx context.Context, ticker string) (metainfo.Partial, error) {
	r, err := c.quoteSummary(ctx, ticker, infoModules)
	if err != nil {
		return metainfo.Partial{}, err
	}

	var p metainfo.Partial

	if pr := r.Price; pr != nil {
		symbol := pr.Symbol
		if symbol == "" {
			symbol = ticker
		}
		p.Ticker = &symbol

		name := pr.LongName
		if name == "" {
			name = pr.ShortName
		}
		if name != "" {
			p.Name = &name
		}

		exchange := pr.FullExchangeName
		if exchange == "" {
			exchange = pr.ExchangeName
		}
		if exchange != "" {
			p.Exchange = &exchange
		}
	} else {
		p.Ticker = &ticker
	}

	if sp := r.SummaryProfile; sp != nil && sp.LongBusinessSummary != "" {
		p.Summary = &sp.LongBusinessSummary
	}

	if sd := r.SummaryDetail; sd != nil {
		p.PE = numPtr(sd.TrailingPE)
		p.ForwardPE = numPtr(sd.ForwardPE)
		p.MarketCap = numPtr(sd.MarketCap)
		p.FiftyTwoWeekHigh = numPtr(sd.FiftyTwoWeekHigh)
		p.FiftyTwoWeekLow = numPtr(sd.FiftyTwoWeekLow)
		p.DividendRate = numPtr(sd.DividendRate)
	}

	if ks := r.DefaultKeyStatistics; ks != nil {
		p.EPS = numPtr(ks.TrailingEps)
		p.SharesOutstanding = numPtr(ks.SharesOutstanding)
		if p.ProfitMargin == nil {
			p.ProfitMargin = numPtr(ks.ProfitMargins)
		}
	}

	if fd := r.FinancialData; fd != nil {
		p.GrossMargin = numPtr(fd.GrossMargins)
		if p.ProfitMargin == nil {
			p.ProfitMargin = numPtr(fd.ProfitMargins)
		}
	}

	return p, nil
}
