// Package models defines the canonical data structures served by stockapi.
// Every value is an immutable per-request snapshot; nothing here is shared
// or mutated across requests.
package models

import "time"

// PriceBar is a single trading-interval OHLCV observation.
// Sequences of PriceBar are always ordered by Date ascending.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// SECFiling is one regulatory filing, in the order the provider returns them.
type SECFiling struct {
	Date  time.Time `json:"date"`
	Type  string    `json:"type"`
	Title string    `json:"title"`
	Link  string    `json:"link"`
}

// Tag is one classification link for an instrument. Link is an absolute URL
// built by prefixing the scrape target's origin to the relative href.
type Tag struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// NewsItem is one news story. Date always carries a resolved calendar day,
// never a bare time-of-day.
type NewsItem struct {
	Date         time.Time `json:"date"`
	Title        string    `json:"title"`
	Link         string    `json:"link"`
	Publisher    string    `json:"publisher"`
	ThumbnailSrc string    `json:"thumbnail_src,omitempty"`
}

// StockMetaInfo is the descriptive and fundamental snapshot for one
// instrument, assembled from two partial upstream sources. Ticker, Name and
// Exchange are always present; every other field is nil when neither source
// supplied it.
type StockMetaInfo struct {
	Ticker   string `json:"ticker"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Summary  string `json:"summary,omitempty"`

	PE                *float64 `json:"pe"`
	ForwardPE         *float64 `json:"forward_pe"`
	EPS               *float64 `json:"eps"`
	MarketCap         *float64 `json:"market_cap"`
	ProfitMargin      *float64 `json:"profit_margin"`
	GrossMargin       *float64 `json:"gross_margin"`
	FiftyTwoWeekHigh  *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow   *float64 `json:"fifty_two_week_low"`
	SharesOutstanding *float64 `json:"shares_outstanding"`
	DividendRate      *float64 `json:"dividend_rate"`

	// IndexParticipation is a set of distinct index names, never the raw
	// comma-joined string the scrape target renders.
	IndexParticipation []string `json:"index_participation"`

	EPSGrowthYoYTTM *float64 `json:"eps_growth_yoy_ttm"`
	EPSGrowthQoQ    *float64 `json:"eps_growth_qoq"`
	EPSSurprise     *float64 `json:"eps_surprise"`

	EarningsDate *time.Time `json:"earnings_date"`
}
