// Package metainfo merges the two upstream partial metadata views into one
// canonical StockMetaInfo record.
//
// Each adapter fills a Partial with whatever fields its source supplies; the
// two are merged field-by-field and converted to the strict record exactly
// once, at Finalize, where the single validation failure can surface.
package metainfo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
)

// Partial is the intermediate metadata representation: every canonical field
// optional. The two sources contribute disjoint field sets by construction.
type Partial struct {
	Ticker   *string
	Name     *string
	Exchange *string
	Summary  *string

	PE                *float64
	ForwardPE         *float64
	EPS               *float64
	MarketCap         *float64
	ProfitMargin      *float64
	GrossMargin       *float64
	FiftyTwoWeekHigh  *float64
	FiftyTwoWeekLow   *float64
	SharesOutstanding *float64
	DividendRate      *float64

	// IndexRaw is the comma-joined index membership string as scraped; it is
	// split into a set only during Finalize.
	IndexRaw *string

	EPSGrowthYoYTTM *float64
	EPSGrowthQoQ    *float64
	EPSSurprise     *float64
}

// Merge combines p with other field-by-field. Fields already set in p win;
// with disjoint sources no collision can occur.
func (p Partial) Merge(other Partial) Partial {
	out := p
	mergeStr(&out.Ticker, other.Ticker)
	mergeStr(&out.Name, other.Name)
	mergeStr(&out.Exchange, other.Exchange)
	mergeStr(&out.Summary, other.Summary)
	mergeF64(&out.PE, other.PE)
	mergeF64(&out.ForwardPE, other.ForwardPE)
	mergeF64(&out.EPS, other.EPS)
	mergeF64(&out.MarketCap, other.MarketCap)
	mergeF64(&out.ProfitMargin, other.ProfitMargin)
	mergeF64(&out.GrossMargin, other.GrossMargin)
	mergeF64(&out.FiftyTwoWeekHigh, other.FiftyTwoWeekHigh)
	mergeF64(&out.FiftyTwoWeekLow, other.FiftyTwoWeekLow)
	mergeF64(&out.SharesOutstanding, other.SharesOutstanding)
	mergeF64(&out.DividendRate, other.DividendRate)
	mergeStr(&out.IndexRaw, other.IndexRaw)
	mergeF64(&out.EPSGrowthYoYTTM, other.EPSGrowthYoYTTM)
	mergeF64(&out.EPSGrowthQoQ, other.EPSGrowthQoQ)
	mergeF64(&out.EPSSurprise, other.EPSSurprise)
	return out
}

func mergeStr(dst **string, src *string) {
	if *dst == nil {
		*dst = src
	}
}

func mergeF64(dst **float64, src *float64) {
	if *dst == nil {
		*dst = src
	}
}

// Count returns the number of set fields, used by merge accounting.
func (p Partial) Count() int {
	n := 0
	for _, set := range []bool{
		p.Ticker != nil, p.Name != nil, p.Exchange != nil, p.Summary != nil,
		p.PE != nil, p.ForwardPE != nil, p.EPS != nil, p.MarketCap != nil,
		p.ProfitMargin != nil, p.GrossMargin != nil,
		p.FiftyTwoWeekHigh != nil, p.FiftyTwoWeekLow != nil,
		p.SharesOutstanding != nil, p.DividendRate != nil,
		p.IndexRaw != nil,
		p.EPSGrowthYoYTTM != nil, p.EPSGrowthQoQ != nil, p.EPSSurprise != nil,
	} {
		if set {
			n++
		}
	}
	return n
}

// Finalize converts the merged partial plus the separately fetched earnings
// date into the strict record. The comma-joined index membership is split
// into a set of names here, as the last step before construction. Missing
// mandatory fields surface as a single validation error.
func Finalize(p Partial, earningsDate *time.Time) (*models.StockMetaInfo, error) {
	var missing []string
	if p.Ticker == nil || *p.Ticker == "" {
		missing = append(missing, "ticker")
	}
	if p.Name == nil || *p.Name == "" {
		missing = append(missing, "name")
	}
	if p.Exchange == nil || *p.Exchange == "" {
		missing = append(missing, "exchange")
	}
	if len(missing) > 0 {
		return nil, &provider.ErrValidation{
			Detail: "meta info missing mandatory fields: " + strings.Join(missing, ", "),
		}
	}

	meta := &models.StockMetaInfo{
		Ticker:            *p.Ticker,
		Name:              *p.Name,
		Exchange:          *p.Exchange,
		PE:                p.PE,
		ForwardPE:         p.ForwardPE,
		EPS:               p.EPS,
		MarketCap:         p.MarketCap,
		ProfitMargin:      p.ProfitMargin,
		GrossMargin:       p.GrossMargin,
		FiftyTwoWeekHigh:  p.FiftyTwoWeekHigh,
		FiftyTwoWeekLow:   p.FiftyTwoWeekLow,
		SharesOutstanding: p.SharesOutstanding,
		DividendRate:      p.DividendRate,
		EPSGrowthYoYTTM:   p.EPSGrowthYoYTTM,
		EPSGrowthQoQ:      p.EPSGrowthQoQ,
		EPSSurprise:       p.EPSSurprise,
		EarningsDate:      earningsDate,
	}
	if p.Summary != nil {
		meta.Summary = *p.Summary
	}
	if p.IndexRaw != nil {
		meta.IndexParticipation = SplitList(*p.IndexRaw)
	}
	return meta, nil
}

// --- Canonical key vocabulary ---

// Key derives the canonical key for an upstream-native field label:
// lower-case, spaces replaced with underscores, parentheses removed.
// Applying Key to an already-canonical key is a no-op.
func Key(label string) string {
	k := strings.ToLower(strings.TrimSpace(label))
	k = strings.ReplaceAll(k, " ", "_")
	k = strings.ReplaceAll(k, "(", "")
	k = strings.ReplaceAll(k, ")", "")
	return k
}

// Percent parses a percentage string like "12.5%" into its fraction, 0.125.
// A plain number without the suffix is still divided by 100.
func Percent(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse percentage %q: %w", s, err)
	}
	return v / 100, nil
}

// SplitList splits a comma-joined string into trimmed, distinct names,
// preserving first-seen order.
func SplitList(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, part := range strings.Split(s, ",") {
		name := strings.TrimSpace(part)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// --- Tabular view ---

// Row is one canonical key/value pair of the tabular metadata view.
type Row struct {
	Key   string
	Value string
}

// Table renders the record as ordered canonical key/value rows for the
// tabular response representations. Keys are already canonical; no
// upstream-native label appears here.
func Table(meta *models.StockMetaInfo) []Row {
	rows := []Row{
		{Key: "ticker", Value: meta.Ticker},
		{Key: "name", Value: meta.Name},
		{Key: "exchange", Value: meta.Exchange},
		{Key: "summary", Value: meta.Summary},
		{Key: "pe", Value: fmtF64(meta.PE)},
		{Key: "forward_pe", Value: fmtF64(meta.ForwardPE)},
		{Key: "eps", Value: fmtF64(meta.EPS)},
		{Key: "market_cap", Value: fmtF64(meta.MarketCap)},
		{Key: "profit_margin", Value: fmtF64(meta.ProfitMargin)},
		{Key: "gross_margin", Value: fmtF64(meta.GrossMargin)},
		{Key: "fifty_two_week_high", Value: fmtF64(meta.FiftyTwoWeekHigh)},
		{Key: "fifty_two_week_low", Value: fmtF64(meta.FiftyTwoWeekLow)},
		{Key: "shares_outstanding", Value: fmtF64(meta.SharesOutstanding)},
		{Key: "dividend_rate", Value: fmtF64(meta.DividendRate)},
		{Key: "index_participation", Value: strings.Join(meta.IndexParticipation, "; ")},
		{Key: "eps_growth_yoy_ttm", Value: fmtF64(meta.EPSGrowthYoYTTM)},
		{Key: "eps_growth_qoq", Value: fmtF64(meta.EPSGrowthQoQ)},
		{Key: "eps_surprise", Value: fmtF64(meta.EPSSurprise)},
	}
	if meta.EarningsDate != nil {
		rows = append(rows, Row{Key: "earnings_date", Value: meta.EarningsDate.Format("2006-01-02")})
	} else {
		rows = append(rows, Row{Key: "earnings_date", Value: ""})
	}
	return rows
}

func fmtF64(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
