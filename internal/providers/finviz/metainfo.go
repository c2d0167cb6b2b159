package finviz

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tigerding/stockapi/internal/metainfo"
	"github.com/tigerding/stockapi/internal/provider"
)

// PartialMetaInfo extracts the Finviz-only metadata fields from the snapshot
// grid: index participation and the EPS growth/surprise figures. The grid is
// a flat sequence of label/value cell pairs; unrecognized labels are skipped,
// not errors, so snapshot rows Finviz adds later do not break extraction.
func (c *Client) PartialMetaInfo(ctx context.Context, ticker string) (metainfo.Partial, error) {
	var p metainfo.Partial

	doc, err := c.fetchPage(ctx, ticker)
	if err != nil {
		return p, err
	}

	cells := doc.Find(".snapshot-table2 td")
	if cells.Length() == 0 {
		return p, &provider.ErrStructure{
			Source: sourceName,
			Detail: "snapshot table not found",
		}
	}

	var label string
	cells.Each(func(i int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if i%2 == 0 {
			label = text
			return
		}
		applySnapshotField(&p, label, text)
	})
	return p, nil
}

// applySnapshotField dispatches one label/value pair onto the partial. The
// label set is closed: each recognized label has its own transform, anything
// else is ignored.
func applySnapshotField(p *metainfo.Partial, label, value string) {
	if value == "" || value == "-" {
		return
	}
	switch label {
	case "Index":
		// Kept comma-joined; split into a set at finalize.
		p.IndexRaw = &value
	case "EPS Y/Y TTM":
		if v, err := metainfo.Percent(value); err == nil {
			p.EPSGrowthYoYTTM = &v
		}
	case "EPS Q/Q":
		if v, err := metainfo.Percent(value); err == nil {
			p.EPSGrowthQoQ = &v
		}
	case "EPS Surprise":
		if v, err := metainfo.Percent(value); err == nil {
			p.EPSSurprise = &v
		}
	}
}
