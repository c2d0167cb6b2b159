package yahoo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/tigerding/stockapi/internal/provider"
)

// EarningsDate returns the ticker's next scheduled earnings timestamp, or
// nil when the provider has no calendar entry for it. A missing entry is a
// normal condition, not an error; the provider's not-found chatter for that
// case is swallowed here.
func (c *Client) EarningsDate(ctx context.Context, ticker string) (*time.Time, error) {
	r, err := c.quoteSummary(ctx, ticker, "calendarEvents")
	if err != nil {
		// The provider reports an empty calendar as a missing-data error;
		// treat that as absence rather than failure.
		var up *provider.ErrUpstream
		if errors.As(err, &up) && strings.Contains(up.Err.Error(), "no quoteSummary data") {
			return nil, nil
		}
		return nil, err
	}

	if r.CalendarEvents == nil || r.CalendarEvents.Earnings == nil {
		return nil, nil
	}
	dates := r.CalendarEvents.Earnings.EarningsDate
	if len(dates) == 0 || dates[0].Raw <= 0 {
		return nil, nil
	}

	t := time.Unix(int64(dates[0].Raw), 0).UTC()
	return &t, nil
}
