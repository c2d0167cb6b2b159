// Package utils holds small shared helpers with no dependencies on the rest
// of the module.
package utils

import (
	"time"
)

// Eastern is the US exchange timezone (America/New_York).
var Eastern *time.Location

func init() {
	var err error
	Eastern, err = time.LoadLocation("America/New_York")
	if err != nil {
		// Fallback: fixed EST offset if the tz database is not available.
		Eastern = time.FixedZone("EST", -5*60*60)
	}
}

// NowEastern returns the current time in the exchange timezone.
func NowEastern() time.Time {
	return time.Now().In(Eastern)
}

// SameDayEastern reports whether a and b fall on the same calendar day in the
// exchange timezone.
func SameDayEastern(a, b time.Time) bool {
	ay, am, ad := a.In(Eastern).Date()
	by, bm, bd := b.In(Eastern).Date()
	return ay == by && am == bm && ad == bd
}

// NewsDayLayout is the day-token format the scrape target renders news dates
// in, e.g. "Mar-04-24".
const NewsDayLayout = "Jan-02-06"

// NewsTimestampLayout is the full date-plus-time format of a resolved news
// row, e.g. "Mar-04-24 02:00PM".
const NewsTimestampLayout = "Jan-02-06 03:04PM"

// FormatNewsDay renders t as the scrape target's day token in the exchange
// timezone.
func FormatNewsDay(t time.Time) string {
	return t.In(Eastern).Format(NewsDayLayout)
}
