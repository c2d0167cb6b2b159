package models

// Period is a named lookback window for historical price data, matching the
// ranges the chart API accepts.
type Period string

const (
	PeriodDay     Period = "1d"
	PeriodWeek    Period = "5d"
	PeriodMonth   Period = "1mo"
	PeriodQuarter Period = "3mo"
	PeriodHalfYr  Period = "6mo"
	PeriodYear    Period = "1y"
	PeriodTwoYr   Period = "2y"
	PeriodFiveYr  Period = "5y"
	PeriodDecade  Period = "10y"
	PeriodYTD     Period = "ytd"
	PeriodMax     Period = "max"
)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodHalfYr,
		PeriodYear, PeriodTwoYr, PeriodFiveYr, PeriodDecade, PeriodYTD, PeriodMax:
		return Period(s), true
	}
	return "", false
}

// ResponseType selects how a tabular result is rendered over HTTP.
type ResponseType string

const (
	ResponsePlain ResponseType = "plain" // raw CSV text inline
	ResponseCSV   ResponseType = "csv"   // CSV as a file attachment
	ResponseModel ResponseType = "model" // validated typed record as JSON
)

// ParseResponseType validates a response type string; empty defaults to plain.
func ParseResponseType(s string) (ResponseType, bool) {
	if s == "" {
		return ResponsePlain, true
	}
	switch ResponseType(s) {
	case ResponsePlain, ResponseCSV, ResponseModel:
		return ResponseType(s), true
	}
	return "", false
}
