package yahoo

// --- Yahoo Finance API response types ---

// yfNum is Yahoo's formatted-number envelope. Fields that the payload omits
// stay nil on the pointer side, which is how absence is told apart from a
// genuine zero.
type yfNum struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

// numPtr lifts an optional yfNum into an optional float64.
func numPtr(n *yfNum) *float64 {
	if n == nil {
		return nil
	}
	v := n.Raw
	return &v
}

type yfError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// yfChartResponse wraps the v8 chart API response.
type yfChartResponse struct {
	Chart struct {
		Result []yfChartResult `json:"result"`
		Error  *yfError        `json:"error"`
	} `json:"chart"`
}

type yfChartResult struct {
	Meta       yfChartMeta  `json:"meta"`
	Timestamp  []int64      `json:"timestamp"`
	Indicators yfIndicators `json:"indicators"`
}

type yfChartMeta struct {
	Symbol       string `json:"symbol"`
	Currency     string `json:"currency"`
	ExchangeName string `json:"exchangeName"`
}

type yfIndicators struct {
	Quote []yfOHLCV `json:"quote"`
}

type yfOHLCV struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// yfQuoteSummaryResponse wraps the v10 quoteSummary API response.
type yfQuoteSummaryResponse struct {
	QuoteSummary struct {
		Result []yfQuoteSummaryResult `json:"result"`
		Error  *yfError               `json:"error"`
	} `json:"quoteSummary"`
}

type yfQuoteSummaryResult struct {
	Price                *yfPrice          `json:"price"`
	SummaryProfile       *yfSummaryProfile `json:"summaryProfile"`
	SummaryDetail        *yfSummaryDetail  `json:"summaryDetail"`
	DefaultKeyStatistics *yfKeyStatistics  `json:"defaultKeyStatistics"`
	FinancialData        *yfFinancialData  `json:"financialData"`
	SECFilings           *yfSECFilings     `json:"secFilings"`
	CalendarEvents       *yfCalendarEvents `json:"calendarEvents"`

	IncomeStatementHistory            *yfStatementContainer `json:"incomeStatementHistory"`
	IncomeStatementHistoryQuarterly   *yfStatementContainer `json:"incomeStatementHistoryQuarterly"`
	CashflowStatementHistory          *yfStatementContainer `json:"cashflowStatementHistory"`
	CashflowStatementHistoryQuarterly *yfStatementContainer `json:"cashflowStatementHistoryQuarterly"`
	BalanceSheetHistory               *yfStatementContainer `json:"balanceSheetHistory"`
	BalanceSheetHistoryQuarterly      *yfStatementContainer `json:"balanceSheetHistoryQuarterly"`
}

type yfPrice struct {
	Symbol           string `json:"symbol"`
	ShortName        string `json:"shortName"`
	LongName         string `json:"longName"`
	ExchangeName     string `json:"exchangeName"`
	FullExchangeName string `json:"fullExchangeName"`
}

type yfSummaryProfile struct {
	LongBusinessSummary string `json:"longBusinessSummary"`
	Sector              string `json:"sector"`
	Industry            string `json:"industry"`
}

type yfSummaryDetail struct {
	TrailingPE       *yfNum `json:"trailingPE"`
	ForwardPE        *yfNum `json:"forwardPE"`
	MarketCap        *yfNum `json:"marketCap"`
	FiftyTwoWeekHigh *yfNum `json:"fiftyTwoWeekHigh"`
	FiftyTwoWeekLow  *yfNum `json:"fiftyTwoWeekLow"`
	DividendRate     *yfNum `json:"dividendRate"`
}

type yfKeyStatistics struct {
	TrailingEps       *yfNum `json:"trailingEps"`
	SharesOutstanding *yfNum `json:"sharesOutstanding"`
	ProfitMargins     *yfNum `json:"profitMargins"`
}

type yfFinancialData struct {
	GrossMargins  *yfNum `json:"grossMargins"`
	ProfitMargins *yfNum `json:"profitMargins"`
}

// yfSECFilings holds the secFilings quoteSummary module.
type yfSECFilings struct {
	Filings []yfFiling `json:"filings"`
}

type yfFiling struct {
	Date      string `json:"date"` // YYYY-MM-DD
	EpochDate int64  `json:"epochDate"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	EdgarURL  string `json:"edgarUrl"`
}

// yfCalendarEvents holds the calendarEvents quoteSummary module.
type yfCalendarEvents struct {
	Earnings *yfEarnings `json:"earnings"`
}

type yfEarnings struct {
	EarningsDate []yfNum `json:"earningsDate"` // raw epoch seconds
}

// yfStatementContainer wraps a list of statement maps, newest first.
type yfStatementContainer struct {
	IncomeStatements   []map[string]*yfNum `json:"incomeStatementHistory"`
	CashflowStatements []map[string]*yfNum `json:"cashflowStatements"`
	BalanceSheets      []map[string]*yfNum `json:"balanceSheetStatements"`
}

// statements returns whichever list the container carries.
func (c *yfStatementContainer) statements() []map[string]*yfNum {
	switch {
	case len(c.IncomeStatements) > 0:
		return c.IncomeStatements
	case len(c.CashflowStatements) > 0:
		return c.CashflowStatements
	default:
		return c.BalanceSheets
	}
}
