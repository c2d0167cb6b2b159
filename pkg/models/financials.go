package models

// StatementKind identifies which financial statement a table holds.
type StatementKind string

const (
	StatementIncome       StatementKind = "income"
	StatementCashFlow     StatementKind = "cashflow"
	StatementBalanceSheet StatementKind = "balancesheet"
)

// Cadence is the reporting period cadence of a financial statement.
type Cadence string

const (
	CadenceYearly    Cadence = "yearly"
	CadenceQuarterly Cadence = "quarterly"
)

// ParseStatementKind validates a statement kind string.
func ParseStatementKind(s string) (StatementKind, bool) {
	switch StatementKind(s) {
	case StatementIncome, StatementCashFlow, StatementBalanceSheet:
		return StatementKind(s), true
	}
	return "", false
}

// ParseCadence validates a cadence string.
func ParseCadence(s string) (Cadence, bool) {
	switch Cadence(s) {
	case CadenceYearly, CadenceQuarterly:
		return Cadence(s), true
	}
	return "", false
}

// FinancialStatement is one statement at one cadence, laid out as a table:
// rows are line items, columns are periods. Both axes are kept in
// increasing-period / matching-label display order, which is the reverse of
// the provider's native most-recent-first order.
type FinancialStatement struct {
	Ticker    string        `json:"ticker"`
	Kind      StatementKind `json:"kind"`
	Cadence   Cadence       `json:"cadence"`
	Periods   []string      `json:"periods"`    // column labels
	LineItems []string      `json:"line_items"` // row labels
	Values    [][]float64   `json:"values"`     // Values[row][col]
}

// ReverseAxes flips both axes of the table in place: periods run in the
// opposite order and line items in the opposite order, with every cell
// following its labels. Applying it twice restores the original layout.
func (fs *FinancialStatement) ReverseAxes() {
	reverseStrings(fs.Periods)
	reverseStrings(fs.LineItems)
	for i, j := 0, len(fs.Values)-1; i < j; i, j = i+1, j-1 {
		fs.Values[i], fs.Values[j] = fs.Values[j], fs.Values[i]
	}
	for _, row := range fs.Values {
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}

func reverseStrings(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
