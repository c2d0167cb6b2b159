package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/tigerding/stockapi/internal/provider"
	"github.com/tigerding/stockapi/pkg/models"
)

// lineItem pairs a display label with the provider's payload key.
type lineItem struct {
	label string
	key   string
}

// Line items per statement kind, in the provider's canonical display order.
var (
	incomeItems = []lineItem{
		{"Total Revenue", "totalRevenue"},
		{"Cost Of Revenue", "costOfRevenue"},
		{"Gross Profit", "grossProfit"},
		{"Total Operating Expenses", "totalOperatingExpenses"},
		{"Operating Income", "operatingIncome"},
		{"Interest Expense", "interestExpense"},
		{"Income Before Tax", "incomeBeforeTax"},
		{"Income Tax Expense", "incomeTaxExpense"},
		{"Net Income", "netIncome"},
	}
	cashFlowItems = []lineItem{
		{"Total Cash From Operating Activities", "totalCashFromOperatingActivities"},
		{"Capital Expenditures", "capitalExpenditures"},
		{"Total Cashflows From Investing Activities", "totalCashflowsFromInvestingActivities"},
		{"Total Cash From Financing Activities", "totalCashFromFinancingActivities"},
		{"Dividends Paid", "dividendsPaid"},
		{"Change In Cash", "changeInCash"},
	}
	balanceSheetItems = []lineItem{
		{"Total Assets", "totalAssets"},
		{"Total Current Assets", "totalCurrentAssets"},
		{"Cash", "cash"},
		{"Net Receivables", "netReceivables"},
		{"Inventory", "inventory"},
		{"Property Plant Equipment", "propertyPlantEquipment"},
		{"Total Liabilities", "totalLiab"},
		{"Total Current Liabilities", "totalCurrentLiabilities"},
		{"Long Term Debt", "longTermDebt"},
		{"Total Stockholder Equity", "totalStockholderEquity"},
		{"Common Stock", "commonStock"},
		{"Retained Earnings", "retainedEarnings"},
	}
)

// statementModule maps a kind/cadence pair to its quoteSummary module name.
// Each kind is wired to its own module; the balance sheet fetches balance
// sheet data, not a neighbour's.
func statementModule(kind models.StatementKind, cadence models.Cadence) string {
	quarterly := cadence == models.CadenceQuarterly
	switch kind {
	case models.StatementIncome:
		if quarterly {
			return "incomeStatementHistoryQuarterly"
		}
		return "incomeStatementHistory"
	case models.StatementCashFlow:
		if quarterly {
			return "cashflowStatementHistoryQuarterly"
		}
		return "cashflowStatementHistory"
	default:
		if quarterly {
			return "balanceSheetHistoryQuarterly"
		}
		return "balanceSheetHistory"
	}
}

// Statement fetches one financial statement table at the given cadence. The
// provider returns periods most-recent-first; the table is returned with
// both axes reversed into the canonical increasing-period display order.
func (c *Client) Statement(ctx context.Context, ticker string, kind models.StatementKind, cadence models.Cadence) (*models.FinancialStatement, error) {
	module := statementModule(kind, cadence)

	r, err := c.quoteSummary(ctx, ticker, module)
	if err != nil {
		return nil, err
	}

	container := containerFor(r, kind, cadence)
	if container == nil || len(container.statements()) == 0 {
		return nil, &provider.ErrUpstream{
			Source: sourceName,
			Err:    fmt.Errorf("no %s %s statement for %s", cadence, kind, ticker),
		}
	}

	items := itemsFor(kind)
	stmts := container.statements()

	fs := &models.FinancialStatement{
		Ticker:    ticker,
		Kind:      kind,
		Cadence:   cadence,
		Periods:   make([]string, 0, len(stmts)),
		LineItems: make([]string, 0, len(items)),
		Values:    make([][]float64, len(items)),
	}
	for _, stmt := range stmts {
		fs.Periods = append(fs.Periods, periodLabel(stmt))
	}
	for i, item := range items {
		fs.LineItems = append(fs.LineItems, item.label)
		row := make([]float64, len(stmts))
		for j, stmt := range stmts {
			if v := stmt[item.key]; v != nil {
				row[j] = v.Raw
			}
		}
		fs.Values[i] = row
	}

	fs.ReverseAxes()
	return fs, nil
}

func itemsFor(kind models.StatementKind) []lineItem {
	switch kind {
	case models.StatementIncome:
		return incomeItems
	case models.StatementCashFlow:
		return cashFlowItems
	default:
		return balanceSheetItems
	}
}

func containerFor(r *yfQuoteSummaryResult, kind models.StatementKind, cadence models.Cadence) *yfStatementContainer {
	quarterly := cadence == models.CadenceQuarterly
	switch kind {
	case models.StatementIncome:
		if quarterly {
			return r.IncomeStatementHistoryQuarterly
		}
		return r.IncomeStatementHistory
	case models.StatementCashFlow:
		if quarterly {
			return r.CashflowStatementHistoryQuarterly
		}
		return r.CashflowStatementHistory
	default:
		if quarterly {
			return r.BalanceSheetHistoryQuarterly
		}
		return r.BalanceSheetHistory
	}
}

// periodLabel extracts the period end date label from a statement map.
func periodLabel(stmt map[string]*yfNum) string {
	if v := stmt["endDate"]; v != nil {
		if v.Fmt != "" {
			return v.Fmt
		}
		if v.Raw > 0 {
			return time.Unix(int64(v.Raw), 0).UTC().Format("2006-01-02")
		}
	}
	return ""
}
