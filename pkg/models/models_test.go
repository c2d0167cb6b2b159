package models

import "testing"

func TestParsePeriod(t *testing.T) {
	valid := []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}
	for _, s := range valid {
		if _, ok := ParsePeriod(s); !ok {
			t.Errorf("ParsePeriod(%q) = invalid, want valid", s)
		}
	}
	invalid := []string{"", "7d", "1w", "MAX", "year"}
	for _, s := range invalid {
		if _, ok := ParsePeriod(s); ok {
			t.Errorf("ParsePeriod(%q) = valid, want invalid", s)
		}
	}
}

func TestParseResponseTypeDefault(t *testing.T) {
	rt, ok := ParseResponseType("")
	if !ok || rt != ResponsePlain {
		t.Fatalf("empty response type: got (%v, %v), want (plain, true)", rt, ok)
	}
}

func TestParseResponseTypeInvalid(t *testing.T) {
	if _, ok := ParseResponseType("json"); ok {
		t.Fatal("expected invalid response type to be rejected")
	}
}

func TestParseStatementKind(t *testing.T) {
	for _, s := range []string{"income", "cashflow", "balancesheet"} {
		if _, ok := ParseStatementKind(s); !ok {
			t.Errorf("ParseStatementKind(%q) rejected", s)
		}
	}
	if _, ok := ParseStatementKind("balance"); ok {
		t.Error("expected unknown statement kind to be rejected")
	}
}

func TestReverseAxes(t *testing.T) {
	fs := &FinancialStatement{
		Periods:   []string{"2024", "2023", "2022"},
		LineItems: []string{"Revenue", "Net Income"},
		Values: [][]float64{
			{30, 20, 10},
			{3, 2, 1},
		},
	}

	fs.ReverseAxes()

	if fs.Periods[0] != "2022" || fs.Periods[2] != "2024" {
		t.Errorf("periods not reversed: %v", fs.Periods)
	}
	if fs.LineItems[0] != "Net Income" {
		t.Errorf("line items not reversed: %v", fs.LineItems)
	}
	// Net Income row now first, oldest period now first column.
	if fs.Values[0][0] != 1 || fs.Values[1][0] != 10 {
		t.Errorf("cells did not follow labels: %v", fs.Values)
	}
}

func TestReverseAxesTwiceIsIdentity(t *testing.T) {
	fs := &FinancialStatement{
		Periods:   []string{"2024", "2023"},
		LineItems: []string{"a", "b", "c"},
		Values: [][]float64{
			{1, 2},
			{3, 4},
			{5, 6},
		},
	}

	fs.ReverseAxes()
	fs.ReverseAxes()

	if fs.Periods[0] != "2024" || fs.LineItems[0] != "a" || fs.Values[0][0] != 1 || fs.Values[2][1] != 6 {
		t.Errorf("double reversal is not the identity: %+v", fs)
	}
}
