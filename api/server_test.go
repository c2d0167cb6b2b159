package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tigerding/stockapi/internal/config"
)

// --- Test helpers ---

// newTestServer wires a server against fake upstreams: a Yahoo endpoint that
// answers every request with yahooBody, and a Finviz endpoint serving
// finvizHTML.
func newTestServer(t *testing.T, yahooBody, finvizHTML string) *Server {
	t.Helper()

	yahooSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, yahooBody)
	}))
	t.Cleanup(yahooSrv.Close)

	finvizSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, finvizHTML)
	}))
	t.Cleanup(finvizSrv.Close)

	cfg := &config.Config{}
	cfg.Upstream.YahooBaseURL = yahooSrv.URL
	cfg.Upstream.FinvizBaseURL = finvizSrv.URL
	cfg.Upstream.MaxInflightCalls = 4

	return NewServer(cfg, "test")
}

func doRequest(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) APIResponse {
	t.Helper()
	var resp APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

const chartBody = `{"chart":{"result":[{"meta":{"symbol":"AAPL"},
	"timestamp":[1704205800,1704292200],
	"indicators":{"quote":[{"open":[99,100],"high":[101,102],"low":[98,99],
	"close":[100,101],"volume":[1000,2000]}]}}],"error":null}}`

const quotePage = `<html><body>
	<div class="quote-links"><div>
		<a href="screener.ashx?f=sec_technology">Technology</a>
	</div></div>
	<table class="snapshot-table2"><tr>
		<td>Index</td><td>DJIA, S&amp;P 500</td>
		<td>EPS Q/Q</td><td>5.00%</td>
	</tr></table>
</body></html>`

const metaBody = `{"quoteSummary":{"result":[{
	"price":{"symbol":"AAPL","longName":"Apple Inc.","fullExchangeName":"NasdaqGS"},
	"summaryDetail":{"trailingPE":{"raw":29.1}}
}],"error":null}}`

// --- Health ---

func TestHealth(t *testing.T) {
	srv := newTestServer(t, `{}`, `<html></html>`)

	rec := doRequest(t, srv, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Error("health should report success")
	}
}

// --- History ---

func TestHistoryPlainIsCSVText(t *testing.T) {
	srv := newTestServer(t, chartBody, quotePage)

	rec := doRequest(t, srv, "/history/AAPL?period=1y")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("plain response must not be an attachment")
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "date,open,high,low,close,volume" {
		t.Errorf("header line = %q", lines[0])
	}
	if len(lines) != 3 {
		t.Errorf("got %d lines, want header + 2 bars", len(lines))
	}
}

func TestHistoryCSVIsAttachment(t *testing.T) {
	srv := newTestServer(t, chartBody, quotePage)

	rec := doRequest(t, srv, "/history/AAPL?period=1y&type=csv")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	cd := rec.Header().Get("Content-Disposition")
	if cd != "attachment; filename=AAPL_history.csv" {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q, want text/csv", ct)
	}
}

func TestHistoryModelIsJSON(t *testing.T) {
	srv := newTestServer(t, chartBody, quotePage)

	rec := doRequest(t, srv, "/history/AAPL?period=1y&type=model")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("error: %s", resp.Error)
	}
	bars, ok := resp.Data.([]interface{})
	if !ok {
		t.Fatalf("data is %T, want array", resp.Data)
	}
	if len(bars) != 2 {
		t.Errorf("got %d bars, want 2", len(bars))
	}
}

func TestHistoryRangeAndPeriodConflict(t *testing.T) {
	srv := newTestServer(t, chartBody, quotePage)

	rec := doRequest(t, srv, "/history/AAPL?start=2024-01-01&end=2024-02-01&period=1y")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success {
		t.Error("conflicting params must not succeed")
	}
}

func TestHistoryInvalidResponseType(t *testing.T) {
	srv := newTestServer(t, chartBody, quotePage)

	rec := doRequest(t, srv, "/history/AAPL?type=xml")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- Financial statements ---

func TestStatementInvalidCadence(t *testing.T) {
	srv := newTestServer(t, `{}`, quotePage)

	rec := doRequest(t, srv, "/financials/income/AAPL?cadence=weekly")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestStatementPlain(t *testing.T) {
	body := `{"quoteSummary":{"result":[{"incomeStatementHistory":{"incomeStatementHistory":[
		{"endDate":{"fmt":"2023-12-31"},"totalRevenue":{"raw":200},"netIncome":{"raw":20}},
		{"endDate":{"fmt":"2022-12-31"},"totalRevenue":{"raw":100},"netIncome":{"raw":10}}
	]}}],"error":null}}`
	srv := newTestServer(t, body, quotePage)

	rec := doRequest(t, srv, "/financials/income/AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "line_item,2022-12-31,2023-12-31" {
		t.Errorf("header = %q, want ascending periods", lines[0])
	}
}

// --- Tags ---

func TestTagsStructuralFailureIsBadGateway(t *testing.T) {
	srv := newTestServer(t, `{}`, `<html><body><p>layout changed</p></body></html>`)

	rec := doRequest(t, srv, "/tags/AAPL")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	resp := decodeResponse(t, rec)
	if resp.Success || resp.Error == "" {
		t.Error("structural failure must carry an error message")
	}
}

func TestTagsPlain(t *testing.T) {
	srv := newTestServer(t, `{}`, quotePage)

	rec := doRequest(t, srv, "/tags/AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Technology") {
		t.Errorf("body missing tag: %s", rec.Body.String())
	}
}

// --- News ---

func TestNewsInvalidSource(t *testing.T) {
	srv := newTestServer(t, `{}`, quotePage)

	rec := doRequest(t, srv, "/news/AAPL?source=reddit")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// --- Composite metadata ---

func TestMetaInfoMergesBothSources(t *testing.T) {
	srv := newTestServer(t, metaBody, quotePage)

	rec := doRequest(t, srv, "/metainfo/AAPL?type=model")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decodeResponse(t, rec)
	if !resp.Success {
		t.Fatalf("error: %s", resp.Error)
	}

	meta, ok := resp.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data is %T, want object", resp.Data)
	}
	if meta["ticker"] != "AAPL" {
		t.Errorf("ticker = %v", meta["ticker"])
	}
	if meta["name"] != "Apple Inc." {
		t.Errorf("name = %v", meta["name"])
	}
	// The scraped source contributed disjoint fields.
	idx, _ := meta["index_participation"].([]interface{})
	if len(idx) != 2 {
		t.Errorf("index participation = %v, want 2 entries", meta["index_participation"])
	}
	if meta["eps_growth_qoq"] != 0.05 {
		t.Errorf("eps_growth_qoq = %v, want 0.05", meta["eps_growth_qoq"])
	}
}

func TestMetaInfoMissingIdentityIsValidationError(t *testing.T) {
	// The structured source returns a payload without price identity fields.
	srv := newTestServer(t, `{"quoteSummary":{"result":[{"summaryDetail":{}}],"error":null}}`, quotePage)

	rec := doRequest(t, srv, "/metainfo/AAPL")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}

// --- Filings ---

func TestFilingsPlain(t *testing.T) {
	body := `{"quoteSummary":{"result":[{"secFilings":{"filings":[
		{"date":"2024-05-02","type":"10-Q","title":"Quarterly Report","edgarUrl":"https://www.sec.gov/1"}
	]}}],"error":null}}`
	srv := newTestServer(t, body, quotePage)

	rec := doRequest(t, srv, "/financials/sec/AAPL")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if lines[0] != "date,type,title,link" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Errorf("got %d lines, want 2", len(lines))
	}
}
