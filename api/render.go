package api

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/tigerding/stockapi/internal/metainfo"
	"github.com/tigerding/stockapi/pkg/models"
)

// table is the tabular form of a result, shared by the plain and csv
// representations.
type table struct {
	header []string
	rows   [][]string
}

// render writes the result in the requested representation. Plain and csv
// both serialize the table as CSV; csv additionally marks the response as a
// downloadable attachment. Model wraps the typed record in the JSON envelope.
func render(w http.ResponseWriter, rt models.ResponseType, filename string, tbl table, model interface{}) {
	switch rt {
	case models.ResponseModel:
		writeJSON(w, http.StatusOK, APIResponse{Success: true, Data: model})
		return
	case models.ResponseCSV:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", filename))
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(tbl.header); err != nil {
		log.Printf("failed to write CSV header: %v", err)
		return
	}
	if err := cw.WriteAll(tbl.rows); err != nil {
		log.Printf("failed to write CSV rows: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to write JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, APIResponse{
		Success: false,
		Error:   msg,
	})
}

// --- Table builders ---

func barsTable(bars []models.PriceBar) table {
	tbl := table{header: []string{"date", "open", "high", "low", "close", "volume"}}
	for _, b := range bars {
		tbl.rows = append(tbl.rows, []string{
			b.Date.Format("2006-01-02"),
			fmtFloat(b.Open),
			fmtFloat(b.High),
			fmtFloat(b.Low),
			fmtFloat(b.Close),
			strconv.FormatInt(b.Volume, 10),
		})
	}
	return tbl
}

func statementTable(fs *models.FinancialStatement) table {
	tbl := table{header: append([]string{"line_item"}, fs.Periods...)}
	for i, label := range fs.LineItems {
		row := make([]string, 0, len(fs.Periods)+1)
		row = append(row, label)
		for _, v := range fs.Values[i] {
			row = append(row, fmtFloat(v))
		}
		tbl.rows = append(tbl.rows, row)
	}
	return tbl
}

func filingsTable(filings []models.SECFiling) table {
	tbl := table{header: []string{"date", "type", "title", "link"}}
	for _, f := range filings {
		tbl.rows = append(tbl.rows, []string{
			f.Date.Format("2006-01-02"), f.Type, f.Title, f.Link,
		})
	}
	return tbl
}

func tagsTable(tags []models.Tag) table {
	tbl := table{header: []string{"name", "link"}}
	for _, t := range tags {
		tbl.rows = append(tbl.rows, []string{t.Name, t.Link})
	}
	return tbl
}

func newsTable(items []models.NewsItem) table {
	tbl := table{header: []string{"date", "title", "link", "publisher", "thumbnail"}}
	for _, n := range items {
		tbl.rows = append(tbl.rows, []string{
			n.Date.Format("2006-01-02 15:04"),
			n.Title, n.Link, n.Publisher, n.ThumbnailSrc,
		})
	}
	return tbl
}

func metaTable(meta *models.StockMetaInfo) table {
	tbl := table{header: []string{"key", "value"}}
	for _, row := range metainfo.Table(meta) {
		tbl.rows = append(tbl.rows, []string{row.Key, row.Value})
	}
	return tbl
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
