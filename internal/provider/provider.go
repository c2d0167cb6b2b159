// Package provider defines the contracts shared by the data source adapters:
// the error taxonomy every adapter recovers into, and the canonical request
// parameters the routing layer hands them.
package provider

import (
	"fmt"
	"time"

	"github.com/tigerding/stockapi/pkg/models"
)

// --- Error taxonomy ---
//
// Every adapter failure is classified into exactly one of the kinds below
// before it crosses the adapter boundary; nothing propagates as an
// unclassified fault.

// ErrBadInput is a client input error: malformed date, conflicting
// parameters. Never retried.
type ErrBadInput struct {
	Detail string
}

func (e *ErrBadInput) Error() string {
	return fmt.Sprintf("bad request: %s", e.Detail)
}

// ErrUpstream is a transient upstream failure during a fetch: network error,
// unknown ticker, rate limit. Sub-causes are not distinguished.
type ErrUpstream struct {
	Source string // "yahoo" or "finviz"
	Err    error
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Source, e.Err)
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrStructure signals that an expected HTML region was absent from a
// scraped document: the markup has drifted (or the ticker page is a
// placeholder) and the extraction rule needs updating. Distinct from
// ErrUpstream because retrying will not help.
type ErrStructure struct {
	Source string
	Detail string
}

func (e *ErrStructure) Error() string {
	return fmt.Sprintf("%s page structure: %s", e.Source, e.Detail)
}

// ErrValidation is raised when fetched or merged data cannot populate the
// canonical record shape.
type ErrValidation struct {
	Detail string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation: %s", e.Detail)
}

// --- History request ---

// HistoryRequest is the canonical price-history request: an explicit
// start/end pair or a named period, never both.
type HistoryRequest struct {
	Start  *time.Time
	End    *time.Time
	Period models.Period
}

// ParseHistoryRequest builds a HistoryRequest from raw query strings,
// enforcing the mutual exclusion between an explicit date range and a named
// period. With neither supplied the period defaults to max.
func ParseHistoryRequest(startStr, endStr, periodStr string) (HistoryRequest, error) {
	var req HistoryRequest

	if periodStr != "" {
		p, ok := models.ParsePeriod(periodStr)
		if !ok {
			return req, &ErrBadInput{Detail: fmt.Sprintf("unknown period %q", periodStr)}
		}
		req.Period = p
	}

	if startStr != "" {
		t, err := time.Parse("2006-01-02", startStr)
		if err != nil {
			return req, &ErrBadInput{Detail: fmt.Sprintf("bad start date %q: use YYYY-MM-DD", startStr)}
		}
		req.Start = &t
	}
	if endStr != "" {
		t, err := time.Parse("2006-01-02", endStr)
		if err != nil {
			return req, &ErrBadInput{Detail: fmt.Sprintf("bad end date %q: use YYYY-MM-DD", endStr)}
		}
		req.End = &t
	}

	if req.Period != "" && req.Start != nil && req.End != nil {
		return req, &ErrBadInput{Detail: "supply either start/end or period, not both"}
	}

	// Default to the full history when no usable constraint was given.
	if req.Period == "" && (req.Start == nil || req.End == nil) {
		req.Period = models.PeriodMax
	}

	return req, nil
}

// HasRange reports whether the request carries an explicit date range.
func (r HistoryRequest) HasRange() bool {
	return r.Start != nil && r.End != nil
}
