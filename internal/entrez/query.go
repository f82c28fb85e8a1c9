// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package entrez queries the PubMed/Entrez E-utilities API: ESearch for
// matching PMIDs, EFetch for the full article records.
package entrez

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// ErrEmptyQuery is returned when a query has no search term.
var ErrEmptyQuery = errors.New("empty query: provide a search term")

// Query holds the search parameters. Built by the caller, immutable once
// handed to the client.
type Query struct {
	Term     string
	DateFrom time.Time
	DateTo   time.Time
}

// Validate reports whether the query is usable. A whitespace-only term is
// treated as empty.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Term) == "" {
		return ErrEmptyQuery
	}
	return nil
}

const dateFmt = "2006/01/02"

// params encodes the query into Entrez ESearch parameters. Date bounds map
// to mindate/maxdate with datetype=pdat (publication date).
func (q Query) params() url.Values {
	v := url.Values{
		"term": {strings.TrimSpace(q.Term)},
	}
	if !q.DateFrom.IsZero() || !q.DateTo.IsZero() {
		v.Set("datetype", "pdat")
	}
	if !q.DateFrom.IsZero() {
		v.Set("mindate", q.DateFrom.Format(dateFmt))
	}
	if !q.DateTo.IsZero() {
		v.Set("maxdate", q.DateTo.Format(dateFmt))
	}
	return v
}
