// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// QueryFile is the on-disk representation of a search and its extracted
// rows. A run can be saved to a file and re-exported later without
// re-querying the API.
type QueryFile struct {
	Query   QueryParams     `yaml:"query"`
	Config  QueryFileConfig `yaml:"config"`
	Papers  []types.Paper   `yaml:"papers"`
	Summary QuerySummary    `yaml:"summary"`
}

// QueryParams stores the query parameters in a serializable form.
type QueryParams struct {
	Term     string `yaml:"term"`
	DateFrom string `yaml:"date_from,omitempty"`
	DateTo   string `yaml:"date_to,omitempty"`
}

// QueryFileConfig stores the fetch configuration that produced the rows.
type QueryFileConfig struct {
	MaxResults int `yaml:"max_results"`
}

// QuerySummary stores run statistics and a timestamp.
type QuerySummary struct {
	Matched   int       `yaml:"matched"`
	Rows      int       `yaml:"rows"`
	Skipped   int       `yaml:"skipped"`
	Excluded  int       `yaml:"excluded"`
	Timestamp time.Time `yaml:"timestamp"`
}

const queryFileDateFmt = "2006-01-02"

// WriteQueryFile saves query parameters and extracted rows to a YAML file.
func WriteQueryFile(path string, query Query, cfg types.EntrezConfig, papers []types.Paper, matched, skipped, excluded int) error {
	qf := QueryFile{
		Query: QueryParams{
			Term: query.Term,
		},
		Config: QueryFileConfig{
			MaxResults: cfg.MaxResults,
		},
		Papers: papers,
		Summary: QuerySummary{
			Matched:   matched,
			Rows:      len(papers),
			Skipped:   skipped,
			Excluded:  excluded,
			Timestamp: time.Now(),
		},
	}

	if !query.DateFrom.IsZero() {
		qf.Query.DateFrom = query.DateFrom.Format(queryFileDateFmt)
	}
	if !query.DateTo.IsZero() {
		qf.Query.DateTo = query.DateTo.Format(queryFileDateFmt)
	}

	data, err := yaml.Marshal(&qf)
	if err != nil {
		return fmt.Errorf("marshaling query file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadQueryFile loads a previously saved query file from disk.
func ReadQueryFile(path string) (*QueryFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading query file: %w", err)
	}
	var qf QueryFile
	if err := yaml.Unmarshal(data, &qf); err != nil {
		return nil, fmt.Errorf("parsing query file: %w", err)
	}
	return &qf, nil
}

// ToQuery converts stored QueryParams back into a Query struct.
func (p QueryParams) ToQuery() (Query, error) {
	q := Query{Term: p.Term}
	if p.DateFrom != "" {
		t, err := time.Parse(queryFileDateFmt, p.DateFrom)
		if err != nil {
			return q, fmt.Errorf("invalid date_from %q: %w", p.DateFrom, err)
		}
		q.DateFrom = t
	}
	if p.DateTo != "" {
		t, err := time.Parse(queryFileDateFmt, p.DateTo)
		if err != nil {
			return q, fmt.Errorf("invalid date_to %q: %w", p.DateTo, err)
		}
		q.DateTo = t
	}
	return q, nil
}
