// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// WriteCSV writes papers to a CSV file at path, creating or overwriting it.
func WriteCSV(papers []types.Paper, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for _, p := range papers {
		if err := w.Write(Record(p)); err != nil {
			f.Close()
			return fmt.Errorf("writing CSV row %s: %w", p.PubmedID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing CSV: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

// ReadCSV loads a previously exported CSV file back into rows. Used by
// tests and by re-export from saved output.
func ReadCSV(path string) ([]types.Paper, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	var papers []types.Paper
	for _, rec := range records[1:] {
		if len(rec) != len(Header) {
			return nil, fmt.Errorf("%s: row has %d columns, want %d", path, len(rec), len(Header))
		}
		papers = append(papers, types.Paper{
			PubmedID:            rec[0],
			Title:               rec[1],
			PublicationDate:     rec[2],
			NonAcademicAuthors:  SplitList(rec[3]),
			CompanyAffiliations: SplitList(rec[4]),
			CorrespondingEmail:  rec[5],
		})
	}
	return papers, nil
}
