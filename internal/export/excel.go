// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// sheetName matches the sheet title the original tool wrote.
const sheetName = "PubMed Papers"

// WriteXLSX writes papers to an Excel workbook at path with a single sheet
// holding the same columns as the CSV export.
func WriteXLSX(papers []types.Paper, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, 1, Header); err != nil {
		return err
	}
	for i, p := range papers {
		if err := setRow(f, i+2, Record(p)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// setRow writes cells into the 1-based worksheet row.
func setRow(f *excelize.File, row int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("computing cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}

// ReadXLSX loads a previously exported workbook back into rows.
func ReadXLSX(path string) ([]types.Paper, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: missing header row", path)
	}

	var papers []types.Paper
	for _, rec := range rows[1:] {
		// GetRows drops trailing empty cells; pad back to full width.
		for len(rec) < len(Header) {
			rec = append(rec, "")
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
