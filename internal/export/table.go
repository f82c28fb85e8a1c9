// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// FormatTable writes rows as a human-readable aligned table to w. Column
// widths use display width rather than byte length so titles with CJK or
// accented characters stay aligned.
func FormatTable(papers []types.Paper, w io.Writer) {
	if len(papers) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	headers := []string{"PubmedID", "Title", "Date", "Non-academic Author(s)", "Company Affiliation(s)"}
	rows := make([][]string, len(papers))
	for i, p := range papers {
		rows[i] = []string{
			p.PubmedID,
			truncate(p.Title, 50),
			p.PublicationDate,
			truncate(strings.Join(p.NonAcademicAuthors, listSep), 30),
			truncate(strings.Join(p.CompanyAffiliations, listSep), 40),
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow(w, headers, widths)
	var total int
	for _, width := range widths {
		total += width + 2
	}
	fmt.Fprintln(w, strings.Repeat("-", total))
	for _, row := range rows {
		writeRow(w, row, widths)
	}

	fmt.Fprintf(w, "\n%d result(s)\n", len(papers))
}

// writeRow pads each cell to its column width by display width.
func writeRow(w io.Writer, cells []string, widths []int) {
	for i, cell := range cells {
		fmt.Fprint(w, runewidth.FillRight(cell, widths[i]))
		if i < len(cells)-1 {
			fmt.Fprint(w, "  ")
		}
	}
	fmt.Fprintln(w)
}

// truncate shortens s to max display width, appending "..." when cut.
func truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

// FormatJSON writes rows as indented JSON to w.
func FormatJSON(papers []types.Paper, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(papers)
}
