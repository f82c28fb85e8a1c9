// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export serializes extracted rows to CSV, an Excel workbook, or
// the console.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Header is the output column set, in order. The names match the original
// tool's CSV header exactly.
var Header = []string{
	"PubmedID",
	"Title",
	"Publication Date",
	"Non-academic Author(s)",
	"Company Affiliation(s)",
	"Corresponding Author Email",
}

// listSep joins multi-valued fields within one cell.
const listSep = "; "

// Record flattens a row into cell strings matching Header order.
func Record(p types.Paper) []string {
	return []string{
		p.PubmedID,
		p.Title,
		p.PublicationDate,
		strings.Join(p.NonAcademicAuthors, listSep),
		strings.Join(p.CompanyAffiliations, listSep),
		p.CorrespondingEmail,
	}
}

// SplitList is the inverse of the multi-value join, used when re-reading
// exported files.
func SplitList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, listSep)
}

// Write serializes papers to cfg.Path in cfg.Format. An empty result set
// still produces a valid file with the header row. Filesystem failures are
// returned wrapped; the caller treats them as fatal.
func Write(papers []types.Paper, cfg types.ExportConfig) error {
	switch cfg.Format {
	case types.FormatCSV:
		return WriteCSV(papers, cfg.Path)
	case types.FormatXLSX:
		return WriteXLSX(papers, cfg.Path)
	default:
		return fmt.Errorf("unsupported format %q: use csv or xlsx", cfg.Format)
	}
}

// DetectFormat resolves the output format from an explicit flag value or,
// when the flag is empty, from the file extension. CSV is the default for
// unrecognized extensions.
func DetectFormat(flag, path string) (types.ExportFormat, error) {
	switch flag {
	case "csv":
		return types.FormatCSV, nil
	case "xlsx", "excel":
		return types.FormatXLSX, nil
	case "":
	default:
		return "", fmt.Errorf("unsupported format %q: use csv or xlsx", flag)
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return types.FormatXLSX, nil
	}
	return types.FormatCSV, nil
}
