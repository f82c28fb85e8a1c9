// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract maps raw EFetch records into the fixed output schema and
// applies the non-academic-author / company-affiliation classification.
package extract

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-papers/internal/entrez"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// Row converts one raw article into an output row. It is pure and
// deterministic. An error means the record lacks a required field (PMID or
// title) and should be skipped, not that the run failed.
func Row(a entrez.Article) (types.Paper, error) {
	pmid := strings.TrimSpace(a.PMID)
	title := strings.TrimSpace(a.Title)
	if pmid == "" {
		return types.Paper{}, fmt.Errorf("record missing PMID")
	}
	if title == "" {
		return types.Paper{}, fmt.Errorf("record %s missing title", pmid)
	}

	p := types.Paper{
		PubmedID:        pmid,
		Title:           title,
		PublicationDate: formatDate(a),
	}

	seenAffil := make(map[string]bool)
	for _, author := range a.Authors {
		name := authorName(author)
		for _, affil := range author.Affiliations {
			affil = strings.TrimSpace(affil)
			if affil == "" {
				continue
			}
			if p.CorrespondingEmail == "" {
				p.CorrespondingEmail = extractEmail(affil)
			}
			if IsAcademic(affil) {
				continue
			}
			if name != "" && !contains(p.NonAcademicAuthors, name) {
				p.NonAcademicAuthors = append(p.NonAcademicAuthors, name)
			}
			if !seenAffil[affil] {
				seenAffil[affil] = true
				p.CompanyAffiliations = append(p.CompanyAffiliations, affil)
			}
		}
	}

	return p, nil
}

// Rows converts a batch of raw articles into output rows. Records that
// fail extraction are skipped with a warning and never abort the run;
// duplicate PMIDs are dropped (first occurrence wins). Papers with no
// non-academic author are excluded from the output set, since the tool
// reports industry-affiliated papers only. The skipped return value counts
// parse skips and duplicates; excluded counts academic-only papers.
func Rows(articles []entrez.Article, w io.Writer) (papers []types.Paper, skipped, excluded int) {
	seen := make(map[string]bool)

	for _, a := range articles {
		p, err := Row(a)
		if err != nil {
			fmt.Fprintf(w, "warning: skipping record: %v\n", err)
			skipped++
			continue
		}
		if seen[p.PubmedID] {
			fmt.Fprintf(w, "warning: skipping duplicate PMID %s\n", p.PubmedID)
			skipped++
			continue
		}
		seen[p.PubmedID] = true
		if len(p.CompanyAffiliations) == 0 {
			excluded++
			continue
		}
		papers = append(papers, p)
	}
	return papers, skipped, excluded
}

// authorName joins ForeName and LastName, falling back to the collective
// name for consortium authors.
func authorName(a entrez.RecordAuthor) string {
	name := strings.TrimSpace(strings.TrimSpace(a.ForeName) + " " + strings.TrimSpace(a.LastName))
	if name == "" {
		name = strings.TrimSpace(a.CollectiveName)
	}
	return name
}

// formatDate normalizes the publication date to an ISO-8601 prefix string:
// "2024-05-17", "2024-05", "2024", or "" when no date is present. The
// electronic ArticleDate is preferred; the journal issue PubDate is the
// fallback.
func formatDate(a entrez.Article) string {
	d := a.ArticleDate
	if d.IsZero() {
		d = a.JournalPubDate
	}

	year, err := strconv.Atoi(strings.TrimSpace(d.Year))
	if err != nil {
		return ""
	}

	month := parseMonth(d.Month)
	if month == 0 {
		return fmt.Sprintf("%04d", year)
	}

	day, err := strconv.Atoi(strings.TrimSpace(d.Day))
	if err != nil || day < 1 || day > 31 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// parseMonth accepts numeric months ("5", "05") and English abbreviations
// ("May"), both of which appear in PubMed PubDate elements. Returns 0 when
// the month is absent or unrecognized.
func parseMonth(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n >= 1 && n <= 12 {
			return n
		}
		return 0
	}
	if t, err := time.Parse("Jan", s); err == nil {
		return int(t.Month())
	}
	return 0
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
