// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"regexp"
	"strings"
)

// academicKeywords marks an affiliation as academic when any of them appears
// (case-insensitive substring match). An affiliation with no recognized
// academic keyword is classified as a company affiliation.
//
// This is a best-effort heuristic, not ground truth: affiliation strings are
// free text, and both false positives (a company with "Department of
// Research" in its address) and false negatives (an institution the list
// does not cover) occur.
var academicKeywords = []string{
	"university",
	"univ.",
	"college",
	"school",
	"institute",
	"institut",
	"hospital",
	"clinic",
	"academy",
	"academia",
	"faculty",
	"department",
	"dept",
	"center for",
	"centre for",
	"laboratoire",
	"cnrs",
	"inserm",
}

// IsAcademic reports whether the affiliation text matches a recognized
// academic-institution keyword.
func IsAcademic(affiliation string) bool {
	lower := strings.ToLower(affiliation)
	for _, kw := range academicKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var emailRe = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

// extractEmail returns the first email address embedded in the affiliation
// text, or "" when none is present. PubMed appends the corresponding
// author's email to an affiliation string rather than marking it explicitly.
func extractEmail(affiliation string) string {
	return emailRe.FindString(affiliation)
}
