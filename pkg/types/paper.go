// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model and configuration structs.
package types

// Author holds one author from a PubMed record.
type Author struct {
	// Name is the display name ("ForeName LastName").
	Name string `json:"name" yaml:"name"`

	// Affiliation is the raw affiliation text, possibly empty.
	Affiliation string `json:"affiliation,omitempty" yaml:"affiliation,omitempty"`
}

// Paper is one output row: the fixed metadata schema extracted per paper.
type Paper struct {
	// PubmedID is the PMID. Non-empty and unique within one run's output.
	PubmedID string `json:"pubmed_id" yaml:"pubmed_id"`

	// Title is the article title.
	Title string `json:"title" yaml:"title"`

	// PublicationDate is an ISO-8601 date string. PubMed dates are often
	// partial, so this may be "2024-05-17", "2024-05", "2024", or empty.
	PublicationDate string `json:"publication_date,omitempty" yaml:"publication_date,omitempty"`

	// NonAcademicAuthors lists authors whose affiliation was classified
	// as non-academic, in source order.
	NonAcademicAuthors []string `json:"non_academic_authors,omitempty" yaml:"non_academic_authors,omitempty"`

	// CompanyAffiliations lists the distinct affiliation strings behind
	// NonAcademicAuthors, in first-seen order.
	CompanyAffiliations []string `json:"company_affiliations,omitempty" yaml:"company_affiliations,omitempty"`

	// CorrespondingEmail is the first email address found in any
	// affiliation text, or empty when none is listed.
	CorrespondingEmail string `json:"corresponding_email,omitempty" yaml:"corresponding_email,omitempty"`
}
