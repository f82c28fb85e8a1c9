// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

// EFetch XML structures (PubmedArticleSet). These hold the raw per-paper
// payload; field extraction into output rows happens in internal/extract.

// Article is one raw PubmedArticle record as returned by EFetch.
type Article struct {
	PMID           string         `xml:"MedlineCitation>PMID"`
	Title          string         `xml:"MedlineCitation>Article>ArticleTitle"`
	ArticleDate    RecordDate     `xml:"MedlineCitation>Article>ArticleDate"`
	JournalPubDate RecordDate     `xml:"MedlineCitation>Article>Journal>JournalIssue>PubDate"`
	Authors        []RecordAuthor `xml:"MedlineCitation>Article>AuthorList>Author"`
}

// RecordDate is a possibly partial date. Month may be numeric ("05") or an
// English abbreviation ("May"); Month and Day may be absent entirely.
type RecordDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

// IsZero reports whether no date component is present.
func (d RecordDate) IsZero() bool {
	return d.Year == "" && d.Month == "" && d.Day == ""
}

// RecordAuthor is one AuthorList entry. Consortium authors carry a
// CollectiveName instead of ForeName/LastName.
type RecordAuthor struct {
	LastName       string   `xml:"LastName"`
	ForeName       string   `xml:"ForeName"`
	CollectiveName string   `xml:"CollectiveName"`
	Affiliations   []string `xml:"AffiliationInfo>Affiliation"`
}

// articleSet is the EFetch response envelope.
type articleSet struct {
	Articles []Article `xml:"PubmedArticle"`
}
