// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/pubmed-papers/pkg/types"
)

func testCfg() types.EntrezConfig {
	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   10 * time.Second,
			UserAgent: "test/0.1",
		},
		MaxResults: 20,
		Tool:       "pubmed-papers-test",
	}
}

// withEndpoint points both E-utilities endpoints at ts for the duration of
// the test.
func withEndpoint(t *testing.T, ts *httptest.Server) {
	t.Helper()
	oldSearch, oldFetch := esearchBase, efetchBase
	esearchBase = ts.URL + "/esearch.fcgi"
	efetchBase = ts.URL + "/efetch.fcgi"
	t.Cleanup(func() {
		esearchBase = oldSearch
		efetchBase = oldFetch
	})
}

const sampleArticleSet = `<?xml version="1.0" ?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">36000001</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>May</Month><Day>7</Day></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Targeted degradation of oncogenic drivers</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Doe</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>Acme Pharma Inc., Boston, MA, USA. jane.doe@acmepharma.com.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Smith</LastName>
            <ForeName>John</ForeName>
            <AffiliationInfo>
              <Affiliation>Dept. of Biology, MIT, Cambridge, MA, USA.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">36000002</PMID>
      <Article>
        <ArticleTitle>A second record</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestSearchReturnsIDs(t *testing.T) {
	var gotParams url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		fmt.Fprint(w, `{"esearchresult":{"count":"2","idlist":["36000001","36000002"]}}`)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	c := NewClient(testCfg())
	ids, err := c.Search(context.Background(), Query{Term: "python tooling"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(ids) != 2 || ids[0] != "36000001" {
		t.Errorf("Search() = %v, want two PMIDs", ids)
	}

	if gotParams.Get("db") != "pubmed" {
		t.Errorf("db = %q, want pubmed", gotParams.Get("db"))
	}
	if gotParams.Get("retmode") != "json" {
		t.Errorf("retmode = %q, want json", gotParams.Get("retmode"))
	}
	if gotParams.Get("retmax") != "20" {
		t.Errorf("retmax = %q, want 20", gotParams.Get("retmax"))
	}
	if gotParams.Get("term") != "python tooling" {
		t.Errorf("term = %q", gotParams.Get("term"))
	}
	if gotParams.Get("tool") != "pubmed-papers-test" {
		t.Errorf("tool = %q", gotParams.Get("tool"))
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	c := NewClient(testCfg())
	_, err := c.Search(context.Background(), Query{})
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("Search() error = %v, want ErrEmptyQuery", err)
	}
}

func TestSearchNoMatches(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"esearchresult":{"count":"0","idlist":[]}}`)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	c := NewClient(testCfg())
	ids, err := c.Search(context.Background(), Query{Term: "zzzznomatch"})
	if err != nil {
		t.Fatalf("Search() error = %v, zero matches must not be an error", err)
	}
	if len(ids) != 0 {
		t.Errorf("Search() = %v, want empty", ids)
	}
}

func TestSearchUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	c := NewClient(testCfg())
	_, err := c.Search(context.Background(), Query{Term: "anything"})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("Search() error = %v, want ErrUpstream", err)
	}
}

func TestSearchNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	withEndpoint(t, ts)
	ts.Close() // force a transport failure

	c := NewClient(testCfg())
	_, err := c.Search(context.Background(), Query{Term: "anything"})
	if err == nil {
		t.Fatal("Search() expected transport error")
	}
	if errors.Is(err, ErrUpstream) {
		t.Errorf("transport failure should not be classified as upstream error: %v", err)
	}
}

func TestFetchParsesArticles(t *testing.T) {
	var gotParams url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		fmt.Fprint(w, sampleArticleSet)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	c := NewClient(testCfg())
	articles, err := c.Fetch(context.Background(), []string{"36000001", "36000002"})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	a := articles[0]
	if a.PMID != "36000001" {
		t.Errorf("PMID = %q", a.PMID)
	}
	if a.Title != "Targeted degradation of oncogenic drivers" {
		t.Errorf("Title = %q", a.Title)
	}
	if len(a.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(a.Authors))
	}
	if a.Authors[0].ForeName != "Jane" || a.Authors[0].LastName != "Doe" {
		t.Errorf("author = %+v", a.Authors[0])
	}
	if len(a.Authors[0].Affiliations) != 1 {
		t.Fatalf("affiliations = %v", a.Authors[0].Affiliations)
	}
	if a.JournalPubDate.Year != "2024" || a.JournalPubDate.Month != "May" {
		t.Errorf("pub date = %+v", a.JournalPubDate)
	}

	if gotParams.Get("id") != "36000001,36000002" {
		t.Errorf("id = %q, want comma-joined PMIDs", gotParams.Get("id"))
	}
	if gotParams.Get("retmode") != "xml" {
		t.Errorf("retmode = %q, want xml", gotParams.Get("retmode"))
	}
}

func TestFetchNoIDs(t *testing.T) {
	c := NewClient(testCfg())
	articles, err := c.Fetch(context.Background(), nil)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if articles != nil {
		t.Errorf("Fetch() = %v, want nil without network calls", articles)
	}
}

func TestFetchAllChunks(t *testing.T) {
	var requests int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&requests, 1)
		fmt.Fprint(w, `<PubmedArticleSet></PubmedArticleSet>`)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	ids := make([]string, 150)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", 36000000+i)
	}

	c := NewClient(testCfg())
	_, err := c.FetchAll(context.Background(), ids, io.Discard, false)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if got := atomic.LoadInt32(&requests); got != 2 {
		t.Errorf("requests = %d, want 2 chunks for 150 PMIDs", got)
	}
}

func TestCommonParamsIncludeCredentials(t *testing.T) {
	var gotParams url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotParams = r.URL.Query()
		fmt.Fprint(w, `{"esearchresult":{"count":"0","idlist":[]}}`)
	}))
	defer ts.Close()
	withEndpoint(t, ts)

	cfg := testCfg()
	cfg.APIKey = "nk_secret"
	cfg.Email = "user@example.com"

	c := NewClient(cfg)
	if _, err := c.Search(context.Background(), Query{Term: "x"}); err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotParams.Get("api_key") != "nk_secret" {
		t.Errorf("api_key = %q", gotParams.Get("api_key"))
	}
	if gotParams.Get("email") != "user@example.com" {
		t.Errorf("email = %q", gotParams.Get("email"))
	}
}
