// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package entrez

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pdiddy/pubmed-papers/internal/httputil"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

// E-utilities endpoints. Declared as vars so tests can substitute an
// httptest server.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// ErrUpstream is wrapped into errors for non-success HTTP statuses from
// the E-utilities, so callers can distinguish API failures from transport
// failures.
var ErrUpstream = errors.New("entrez API error")

// fetchChunkSize caps the number of PMIDs joined into one EFetch request.
const fetchChunkSize = 100

// Client performs Entrez API calls. All requests carry the configured
// User-Agent, tool name, and (when present) API key and contact email.
type Client struct {
	HTTP *http.Client
	Cfg  types.EntrezConfig
}

// NewClient builds a Client with a bounded request timeout.
func NewClient(cfg types.EntrezConfig) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: cfg.Timeout},
		Cfg:  cfg,
	}
}

// Search runs ESearch and returns the matching PMIDs, most recent first
// (Entrez default order). A query that matches nothing returns an empty
// list, not an error.
func (c *Client) Search(ctx context.Context, query Query) ([]string, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	retmax := c.Cfg.MaxResults
	if retmax <= 0 {
		retmax = 50
	}

	params := query.params()
	params.Set("retmode", "json")
	params.Set("retmax", fmt.Sprintf("%d", retmax))
	c.addCommonParams(params)

	body, err := c.get(ctx, esearchBase, params, "ESearch")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var er esearchResponse
	if err := json.NewDecoder(body).Decode(&er); err != nil {
		return nil, fmt.Errorf("parsing ESearch response: %w", err)
	}
	return er.Result.IDList, nil
}

// Fetch runs one EFetch request for up to fetchChunkSize PMIDs and returns
// the raw article records.
func (c *Client) Fetch(ctx context.Context, pmids []string) ([]Article, error) {
	if len(pmids) == 0 {
		return nil, nil
	}

	params := url.Values{
		"id":      {strings.Join(pmids, ",")},
		"retmode": {"xml"},
	}
	c.addCommonParams(params)

	body, err := c.get(ctx, efetchBase, params, "EFetch")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var set articleSet
	if err := xml.NewDecoder(body).Decode(&set); err != nil {
		return nil, fmt.Errorf("parsing EFetch response: %w", err)
	}
	return set.Articles, nil
}

// FetchAll fetches records for all PMIDs in chunks, applying the configured
// delay between consecutive requests. Progress is written to w when debug
// is set.
func (c *Client) FetchAll(ctx context.Context, pmids []string, w io.Writer, debug bool) ([]Article, error) {
	var articles []Article
	for start := 0; start < len(pmids); start += fetchChunkSize {
		if start > 0 && c.Cfg.FetchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.Cfg.FetchDelay):
			}
		}

		end := start + fetchChunkSize
		if end > len(pmids) {
			end = len(pmids)
		}
		if debug {
			fmt.Fprintf(w, "fetching records %d-%d of %d\n", start+1, end, len(pmids))
		}

		chunk, err := c.Fetch(ctx, pmids[start:end])
		if err != nil {
			return nil, err
		}
		articles = append(articles, chunk...)
	}
	return articles, nil
}

// get issues a GET with retry on 429 and maps non-success statuses to
// ErrUpstream. The caller owns the returned body.
func (c *Client) get(ctx context.Context, base string, params url.Values, op string) (io.ReadCloser, error) {
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.Cfg.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, c.Cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned HTTP %d", ErrUpstream, op, resp.StatusCode)
	}
	return resp.Body, nil
}

// addCommonParams sets the parameters shared by every E-utilities call.
func (c *Client) addCommonParams(v url.Values) {
	v.Set("db", "pubmed")
	if c.Cfg.Tool != "" {
		v.Set("tool", c.Cfg.Tool)
	}
	if c.Cfg.Email != "" {
		v.Set("email", c.Cfg.Email)
	}
	if c.Cfg.APIKey != "" {
		v.Set("api_key", c.Cfg.APIKey)
	}
}

// ESearch JSON structures.
type esearchResponse struct {
	Result esearchResult `json:"esearchresult"`
}

type esearchResult struct {
	Count  string   `json:"count"`
	IDList []string `json:"idlist"`
}
