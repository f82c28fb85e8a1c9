// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/pubmed-papers/internal/entrez"
	"github.com/pdiddy/pubmed-papers/internal/export"
	"github.com/pdiddy/pubmed-papers/internal/extract"
	"github.com/pdiddy/pubmed-papers/pkg/types"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultFetchDelay = 350 * time.Millisecond
	defaultMaxResults = 50
	defaultUserAgent  = "pubmed-papers/0.1"
	toolName          = "pubmed-papers"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [search term]",
	Short: "Search PubMed and export matching papers",
	Long: `Fetch runs an ESearch query against PubMed, retrieves the matching
article records via EFetch, extracts the output schema per paper, and writes
the result to CSV or an Excel workbook. Without --file the rows are rendered
to the console.

Records missing a PubMed ID or title are skipped with a warning; they never
abort the run.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringP("file", "f", "", "output file path (.csv or .xlsx); console output when empty")
	fetchCmd.Flags().String("format", "", "output format: csv or xlsx (default: from file extension)")
	fetchCmd.Flags().String("from", "", "publication date range start (YYYY-MM-DD)")
	fetchCmd.Flags().String("to", "", "publication date range end (YYYY-MM-DD)")
	fetchCmd.Flags().Int("max-results", defaultMaxResults, "maximum number of papers to fetch")
	fetchCmd.Flags().Duration("timeout", defaultTimeout, "HTTP request timeout")
	fetchCmd.Flags().Duration("delay", defaultFetchDelay, "delay between consecutive EFetch requests")
	fetchCmd.Flags().Int("retries", 0, "maximum retries on HTTP 429 (0 = default 3)")
	fetchCmd.Flags().String("api-key", "", "NCBI API key (default: .secrets/ncbi-api-key)")
	fetchCmd.Flags().String("email", "", "contact email sent to Entrez (default: .secrets/entrez-email)")
	fetchCmd.Flags().Bool("json", false, "render console output as JSON")
	fetchCmd.Flags().String("save-query", "", "save the query and extracted rows to a YAML file")
	fetchCmd.Flags().String("query-file", "", "re-export rows from a saved query file instead of querying")
	fetchCmd.Flags().BoolP("debug", "d", false, "print fetch progress and extra diagnostics")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	queryFile, _ := cmd.Flags().GetString("query-file")
	debug, _ := cmd.Flags().GetBool("debug")

	var (
		papers   []types.Paper
		query    entrez.Query
		matched  int
		skipped  int
		excluded int
	)

	if queryFile != "" {
		qf, err := entrez.ReadQueryFile(queryFile)
		if err != nil {
			return err
		}
		if debug {
			fmt.Fprintf(os.Stderr, "loaded %d row(s) from %s (query %q, run at %s)\n",
				len(qf.Papers), queryFile, qf.Query.Term, qf.Summary.Timestamp.Format(time.RFC3339))
		}
		papers = qf.Papers
	} else {
		var err error
		query, err = queryFromFlags(cmd, args)
		if err != nil {
			return err
		}

		cfg := entrezConfig(cmd)

		papers, matched, skipped, excluded, err = runPipeline(query, cfg, debug)
		if err != nil {
			return err
		}
		if debug {
			fmt.Fprintf(os.Stderr, "%d matched, %d row(s), %d skipped, %d academic-only\n",
				matched, len(papers), skipped, excluded)
		}

		if savePath, _ := cmd.Flags().GetString("save-query"); savePath != "" {
			if err := entrez.WriteQueryFile(savePath, query, cfg, papers, matched, skipped, excluded); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Query saved to %s\n", savePath)
		}
	}

	return writeOutput(cmd, papers, skipped)
}

// runPipeline executes the linear search → fetch → extract pass.
func runPipeline(query entrez.Query, cfg types.EntrezConfig, debug bool) ([]types.Paper, int, int, int, error) {
	ctx := context.Background()
	client := entrez.NewClient(cfg)

	pmids, err := client.Search(ctx, query)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if debug {
		fmt.Fprintf(os.Stderr, "ESearch matched %d PMID(s)\n", len(pmids))
	}

	articles, err := client.FetchAll(ctx, pmids, os.Stderr, debug)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	papers, skipped, excluded := extract.Rows(articles, os.Stderr)
	return papers, len(pmids), skipped, excluded, nil
}

// writeOutput renders papers to the requested file or to the console.
func writeOutput(cmd *cobra.Command, papers []types.Paper, skipped int) error {
	path, _ := cmd.Flags().GetString("file")
	formatFlag, _ := cmd.Flags().GetString("format")

	if path == "" {
		if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
			return export.FormatJSON(papers, os.Stdout)
		}
		export.FormatTable(papers, os.Stdout)
		return nil
	}

	format, err := export.DetectFormat(formatFlag, path)
	if err != nil {
		return err
	}
	if err := export.Write(papers, types.ExportConfig{Path: path, Format: format}); err != nil {
		return err
	}

	fmt.Printf("Results saved to %s (%d row(s)", path, len(papers))
	if skipped > 0 {
		fmt.Printf(", %d skipped", skipped)
	}
	fmt.Println(")")
	return nil
}

// queryFromFlags builds the search query from the positional term and date
// range flags.
func queryFromFlags(cmd *cobra.Command, args []string) (entrez.Query, error) {
	q := entrez.Query{Term: strings.Join(args, " ")}

	from, _ := cmd.Flags().GetString("from")
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return q, fmt.Errorf("invalid --from date %q: %w", from, err)
		}
		q.DateFrom = t
	}
	to, _ := cmd.Flags().GetString("to")
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return q, fmt.Errorf("invalid --to date %q: %w", to, err)
		}
		q.DateTo = t
	}

	return q, q.Validate()
}

// entrezConfig assembles the fetch-stage configuration from flags, secrets,
// and the config file.
func entrezConfig(cmd *cobra.Command) types.EntrezConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	delay, _ := cmd.Flags().GetDuration("delay")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	retries, _ := cmd.Flags().GetInt("retries")
	apiKey, _ := cmd.Flags().GetString("api-key")
	email, _ := cmd.Flags().GetString("email")

	return types.EntrezConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		MaxResults: maxResults,
		APIKey:     secretDefault("ncbi-api-key", "entrez.api_key", apiKey),
		Email:      secretDefault("entrez-email", "entrez.email", email),
		Tool:       toolName,
		FetchDelay: delay,
		MaxRetries: retries,
	}
}
