package main

import (
	"errors"
	"fmt"

	"paperscrape/crawler"

	"github.com/spf13/cobra"
)

var (
	extractRender   bool
	extractEnrich   string
	extractSave     bool
	extractParallel int
)

func init() {
	extractCmd.Flags().BoolVar(&extractRender, "render", false, "Render pages in headless Chrome (default from RENDER_JS)")
	extractCmd.Flags().StringVar(&extractEnrich, "enrich", "", "Fill empty fields with none|readability|trafilatura (default from ENRICHER)")
	extractCmd.Flags().BoolVar(&extractSave, "save", false, "Save records to the local database")
	extractCmd.Flags().IntVar(&extractParallel, "parallel", 4, "Maximum pages loaded at once")
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <url>...",
	Short: "Fetch paper pages and extract their metadata",
	Long: `Fetch one or more paper landing pages and extract their metadata.

With one URL the record is printed on its own; with several, a list of
{url, site, metadata, error} entries is printed in argument order.

Examples:
  paperscrape extract https://arxiv.org/abs/1706.03762
  paperscrape extract --render https://ieeexplore.ieee.org/document/8099726
  paperscrape extract --save --parallel 8 $(cat urls.txt)`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !cmd.Flags().Changed("render") {
		extractRender = a.cfg.RenderJS
	}
	if extractEnrich == "" {
		extractEnrich = a.cfg.Enricher
	}

	scraper, err := a.scraper(extractEnrich, extractSave)
	if err != nil {
		return err
	}

	opts := crawler.ScrapeOptions{Render: extractRender, Save: extractSave}
	results := scraper.ScrapeAll(cmd.Context(), args, extractParallel, opts)

	if len(results) == 1 {
		r := results[0]
		if r.Err != nil {
			return scrapeError(r.URL, r.Err)
		}
		if humanOutput {
			printMetadataHuman(r.Metadata)
			return nil
		}
		return outputJSON(r.Metadata)
	}

	entries := make([]BatchEntry, len(results))
	failed := 0
	for i, r := range results {
		entries[i] = BatchEntry{URL: r.URL, Site: r.Site}
		if r.Err != nil {
			entries[i].Error = r.Err.Error()
			failed++
			continue
		}
		m := r.Metadata
		entries[i].Metadata = &m
	}

	if humanOutput {
		for i, e := range entries {
			if i > 0 {
				fmt.Println()
			}
			fmt.Printf("== %s\n", e.URL)
			if e.Error != "" {
				fmt.Printf("error: %s\n", e.Error)
				continue
			}
			printMetadataHuman(*e.Metadata)
		}
	} else if err := outputJSON(entries); err != nil {
		return err
	}

	if failed > 0 {
		return withCode(ExitError, "%d of %d pages failed", failed, len(entries))
	}
	return nil
}

func scrapeError(pageURL string, err error) error {
	if errors.Is(err, crawler.ErrUnsupportedURL) {
		return withCode(ExitDataError, "%s: %v", pageURL, err)
	}
	return withCode(ExitError, "%s: %v", pageURL, err)
}
