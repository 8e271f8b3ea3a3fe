package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var parseURL string

func init() {
	parseCmd.Flags().StringVar(&parseURL, "url", "", "URL the page was loaded from (selects the site profile)")
	_ = parseCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse <file.html>",
	Short: "Extract metadata from a saved HTML page",
	Long: `Extract metadata from an HTML file without touching the network.
Use "-" to read the page from stdin.

Examples:
  paperscrape parse saved.html --url https://www.nature.com/articles/s41586-020-2649-2
  curl -s https://arxiv.org/abs/1706.03762 | paperscrape parse - --url https://arxiv.org/abs/1706.03762`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	body, err := readInput(args[0])
	if err != nil {
		return withCode(ExitDataError, "reading %s: %v", args[0], err)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	scraper, err := a.scraper(a.cfg.Enricher, false)
	if err != nil {
		return err
	}

	res, err := scraper.ScrapeHTML(cmd.Context(), parseURL, body)
	if err != nil {
		return withCode(ExitDataError, "%v", err)
	}

	if humanOutput {
		printMetadataHuman(res.Metadata)
		return nil
	}
	return outputJSON(res.Metadata)
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
