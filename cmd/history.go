package main

import (
	"paperscrape/storage"

	"github.com/spf13/cobra"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum records to show (0 = all)")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved papers, newest first",
	Long: `List papers saved with "extract --save" or the API, newest first.

Examples:
  paperscrape history
  paperscrape history --limit 100 --human`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.openStore()
	if err != nil {
		return err
	}

	records, err := store.List(cmd.Context(), historyLimit)
	if err != nil {
		return withCode(ExitError, "listing papers: %v", err)
	}

	if humanOutput {
		printRecordsHuman(records)
		return nil
	}
	if records == nil {
		records = []storage.Record{}
	}
	return outputJSON(records)
}
