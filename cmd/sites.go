package main

import (
	"fmt"

	"paperscrape/extractor"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sitesCmd)
}

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Show which hostnames get a dedicated profile",
	Long: `Show the hostname patterns checked by the site dispatcher, in priority
order. The first pattern contained in a page's hostname selects its profile;
anything else uses the generic profile.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rules := extractor.Sites()
		if !humanOutput {
			return outputJSON(rules)
		}
		for i, r := range rules {
			fmt.Printf("%d. %-22s %s\n", i+1, r.Pattern, r.Site)
		}
		fmt.Printf("   %-22s %s\n", "*", extractor.SiteGeneric)
		return nil
	},
}
