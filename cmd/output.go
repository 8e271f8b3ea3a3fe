package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"paperscrape/extractor"
	"paperscrape/storage"
)

const (
	HistoryTitleMaxLen = 60
	AbstractWrapWidth  = 76
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// BatchEntry is one URL of a multi-URL extract.
type BatchEntry struct {
	URL      string                   `json:"url"`
	Site     extractor.Site           `json:"site,omitempty"`
	Metadata *extractor.PaperMetadata `json:"metadata,omitempty"`
	Error    string                   `json:"error,omitempty"`
}

func printMetadataHuman(m extractor.PaperMetadata) {
	fmt.Printf("Title:         %s\n", m.Title)
	fmt.Printf("Authors:       %s\n", m.Authors)
	fmt.Printf("Year:          %s\n", m.Year)
	fmt.Printf("Venue:         %s\n", m.Venue)
	fmt.Printf("Type:          %s\n", m.Type)
	fmt.Printf("Peer reviewed: %t\n", m.PeerReviewed)
	fmt.Printf("DOI:           %s\n", m.DOI)
	fmt.Printf("Link:          %s\n", m.Link)
	if m.Abstract != "" {
		fmt.Printf("\n  %s\n", wrapText(m.Abstract, AbstractWrapWidth, "  "))
	}
}

func printRecordsHuman(records []storage.Record) {
	if len(records) == 0 {
		fmt.Println("No papers saved")
		return
	}
	for _, r := range records {
		fmt.Printf("%s  %-13s %s\n",
			r.ScrapedAt.Local().Format("2006-01-02 15:04"),
			r.Site,
			truncateString(r.Metadata.Title, HistoryTitleMaxLen))
		fmt.Printf("                  %s\n", r.URL)
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	var currentLine strings.Builder
	for _, word := range strings.Fields(text) {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}
