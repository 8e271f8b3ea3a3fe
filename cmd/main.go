// Package main provides the paperscrape CLI entry point.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	debugLog    bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(reportError(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperscrape",
	Short: "Extract bibliographic metadata from academic paper pages",
	Long: `paperscrape reads the landing page of an academic paper and extracts its
title, authors, year, abstract, DOI, venue and type.

ScienceDirect, IEEE Xplore, Springer, Nature and arXiv pages use dedicated
selector profiles; every other site goes through a generic profile built on
citation_*, Dublin Core and OpenGraph meta tags. All commands output JSON by
default.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Verbose development logging on stderr")
	rootCmd.Version = Version
}

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func withCode(code int, format string, args ...any) error {
	return &exitError{code: code, err: fmt.Errorf(format, args...)}
}

// reportError prints err in the selected output format and returns its exit
// code.
func reportError(err error) int {
	code := ExitError
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
	}
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	} else {
		outputJSON(ErrorResponse{Error: err.Error()})
	}
	return code
}
