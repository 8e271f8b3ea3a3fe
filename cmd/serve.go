package main

import (
	"paperscrape/api"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Run the HTTP API on APP_PORT.

Endpoints:
  GET  /health
  POST /api/extract          {"url": "...", "html": "...", "render": false, "save": false}
  GET  /api/papers?limit=N
  GET  /api/papers/lookup?url=...`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if !a.cfg.LogDevelopment && !debugLog {
		gin.SetMode(gin.ReleaseMode)
	}

	scraper, err := a.scraper(a.cfg.Enricher, true)
	if err != nil {
		return err
	}

	server := api.NewServer(api.NewHandler(scraper, a.store, a.logger), a.logger, a.cfg.AppPort)
	if err := server.Start(cmd.Context()); err != nil {
		return withCode(ExitError, "api server: %v", err)
	}
	return nil
}
