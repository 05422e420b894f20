package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/mystery-keyboard/internal/httpapi"
)

var flagHTTPAddr string

var httpCmd = &cobra.Command{
	Use:   "http",
	Short: "Start the JSON API",
	Long: `Serve the game as a JSON API. Sessions live in memory; every judged
answer is recorded in the progress database.

Examples:
  keyboard http
  keyboard http --addr :8080
  curl -X POST localhost:5180/sessions -d '{"level":"3"}'`,
	RunE: runHTTP,
}

func init() {
	httpCmd.Flags().StringVar(&flagHTTPAddr, "addr", ":5180", "HTTP listen address (host:port)")
}

func runHTTP(_ *cobra.Command, _ []string) error {
	lvls, cfg, err := loadGame()
	if err != nil {
		return err
	}

	opts := []httpapi.Option{httpapi.WithLogger(logger.WithPrefix("keyboard-http"))}
	if store := openStore(); store != nil {
		defer store.Close()
		opts = append(opts, httpapi.WithRecorder(newProgress(store, false)))
	}

	return httpapi.New(lvls, cfg, opts...).Start(flagHTTPAddr)
}
