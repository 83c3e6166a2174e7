package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mindwell-labs/sanara/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Exposes search and cache invalidation over HTTP:

  GET  /healthz
  POST /api/search
  POST /api/invalidate`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	server := httpapi.New(searchService)
	fmt.Fprintf(cmd.OutOrStdout(), "sanara listening on %s\n", serveAddr)
	return server.ListenAndServe(cmd.Context(), serveAddr)
}
