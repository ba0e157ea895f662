// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/langnerd/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the pipeline over HTTP",
	Long: `serve starts the HTTP boundary: POST /api/qa and POST /api/guide run the
two pipeline branches, GET /health reports liveness, and exported guide
documents are served under /generated/.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		orc, cfg, log, err := buildOrchestrator(cmd.Context())
		if err != nil {
			return err
		}
		defer log.Sync()

		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = cfg.Server.Addr
		}

		srv := server.New(orc, cfg.Export.OutputDir, log)
		return srv.ListenAndServe(addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, \":8080\")")

	rootCmd.AddCommand(serveCmd)
}
