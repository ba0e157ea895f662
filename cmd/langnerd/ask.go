// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <request>",
	Short: "Let the classifier route a free-form request",
	Long: `ask runs the pipeline with no preselected mode: the classifier decides
between a focused answer and a full guide, plans the search queries, and the
matching branch runs. The final pipeline state is printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")

		orc, _, log, err := buildOrchestrator(cmd.Context())
		if err != nil {
			return err
		}
		defer log.Sync()

		state, err := orc.Run(cmd.Context(), args[0], language)
		if err != nil {
			return fmt.Errorf("ask run: %w", err)
		}
		return writeResult(os.Stdout, state, format)
	},
}

func init() {
	askCmd.Flags().String("language", "", "preferred language (ISO-639-1, default inferred)")
	askCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(askCmd)
}
