// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/langnerd/internal/pipeline"
)

var qaCmd = &cobra.Command{
	Use:   "qa <question>",
	Short: "Answer a focused question about a video game",
	Long: `qa runs the question-and-answer branch of the pipeline: it gathers web
evidence for the question, asks the model for an answer grounded strictly in
that evidence, and prints the cited HTML answer with its sources.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		game, _ := cmd.Flags().GetString("game")
		focus, _ := cmd.Flags().GetString("focus")
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")

		orc, _, log, err := buildOrchestrator(cmd.Context())
		if err != nil {
			return err
		}
		defer log.Sync()

		result, err := orc.RunQA(cmd.Context(), pipeline.QAInput{
			Question: args[0],
			Game:     game,
			Focus:    focus,
			Language: language,
		})
		if err != nil {
			return fmt.Errorf("qa run: %w", err)
		}
		return writeResult(os.Stdout, result, format)
	},
}

func init() {
	qaCmd.Flags().String("game", "", "game title hint")
	qaCmd.Flags().String("focus", "", "aspect to prioritize")
	qaCmd.Flags().String("language", "", "answer language (ISO-639-1, default from config)")
	qaCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(qaCmd)
}
