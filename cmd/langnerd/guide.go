// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/langnerd/internal/pipeline"
)

var guideCmd = &cobra.Command{
	Use:   "guide <game>",
	Short: "Generate a full structured guide for a video game",
	Long: `guide runs the guide branch of the pipeline: it gathers evidence about
the game's story, missions and trophies, asks the model for a complete
structured guide, normalizes the result against the fixed schema, and exports
it as a standalone HTML document.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		focus, _ := cmd.Flags().GetString("focus")
		extra, _ := cmd.Flags().GetString("extra")
		language, _ := cmd.Flags().GetString("language")
		format, _ := cmd.Flags().GetString("format")

		orc, _, log, err := buildOrchestrator(cmd.Context())
		if err != nil {
			return err
		}
		defer log.Sync()

		result, err := orc.RunGuide(cmd.Context(), pipeline.GuideInput{
			Game:     args[0],
			Focus:    focus,
			Extra:    extra,
			Language: language,
		})
		if err != nil {
			return fmt.Errorf("guide run: %w", err)
		}

		fmt.Fprintln(os.Stderr, "Guide exported to:", result.ExportPath)
		return writeResult(os.Stdout, result, format)
	},
}

func init() {
	guideCmd.Flags().String("focus", "", "aspects to analyze in more depth")
	guideCmd.Flags().String("extra", "", "additional user notes")
	guideCmd.Flags().String("language", "", "document language (ISO-639-1, default from config)")
	guideCmd.Flags().String("format", "json", "output format: json or yaml")

	rootCmd.AddCommand(guideCmd)
}
