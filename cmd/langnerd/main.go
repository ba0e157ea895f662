// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the langnerd CLI.
// See docs/ARCHITECTURE.md § Pipeline Interface, § Project Structure.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/langnerd/internal/export"
	"github.com/pdiddy/langnerd/internal/llm"
	"github.com/pdiddy/langnerd/internal/pipeline"
	"github.com/pdiddy/langnerd/internal/search"
	"github.com/pdiddy/langnerd/internal/secrets"
	"github.com/pdiddy/langnerd/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, else the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the langnerd CLI.
var rootCmd = &cobra.Command{
	Use:   "langnerd",
	Short: "Source-grounded video game Q&A and guide generation",
	Long: `langnerd turns a natural-language request about a video game into either
a short, source-grounded answer or a long structured guide (story, characters,
missions, trophies). Every run classifies the request, gathers web evidence,
asks Gemini to synthesize content, validates the output, and attaches
clickable citations.

Use the qa and guide subcommands for preset-mode runs, ask to let the
classifier pick the mode, and serve to expose the pipeline over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./langnerd.yaml or ~/.config/langnerd/config.yaml)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("langnerd")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "langnerd"))
		}
	}

	viper.SetEnvPrefix("LANGNERD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	defaults := types.Defaults()
	viper.SetDefault("default_language", defaults.DefaultLanguage)
	viper.SetDefault("llm.model", defaults.LLM.Model)
	viper.SetDefault("llm.timeout", defaults.LLM.Timeout)
	viper.SetDefault("search.country", defaults.Search.Country)
	viper.SetDefault("search.language", defaults.Search.Language)
	viper.SetDefault("search.max_results", defaults.Search.MaxResults)
	viper.SetDefault("search.timeout", defaults.Search.Timeout)
	viper.SetDefault("export.output_dir", defaults.Export.OutputDir)
	viper.SetDefault("server.addr", defaults.Server.Addr)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig materializes the configuration from viper and secrets.
func loadConfig() types.Config {
	cfg := types.Config{
		DefaultLanguage: viper.GetString("default_language"),
		LLM: types.LLMConfig{
			Model:   viper.GetString("llm.model"),
			APIKey:  secretDefault("gemini-api-key", viper.GetString("llm.api_key")),
			Timeout: viper.GetDuration("llm.timeout"),
		},
		Search: types.SearchConfig{
			APIKey:     secretDefault("serpapi-api-key", viper.GetString("search.api_key")),
			Country:    viper.GetString("search.country"),
			Language:   viper.GetString("search.language"),
			MaxResults: viper.GetInt("search.max_results"),
			Timeout:    viper.GetDuration("search.timeout"),
		},
		Export: types.ExportConfig{
			OutputDir: viper.GetString("export.output_dir"),
		},
		Server: types.ServerConfig{
			Addr: viper.GetString("server.addr"),
		},
	}
	return cfg
}

// newLogger builds the process logger. Output goes to stderr so command
// results on stdout stay machine-readable.
func newLogger() (*zap.Logger, error) {
	verbose, _ := rootCmd.PersistentFlags().GetBool("verbose")
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// buildOrchestrator assembles the gateways and the pipeline.
func buildOrchestrator(ctx context.Context) (*pipeline.Orchestrator, types.Config, *zap.Logger, error) {
	cfg := loadConfig()

	log, err := newLogger()
	if err != nil {
		return nil, cfg, nil, fmt.Errorf("creating logger: %w", err)
	}

	gemini, err := llm.NewGemini(ctx, cfg.LLM, log)
	if err != nil {
		return nil, cfg, nil, err
	}

	writer, err := export.NewWriter(cfg.Export)
	if err != nil {
		return nil, cfg, nil, err
	}

	orc := pipeline.New(gemini, search.NewSerpAPI(cfg.Search), writer, cfg, log)
	return orc, cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
