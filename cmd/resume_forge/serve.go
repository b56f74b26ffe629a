package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the REST API server for profile management, job scraping, and resume generation. Configuration comes from an optional JSON config file, environment variables, and documented defaults, in that order.",
	RunE:  runServe,
}

var (
	serveConfigPath string
	servePort       int
)

func init() {
	serveCmd.Flags().StringVarP(&serveConfigPath, "config", "c", "", "Path to JSON config file")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides config)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfigPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL not set (set the environment variable or the database_url config field)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no LLM API key set (set LLM_API_KEY, GEMINI_API_KEY, or ANTHROPIC_API_KEY)")
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

// loadConfig assembles the effective configuration from the optional
// config file, the environment, and defaults.
func loadConfig(path string) (config.Config, error) {
	loaded := &config.Config{}
	if path != "" {
		var err error
		loaded, err = config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
	}
	loaded.FromEnv()

	cfg := loaded.MergeWithDefaults(config.DefaultConfig())
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
