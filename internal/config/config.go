// Package config provides configuration loading and validation for the service.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config represents the service configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"`

	// LLM
	Provider string `json:"provider,omitempty"` // "gemini" or "anthropic"
	APIKey   string `json:"api_key,omitempty"`

	// Scraping
	ApifyToken       string        `json:"apify_token,omitempty"`
	ApifyActor       string        `json:"apify_actor,omitempty"`
	UseBrowser       bool          `json:"use_browser,omitempty"` // headless browser fallback for SPA sites
	ScrapeCacheTTL   time.Duration `json:"-"`
	ScrapeCacheHours int           `json:"scrape_cache_hours,omitempty"`

	// Content generation
	Pipeline PipelineConfig `json:"pipeline,omitempty"`

	// Rendering
	TemplatesDir string `json:"templates_dir,omitempty"`
	StorageDir   string `json:"storage_dir,omitempty"`

	// Behavior
	UseLegacyGeneration bool `json:"use_legacy_generation,omitempty"` // skip the staged pipeline entirely
	Verbose             bool `json:"verbose,omitempty"`
}

// PipelineConfig holds the tunable thresholds of the generation pipeline.
// Zero values are replaced by defaults in MergeWithDefaults.
type PipelineConfig struct {
	// CareerLevels are the year boundaries for entry/mid/senior/lead/executive.
	CareerLevels [4]float64 `json:"career_levels,omitempty"`
	// RelevanceThreshold is the 0-100 score an experience (other than the
	// most recent) must exceed to be selected.
	RelevanceThreshold float64 `json:"relevance_threshold,omitempty"`
	// MaxExperiences bounds the selected experience count.
	MaxExperiences int `json:"max_experiences,omitempty"`
	// MaxSkills bounds the selected skill count.
	MaxSkills int `json:"max_skills,omitempty"`
	// ReviewThreshold is the 0-100 quality score below which the reviewer rejects.
	ReviewThreshold float64 `json:"review_threshold,omitempty"`
	// MaxWords is the word-count ceiling for the one-page check.
	MaxWords int `json:"max_words,omitempty"`
	// MaxIterations bounds the reviewer revision loop.
	MaxIterations int `json:"max_iterations,omitempty"`
}

// DefaultConfig returns the documented defaults for all tunables.
func DefaultConfig() Config {
	return Config{
		Port:             8080,
		Provider:         "gemini",
		ApifyActor:       "apify~web-scraper",
		ScrapeCacheHours: 24,
		Pipeline: PipelineConfig{
			CareerLevels:       [4]float64{2, 5, 10, 15},
			RelevanceThreshold: 40,
			MaxExperiences:     3,
			MaxSkills:          15,
			ReviewThreshold:    70,
			MaxWords:           400,
			MaxIterations:      2,
		},
		TemplatesDir: "templates",
		StorageDir:   "generated",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv fills unset fields from environment variables.
// Environment values never override explicit config file values.
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("LLM_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.ApifyToken == "" {
		c.ApifyToken = os.Getenv("APIFY_TOKEN")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Pipeline.RelevanceThreshold < 0 || c.Pipeline.RelevanceThreshold > 100 {
		return fmt.Errorf("config error: 'relevance_threshold' must be between 0 and 100")
	}
	if c.Pipeline.ReviewThreshold < 0 || c.Pipeline.ReviewThreshold > 100 {
		return fmt.Errorf("config error: 'review_threshold' must be between 0 and 100")
	}
	if c.Pipeline.MaxExperiences < 0 {
		return fmt.Errorf("config error: 'max_experiences' must be non-negative")
	}
	if c.Pipeline.MaxSkills < 0 {
		return fmt.Errorf("config error: 'max_skills' must be non-negative")
	}
	if c.Pipeline.MaxIterations < 0 {
		return fmt.Errorf("config error: 'max_iterations' must be non-negative")
	}
	for i := 1; i < len(c.Pipeline.CareerLevels); i++ {
		if c.Pipeline.CareerLevels[i] != 0 && c.Pipeline.CareerLevels[i] <= c.Pipeline.CareerLevels[i-1] {
			return fmt.Errorf("config error: 'career_levels' must be strictly increasing")
		}
	}
	if c.TemplatesDir != "" {
		if _, err := os.Stat(c.TemplatesDir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("config error: templates dir not readable: %s", c.TemplatesDir)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ApifyToken == "" {
		result.ApifyToken = defaults.ApifyToken
	}
	if result.ApifyActor == "" {
		result.ApifyActor = defaults.ApifyActor
	}
	if result.ScrapeCacheHours == 0 {
		result.ScrapeCacheHours = defaults.ScrapeCacheHours
	}
	if result.TemplatesDir == "" {
		result.TemplatesDir = defaults.TemplatesDir
	}
	if result.StorageDir == "" {
		result.StorageDir = defaults.StorageDir
	}

	if result.Pipeline.CareerLevels == ([4]float64{}) {
		result.Pipeline.CareerLevels = defaults.Pipeline.CareerLevels
	}
	if result.Pipeline.RelevanceThreshold == 0 {
		result.Pipeline.RelevanceThreshold = defaults.Pipeline.RelevanceThreshold
	}
	if result.Pipeline.MaxExperiences == 0 {
		result.Pipeline.MaxExperiences = defaults.Pipeline.MaxExperiences
	}
	if result.Pipeline.MaxSkills == 0 {
		result.Pipeline.MaxSkills = defaults.Pipeline.MaxSkills
	}
	if result.Pipeline.ReviewThreshold == 0 {
		result.Pipeline.ReviewThreshold = defaults.Pipeline.ReviewThreshold
	}
	if result.Pipeline.MaxWords == 0 {
		result.Pipeline.MaxWords = defaults.Pipeline.MaxWords
	}
	if result.Pipeline.MaxIterations == 0 {
		result.Pipeline.MaxIterations = defaults.Pipeline.MaxIterations
	}

	result.ScrapeCacheTTL = time.Duration(result.ScrapeCacheHours) * time.Hour

	return result
}
