package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-forge/internal/agents"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/render"
	"github.com/jonathan/resume-forge/internal/scrape"
	"github.com/jonathan/resume-forge/internal/templates"
	"github.com/jonathan/resume-forge/internal/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a tailored resume from the command line",
	Long:  "Scrapes a job posting URL, runs the generation pipeline against a profile JSON file, and writes the rendered PDF and DOCX to an output directory. No database is required.",
	RunE:  runGenerate,
}

var (
	genConfigPath  string
	genProfilePath string
	genURL         string
	genTemplateID  string
	genOutDir      string
)

func init() {
	generateCmd.Flags().StringVarP(&genConfigPath, "config", "c", "", "Path to JSON config file")
	generateCmd.Flags().StringVarP(&genProfilePath, "profile", "f", "", "Path to profile JSON file (required)")
	generateCmd.Flags().StringVarP(&genURL, "url", "u", "", "Job posting URL (required)")
	generateCmd.Flags().StringVarP(&genTemplateID, "template", "t", "", "Template ID (default: best match for the job)")
	generateCmd.Flags().StringVarP(&genOutDir, "out", "o", "out", "Output directory")

	if err := generateCmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	if err := generateCmd.MarkFlagRequired("url"); err != nil {
		panic(fmt.Sprintf("failed to mark url flag as required: %v", err))
	}

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(genConfigPath)
	if err != nil {
		return err
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("no LLM API key set (set LLM_API_KEY, GEMINI_API_KEY, or ANTHROPIC_API_KEY)")
	}

	data, err := os.ReadFile(genProfilePath)
	if err != nil {
		return fmt.Errorf("failed to read profile file: %w", err)
	}
	var profile types.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	if profile.Name == "" {
		return fmt.Errorf("profile is missing a name")
	}

	ctx := context.Background()

	client, err := llm.NewClient(ctx, llm.ConfigForProvider(cfg.Provider), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	apify := scrape.NewApifyClient(cfg.ApifyToken, cfg.ApifyActor)
	scraper := scrape.NewScraper(client, apify, cfg.UseBrowser)

	fmt.Printf("Scraping %s...\n", genURL)
	job, err := scraper.Scrape(ctx, genURL)
	if err != nil {
		return fmt.Errorf("failed to scrape job posting: %w", err)
	}
	fmt.Printf("Found: %s at %s\n", job.Title, job.Company)

	registry, err := templates.NewRegistry(cfg.TemplatesDir)
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	tmpl := registry.BestForJob(job)
	if genTemplateID != "" {
		tmpl = registry.Get(genTemplateID)
	}
	if tmpl == nil {
		return fmt.Errorf("unknown template %q", genTemplateID)
	}

	orchestrator := agents.NewOrchestrator(client, cfg.Pipeline, cfg.UseLegacyGeneration)

	fmt.Println("Generating content...")
	result, err := orchestrator.Generate(ctx, &profile, job)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	if result.UsedLegacy {
		fmt.Println("Note: fell back to single-pass generation")
	}

	renderData := render.NewData(&profile, result.Content)
	html, err := render.FillHTML(tmpl, renderData)
	if err != nil {
		return fmt.Errorf("failed to fill template: %w", err)
	}

	if err := os.MkdirAll(genOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Println("Rendering PDF...")
	pdfBytes, err := render.RenderPDF(ctx, html)
	if err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	pdfPath := filepath.Join(genOutDir, "resume.pdf")
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	docxPath := filepath.Join(genOutDir, "resume.docx")
	if err := render.RenderDOCX(renderData, docxPath); err != nil {
		return fmt.Errorf("failed to render DOCX: %w", err)
	}

	fmt.Printf("Done. Template %s, quality score %.0f", tmpl.ID, result.QualityScore)
	if result.Match != nil {
		fmt.Printf(", match score %.0f", result.Match.OverallMatchScore)
	}
	fmt.Printf("\n  %s\n  %s\n", pdfPath, docxPath)
	return nil
}
