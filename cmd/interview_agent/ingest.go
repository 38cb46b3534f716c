package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/chat"
	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/ingestion"
	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/observability"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest-job [url]",
	Short: "Ingest a job posting URL into the shared job context",
	Long: `Fetches a job posting page, extracts its readable text, and stores it as the
job context used by the practice, resume, and copilot modes. With an LLM API
key, the posting is additionally structured into title, company, and
requirement lists.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngestJob,
}

var (
	ingestConfigPath string
	ingestStorePath  string
	ingestProvider   string
	ingestAPIKey     string
	ingestVerbose    bool
)

func init() {
	ingestCmd.Flags().StringVar(&ingestConfigPath, "config", "", "Path to config.json file")
	ingestCmd.Flags().StringVar(&ingestStorePath, "store", "", "SQLite file for local state (required; the chat UI reads the job context from it)")
	ingestCmd.Flags().StringVar(&ingestProvider, "provider", "", `LLM provider for structured extraction, "gemini" or "openai"`)
	ingestCmd.Flags().StringVar(&ingestAPIKey, "api-key", "", "LLM API key (optional; omit to store the cleaned text only)")
	ingestCmd.Flags().BoolVarP(&ingestVerbose, "verbose", "v", false, "Print the full extracted posting")

	_ = ingestCmd.MarkFlagRequired("store")

	rootCmd.AddCommand(ingestCmd)
}

func runIngestJob(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, ingestConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("store") {
		cfg.StorePath = ingestStorePath
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = ingestProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = ingestAPIKey
	}
	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Config{Provider: string(llm.ProviderGemini)})

	ctx := context.Background()

	var model llm.Client
	if merged.APIKey != "" {
		model, err = llm.NewClient(ctx, llm.ConfigForProvider(llm.Provider(merged.Provider)), merged.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = model.Close() }()
	}

	posting, err := ingestion.IngestURL(ctx, args[0], model)
	if err != nil {
		return err
	}

	store, err := openStore(merged)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	chat.NewJobContext(store).Set(posting.Description(), posting.Title, posting.Company)

	if ingestVerbose {
		observability.NewPrinter(os.Stdout).PrintPosting(posting)
		return nil
	}

	if posting.Title != "" {
		fmt.Fprintf(os.Stdout, "Stored job context: %s", posting.Title)
		if posting.Company != "" {
			fmt.Fprintf(os.Stdout, " @ %s", posting.Company)
		}
		fmt.Fprintf(os.Stdout, " (%d requirements)\n", len(posting.Requirements))
	} else {
		fmt.Fprintf(os.Stdout, "Stored job context: %d characters of posting text\n", len(posting.Text))
	}
	return nil
}
