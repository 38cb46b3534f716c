package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/llm"
	"github.com/jonkmatsumo/interview-agent/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interview assistant HTTP API server",
	Long: `Serves the streaming chat endpoints, the content persistence endpoint, and the
mode listing. Requires a CMS base URL and an LLM API key; the database is
optional and only needed for content commits.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values, which override environment variables.`,
	RunE: runServe,
}

var (
	serveConfigPath  string
	servePort        int
	serveDatabaseURL string
	serveCMSBaseURL  string
	serveCMSAPIKey   string
	serveProvider    string
	serveAPIKey      string
)

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "HTTP port (defaults to PORT env var, then 8080)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveCMSBaseURL, "cms-url", "", "Headless CMS base URL (defaults to CMS_BASE_URL env var)")
	serveCmd.Flags().StringVar(&serveCMSAPIKey, "cms-key", "", "CMS bearer token (defaults to CMS_API_KEY env var)")
	serveCmd.Flags().StringVar(&serveProvider, "provider", "", `LLM provider, "gemini" or "openai" (defaults to LLM_PROVIDER env var)`)
	serveCmd.Flags().StringVar(&serveAPIKey, "api-key", "", "LLM API key (defaults to GEMINI_API_KEY / OPENAI_API_KEY env var)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, serveConfigPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = serveDatabaseURL
	}
	if cmd.Flags().Changed("cms-url") {
		cfg.CMSBaseURL = serveCMSBaseURL
	}
	if cmd.Flags().Changed("cms-key") {
		cfg.CMSAPIKey = serveCMSAPIKey
	}
	if cmd.Flags().Changed("provider") {
		cfg.Provider = serveProvider
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = serveAPIKey
	}

	cfg.FromEnv()
	if cfg.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			cfg.Port = p
		}
	}
	merged := cfg.MergeWithDefaults(config.Config{Port: 8080, Provider: string(llm.ProviderGemini)})
	if err := merged.Validate(); err != nil {
		return err
	}

	if merged.CMSBaseURL == "" {
		return fmt.Errorf("CMS_BASE_URL environment variable or --cms-url flag is required")
	}
	if merged.APIKey == "" {
		return fmt.Errorf("an LLM API key is required (GEMINI_API_KEY, OPENAI_API_KEY, or --api-key)")
	}

	srv, err := server.New(server.Config{
		Port:        merged.Port,
		DatabaseURL: merged.DatabaseURL,
		CMSBaseURL:  merged.CMSBaseURL,
		CMSAPIKey:   merged.CMSAPIKey,
		Provider:    llm.Provider(merged.Provider),
		APIKey:      merged.APIKey,
	})
	if err != nil {
		return err
	}

	return srv.Start()
}

// loadConfig loads the optional config file, returning an empty config when
// no path is given.
func loadConfig(_ *cobra.Command, path string) (config.Config, error) {
	if path == "" {
		return config.Config{}, nil
	}
	loaded, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := loaded.Validate(); err != nil {
		return config.Config{}, err
	}
	return *loaded, nil
}
