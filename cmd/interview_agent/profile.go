package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/cms"
	"github.com/jonkmatsumo/interview-agent/internal/observability"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Fetch and summarize the candidate profile from the CMS",
	Long: `Pulls the full candidate context from the CMS backend and prints a summary.
Useful for checking connectivity and seeing what the assistant will know
about the candidate before starting a conversation.`,
	RunE: runProfile,
}

var (
	profileConfigPath string
	profileCMSURL     string
	profileCMSKey     string
)

func init() {
	profileCmd.Flags().StringVar(&profileConfigPath, "config", "", "Path to config.json file")
	profileCmd.Flags().StringVar(&profileCMSURL, "cms-url", "", "CMS base URL (defaults to CMS_BASE_URL env var)")
	profileCmd.Flags().StringVar(&profileCMSKey, "cms-key", "", "CMS API key (defaults to CMS_API_KEY env var)")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, profileConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("cms-url") {
		cfg.CMSBaseURL = profileCMSURL
	}
	if cmd.Flags().Changed("cms-key") {
		cfg.CMSAPIKey = profileCMSKey
	}
	cfg.FromEnv()
	if cfg.CMSBaseURL == "" {
		return fmt.Errorf("CMS base URL is required (--cms-url or CMS_BASE_URL)")
	}

	client := cms.NewClient(cfg.CMSBaseURL, cms.WithAPIKey(cfg.CMSAPIKey))
	snap, err := client.FetchSnapshot(context.Background())
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	observability.NewPrinter(os.Stdout).PrintProfile(snap)
	return nil
}
