package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonkmatsumo/interview-agent/internal/config"
	"github.com/jonkmatsumo/interview-agent/internal/persist"
	"github.com/jonkmatsumo/interview-agent/internal/transport"
	"github.com/jonkmatsumo/interview-agent/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive terminal chat",
	Long: `Opens the terminal chat UI against a running interview assistant server.
Conversations persist locally per mode when --store points at a SQLite file.`,
	RunE: runChat,
}

var (
	chatConfigPath string
	chatServerURL  string
	chatAuthToken  string
	chatStorePath  string
)

func init() {
	chatCmd.Flags().StringVar(&chatConfigPath, "config", "", "Path to config.json file")
	chatCmd.Flags().StringVarP(&chatServerURL, "server", "s", "", "Server base URL (defaults to INTERVIEW_SERVER_URL env var)")
	chatCmd.Flags().StringVar(&chatAuthToken, "token", "", "Bearer token (defaults to INTERVIEW_AUTH_TOKEN env var)")
	chatCmd.Flags().StringVar(&chatStorePath, "store", "", "SQLite file for local conversation history (omit for in-memory)")

	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg, err := clientConfig(cmd, chatConfigPath, chatServerURL, chatAuthToken, chatStorePath)
	if err != nil {
		return err
	}

	client := transport.New(cfg.ServerURL, transport.WithAuthToken(cfg.AuthToken))
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	if store != nil {
		defer func() { _ = store.Close() }()
	}

	return tui.Run(tui.NewSession(client, store))
}

// clientConfig merges the optional config file, the shared client flags, and
// the environment into one client-side configuration.
func clientConfig(cmd *cobra.Command, configPath, serverURL, authToken, storePath string) (config.Config, error) {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return config.Config{}, err
	}

	if cmd.Flags().Changed("server") {
		cfg.ServerURL = serverURL
	}
	if cmd.Flags().Changed("token") {
		cfg.AuthToken = authToken
	}
	if cmd.Flags().Changed("store") {
		cfg.StorePath = storePath
	}

	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Config{ServerURL: "http://localhost:8080"})
	if merged.ServerURL == "" {
		return config.Config{}, fmt.Errorf("a server URL is required (INTERVIEW_SERVER_URL or --server)")
	}
	return merged, nil
}

// openStore opens the local history store. No path means no durable history.
func openStore(cfg config.Config) (persist.Store, error) {
	if cfg.StorePath == "" {
		return nil, nil
	}
	store, err := persist.OpenSQLite(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store %s: %w", cfg.StorePath, err)
	}
	return store, nil
}
