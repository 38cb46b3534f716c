// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP server port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// CMS
	CMSBaseURL string `json:"cms_base_url,omitempty"` // Headless CMS base URL
	CMSAPIKey  string `json:"cms_api_key,omitempty"`  // CMS bearer token

	// LLM
	Provider string `json:"provider,omitempty"` // "gemini" or "openai"
	APIKey   string `json:"api_key,omitempty"`  // LLM API key

	// Client
	ServerURL string `json:"server_url,omitempty"` // Base URL the chat/send commands talk to
	AuthToken string `json:"auth_token,omitempty"` // Bearer token for the chat endpoints
	StorePath string `json:"store_path,omitempty"` // SQLite file for local conversation history
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
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
func (c *Config) FromEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.CMSBaseURL == "" {
		c.CMSBaseURL = os.Getenv("CMS_BASE_URL")
	}
	if c.CMSAPIKey == "" {
		c.CMSAPIKey = os.Getenv("CMS_API_KEY")
	}
	if c.Provider == "" {
		c.Provider = os.Getenv("LLM_PROVIDER")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.ServerURL == "" {
		c.ServerURL = os.Getenv("INTERVIEW_SERVER_URL")
	}
	if c.AuthToken == "" {
		c.AuthToken = os.Getenv("INTERVIEW_AUTH_TOKEN")
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Provider != "" && c.Provider != "gemini" && c.Provider != "openai" {
		return fmt.Errorf("config error: 'provider' must be \"gemini\" or \"openai\", got %q", c.Provider)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CMSBaseURL == "" {
		result.CMSBaseURL = defaults.CMSBaseURL
	}
	if result.CMSAPIKey == "" {
		result.CMSAPIKey = defaults.CMSAPIKey
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ServerURL == "" {
		result.ServerURL = defaults.ServerURL
	}
	if result.AuthToken == "" {
		result.AuthToken = defaults.AuthToken
	}
	if result.StorePath == "" {
		result.StorePath = defaults.StorePath
	}

	return result
}
