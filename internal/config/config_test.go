package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"port": 8080,
		"cms_base_url": "https://cms.example.com",
		"provider": "gemini"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "https://cms.example.com", cfg.CMSBaseURL)
	assert.Equal(t, "gemini", cfg.Provider)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := writeConfigFile(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "empty is valid", cfg: Config{}},
		{name: "gemini provider", cfg: Config{Provider: "gemini"}},
		{name: "openai provider", cfg: Config{Provider: "openai"}},
		{name: "unknown provider", cfg: Config{Provider: "watson"}, wantErr: true},
		{name: "port out of range", cfg: Config{Port: 70000}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Provider: "openai"}
	merged := cfg.MergeWithDefaults(Config{
		Port:       9000,
		Provider:   "gemini",
		CMSBaseURL: "https://cms.example.com",
	})

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "openai", merged.Provider) // explicit value wins
	assert.Equal(t, "https://cms.example.com", merged.CMSBaseURL)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("CMS_BASE_URL", "https://env.example.com")
	t.Setenv("LLM_PROVIDER", "openai")

	cfg := Config{CMSBaseURL: "https://file.example.com"}
	cfg.FromEnv()

	assert.Equal(t, "https://file.example.com", cfg.CMSBaseURL) // file value wins
	assert.Equal(t, "openai", cfg.Provider)
}
