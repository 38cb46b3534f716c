package llm

import (
	"context"
	"fmt"

	"github.com/jonkmatsumo/interview-agent/internal/types"
)

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateContent generates text content using the specified model tier
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// StreamConversation streams an assistant reply for a conversation,
	// invoking onChunk for each text fragment as it arrives. A non-nil error
	// from onChunk aborts the stream.
	StreamConversation(ctx context.Context, system string, messages []types.Message, tier ModelTier, onChunk func(string) error) error
	// GetModel returns the underlying provider model for a tier (for direct access if needed)
	GetModel(tier ModelTier) string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", config.Provider)
	}
}
