package repositories

import "context"

// LargeLanguageModel abstracts any chat-completion provider
type LargeLanguageModel interface {
	// Generate takes a user prompt and returns the model's reply, bounded by maxTokens
	Generate(ctx context.Context, prompt string, maxTokens int) (string, error)
}
