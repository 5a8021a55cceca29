package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain/repositories"
)

// MockLLM is a placeholder completion provider for local runs
type MockLLM struct {
	logger *zap.Logger
}

// Ensure MockLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*MockLLM)(nil)

// NewMockLLM creates a new mock completion provider
func NewMockLLM(logger *zap.Logger) *MockLLM {
	return &MockLLM{logger: logger}
}

// Generate returns canned show notes
func (m *MockLLM) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.logger.Info("Processing mock completion",
		zap.Int("promptChars", len(prompt)),
		zap.Int("maxTokens", maxTokens))

	return fmt.Sprintf("Summary: a %d character transcript.\nTimestamps: 00:00 Intro\nQuotes: none", len(prompt)), nil
}
