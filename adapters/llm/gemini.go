package llm

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const (
	geminiProviderName = "gemini"
	defaultModel       = "gemini-2.0-flash"
	defaultTemperature = 0.7
)

// GeminiConfig holds configuration for the Gemini adapter
type GeminiConfig struct {
	APIKey      string  // Required
	Model       string  // Optional: defaults to gemini-2.0-flash
	Temperature float32 // Optional: between 0 and 1
}

// GeminiLLM implements the LargeLanguageModel interface using Google's Gemini API
type GeminiLLM struct {
	client      *genai.Client
	logger      *zap.Logger
	model       string
	temperature float32
}

// Ensure GeminiLLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*GeminiLLM)(nil)

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}

	if config.Temperature != 0 && (config.Temperature < 0 || config.Temperature > 1) {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", config.Temperature)
	}

	return nil
}

// NewGeminiLLM creates a new Gemini LLM instance
func NewGeminiLLM(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiLLM, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}

	return &GeminiLLM{
		client:      client,
		logger:      logger,
		model:       model,
		temperature: temperature,
	}, nil
}

// Generate sends a single-turn prompt and concatenates the text parts of the first candidate
func (g *GeminiLLM) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		MaxOutputTokens: int32(maxTokens),
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", domain.UpstreamError(geminiProviderName, fmt.Errorf("failed to generate content: %w", err))
	}

	text := candidateText(response)
	if text == "" {
		return "", domain.UpstreamError(geminiProviderName, fmt.Errorf("no content generated"))
	}

	g.logger.Info("Gemini content generated",
		zap.String("model", g.model),
		zap.Int("chars", len(text)))

	return text, nil
}

// candidateText extracts the text of the first candidate
func candidateText(response *genai.GenerateContentResponse) string {
	if response == nil || len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}

	var text strings.Builder
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String()
}
