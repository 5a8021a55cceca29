package llm

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const (
	openAIProviderName     = "openai-chat"
	defaultCompletionModel = openai.GPT4
)

// OpenAIConfig holds configuration for the chat-completion provider
type OpenAIConfig struct {
	APIKey  string // Required
	BaseURL string // Optional: overrides https://api.openai.com/v1
	Model   string // Optional: defaults to gpt-4
}

// OpenAILLM implements LargeLanguageModel with the OpenAI chat-completion API
type OpenAILLM struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Ensure OpenAILLM implements the LargeLanguageModel interface
var _ repositories.LargeLanguageModel = (*OpenAILLM)(nil)

// NewOpenAILLM creates a new chat-completion client
func NewOpenAILLM(config OpenAIConfig, logger *zap.Logger) (*OpenAILLM, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = defaultCompletionModel
		logger.Info("Using default completion model", zap.String("model", model))
	}

	return &OpenAILLM{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends prompt as a single user message and returns the first choice
func (o *OpenAILLM) Generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return "", domain.UpstreamError(openAIProviderName, fmt.Errorf("failed to create chat completion: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", domain.UpstreamError(openAIProviderName, fmt.Errorf("chat completion returned no choices"))
	}

	o.logger.Info("Chat completion generated",
		zap.String("model", resp.Model),
		zap.Int("promptTokens", resp.Usage.PromptTokens),
		zap.Int("completionTokens", resp.Usage.CompletionTokens),
		zap.String("finishReason", string(resp.Choices[0].FinishReason)))

	return resp.Choices[0].Message.Content, nil
}
