package stt

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const (
	openAIProviderName  = "openai-whisper"
	defaultWhisperModel = openai.Whisper1
)

// OpenAIConfig holds configuration for the Whisper transcriber
type OpenAIConfig struct {
	APIKey  string // Required
	BaseURL string // Optional: overrides https://api.openai.com/v1
	Model   string // Optional: defaults to whisper-1
}

// OpenAISpeechToText implements SpeechToText with the OpenAI transcription API
type OpenAISpeechToText struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// Ensure OpenAISpeechToText implements the SpeechToText interface
var _ repositories.SpeechToText = (*OpenAISpeechToText)(nil)

// NewOpenAISpeechToText creates a Whisper transcriber
func NewOpenAISpeechToText(config OpenAIConfig, logger *zap.Logger) (*OpenAISpeechToText, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = defaultWhisperModel
		logger.Info("Using default transcription model", zap.String("model", model))
	}

	return &OpenAISpeechToText{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		logger: logger,
	}, nil
}

// TranscribeFile uploads the whole file and returns the transcript text.
// The language is left to the model's auto-detection.
func (o *OpenAISpeechToText) TranscribeFile(ctx context.Context, path string, config repositories.AudioConfig) (string, error) {
	o.logger.Info("Transcribing audio",
		zap.String("model", o.model),
		zap.String("mimeType", config.MimeType))

	resp, err := o.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    o.model,
		FilePath: path,
	})
	if err != nil {
		return "", domain.UpstreamError(openAIProviderName, fmt.Errorf("failed to create transcription: %w", err))
	}

	o.logger.Info("Transcription completed", zap.Int("chars", len(resp.Text)))
	return resp.Text, nil
}
