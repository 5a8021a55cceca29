package stt

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain/repositories"
)

// MockSpeechToText is a placeholder implementation for speech recognition
type MockSpeechToText struct {
	logger *zap.Logger
}

// Ensure MockSpeechToText implements the SpeechToText interface
var _ repositories.SpeechToText = (*MockSpeechToText)(nil)

// NewMockSpeechToText creates a new mock speech-to-text service
func NewMockSpeechToText(logger *zap.Logger) *MockSpeechToText {
	return &MockSpeechToText{logger: logger}
}

// TranscribeFile returns a canned transcript sized by the audio file
func (s *MockSpeechToText) TranscribeFile(ctx context.Context, path string, config repositories.AudioConfig) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat audio file: %w", err)
	}

	s.logger.Info("Processing mock speech-to-text",
		zap.Int64("audioSize", info.Size()),
		zap.String("mimeType", config.MimeType))

	switch {
	case info.Size() == 0:
		return "", nil
	case info.Size() > 10000:
		return "Welcome back to the show. Today we talk about shipping small services and keeping them boring.", nil
	default:
		return "Welcome to the show.", nil
	}
}
