package tts

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain/repositories"
)

// MockTextToSpeech is a deterministic synthesizer for local runs without credentials
type MockTextToSpeech struct {
	logger *zap.Logger
}

// Ensure MockTextToSpeech implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*MockTextToSpeech)(nil)

// NewMockTextToSpeech creates a new mock text-to-speech service
func NewMockTextToSpeech(logger *zap.Logger) *MockTextToSpeech {
	return &MockTextToSpeech{logger: logger}
}

// SynthesizeSpeech returns an ID3-prefixed byte stream derived from the text.
// The same text always yields the same bytes.
func (m *MockTextToSpeech) SynthesizeSpeech(ctx context.Context, text string, voice repositories.VoiceConfig) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	m.logger.Info("Processing mock text-to-speech",
		zap.Int("chars", len(text)),
		zap.String("languageCode", voice.LanguageCode))

	sum := sha256.Sum256([]byte(text))
	audio := append([]byte("ID3"), sum[:]...)
	return audio, nil
}
