package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const (
	audiobookFilename = "output.mp3"

	msgNotAPDF     = "File must be a PDF"
	msgNoTextInPDF = "No text found in PDF"
)

// AudiobookService turns a PDF document into an MP3 narration
type AudiobookService struct {
	extractor    repositories.TextExtractor
	textToSpeech repositories.TextToSpeech
	voice        repositories.VoiceConfig
	timeout      time.Duration
	logger       *zap.Logger
}

// NewAudiobookService creates a new audiobook service.
// A zero timeout leaves provider calls bounded only by the caller's context.
func NewAudiobookService(
	extractor repositories.TextExtractor,
	tts repositories.TextToSpeech,
	voice repositories.VoiceConfig,
	timeout time.Duration,
	logger *zap.Logger,
) *AudiobookService {
	if voice.Encoding == "" {
		voice.Encoding = repositories.AudioEncodingMP3
	}

	return &AudiobookService{
		extractor:    extractor,
		textToSpeech: tts,
		voice:        voice,
		timeout:      timeout,
		logger:       logger,
	}
}

// ValidateUpload checks the declared content type before anything touches disk
func (s *AudiobookService) ValidateUpload(mimeType string) error {
	if mimeType != domain.MimeTypePDF {
		return domain.ValidationError(domain.ErrInvalidInput, msgNotAPDF)
	}
	return nil
}

// Convert extracts the text of the PDF at path and synthesizes it
func (s *AudiobookService) Convert(ctx context.Context, path string) (*domain.AudiobookResult, error) {
	text, err := s.extractText(ctx, path)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.ValidationError(domain.ErrEmptyContent, msgNoTextInPDF)
	}

	audio, err := s.synthesize(ctx, text)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Audiobook generated",
		zap.Int("textChars", len(text)),
		zap.Int("audioBytes", len(audio)))

	return &domain.AudiobookResult{
		Audio:    audio,
		MimeType: domain.MimeTypeAudioMPEG,
		Filename: audiobookFilename,
	}, nil
}

func (s *AudiobookService) extractText(ctx context.Context, path string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.extractor.ExtractText(ctx, path)
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

func (s *AudiobookService) synthesize(ctx context.Context, text string) ([]byte, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeout)
	defer cancel()

	audio, err := s.textToSpeech.SynthesizeSpeech(ctx, text, s.voice)
	if err != nil {
		return nil, fmt.Errorf("speech synthesis failed: %w", err)
	}
	return audio, nil
}

// withOptionalTimeout applies timeout when it is positive
func withOptionalTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
