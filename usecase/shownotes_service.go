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
	showNotesPrompt = "Using the following podcast transcript, generate detailed show notes " +
		"including a summary, key timestamps, and notable quotes:\n\n"

	msgNotAnAudioFile  = "File must be an audio file (MP3 or WAV)"
	msgEmptyTranscript = "Transcription failed or returned empty text"
	defaultMaxTokens   = 500
)

// ShowNotesService transcribes an episode and writes show notes for it
type ShowNotesService struct {
	speechToText repositories.SpeechToText
	llm          repositories.LargeLanguageModel
	language     string
	maxTokens    int
	timeout      time.Duration
	logger       *zap.Logger
}

// NewShowNotesService creates a new show notes service
func NewShowNotesService(
	stt repositories.SpeechToText,
	llm repositories.LargeLanguageModel,
	language string,
	maxTokens int,
	timeout time.Duration,
	logger *zap.Logger,
) *ShowNotesService {
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	return &ShowNotesService{
		speechToText: stt,
		llm:          llm,
		language:     language,
		maxTokens:    maxTokens,
		timeout:      timeout,
		logger:       logger,
	}
}

// ValidateUpload accepts MP3 and WAV uploads only
func (s *ShowNotesService) ValidateUpload(mimeType string) error {
	switch mimeType {
	case domain.MimeTypeAudioMPEG, domain.MimeTypeAudioWAV:
		return nil
	default:
		return domain.ValidationError(domain.ErrInvalidInput, msgNotAnAudioFile)
	}
}

// Process transcribes the audio file at path and generates show notes from the transcript
func (s *ShowNotesService) Process(ctx context.Context, path, mimeType string) (*domain.ShowNotesResult, error) {
	transcript, err := s.transcribe(ctx, path, mimeType)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(transcript) == "" {
		return nil, domain.ValidationError(domain.ErrEmptyContent, msgEmptyTranscript)
	}

	notes, err := s.generateNotes(ctx, transcript)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Show notes generated",
		zap.Int("transcriptChars", len(transcript)),
		zap.Int("notesChars", len(notes)))

	return &domain.ShowNotesResult{
		Transcript: transcript,
		ShowNotes:  notes,
	}, nil
}

// BuildShowNotesPrompt embeds the transcript verbatim in the fixed show notes prompt
func BuildShowNotesPrompt(transcript string) string {
	return showNotesPrompt + transcript
}

func (s *ShowNotesService) transcribe(ctx context.Context, path, mimeType string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeout)
	defer cancel()

	transcript, err := s.speechToText.TranscribeFile(ctx, path, repositories.AudioConfig{
		MimeType: mimeType,
		Language: s.language,
	})
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	return transcript, nil
}

func (s *ShowNotesService) generateNotes(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := withOptionalTimeout(ctx, s.timeout)
	defer cancel()

	notes, err := s.llm.Generate(ctx, BuildShowNotesPrompt(transcript), s.maxTokens)
	if err != nil {
		return "", fmt.Errorf("show notes generation failed: %w", err)
	}
	return notes, nil
}
