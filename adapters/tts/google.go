package tts

import (
	"context"
	"fmt"
	"strings"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const googleProviderName = "google-tts"

// synthesisClient is the subset of *texttospeech.Client used by GoogleTTS
type synthesisClient interface {
	SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error)
	Close() error
}

// GoogleTTS implements TextToSpeech using Google Cloud Text-to-Speech.
// Credentials come from Application Default Credentials.
type GoogleTTS struct {
	client synthesisClient
	logger *zap.Logger
}

// Ensure GoogleTTS implements the TextToSpeech interface
var _ repositories.TextToSpeech = (*GoogleTTS)(nil)

// NewGoogleTTS creates a Google Cloud Text-to-Speech client
func NewGoogleTTS(ctx context.Context, logger *zap.Logger) (*GoogleTTS, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create text-to-speech client: %w", err)
	}

	return &GoogleTTS{client: client, logger: logger}, nil
}

// SynthesizeSpeech converts text to audio in a single request
func (g *GoogleTTS) SynthesizeSpeech(ctx context.Context, text string, voice repositories.VoiceConfig) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text cannot be empty")
	}

	encoding, err := googleAudioEncoding(voice.Encoding)
	if err != nil {
		return nil, err
	}

	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: voice.LanguageCode,
			SsmlGender:   googleVoiceGender(voice.Gender),
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: encoding,
		},
	}

	g.logger.Info("Synthesizing speech",
		zap.Int("chars", len(text)),
		zap.String("languageCode", voice.LanguageCode),
		zap.String("gender", string(voice.Gender)))

	resp, err := g.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, domain.UpstreamError(googleProviderName, fmt.Errorf("failed to synthesize speech: %w", err))
	}

	g.logger.Info("Speech synthesized", zap.Int("audioBytes", len(resp.GetAudioContent())))
	return resp.GetAudioContent(), nil
}

// Close releases the underlying gRPC connection
func (g *GoogleTTS) Close() error {
	return g.client.Close()
}

func googleVoiceGender(gender repositories.VoiceGender) texttospeechpb.SsmlVoiceGender {
	switch gender {
	case repositories.VoiceGenderFemale:
		return texttospeechpb.SsmlVoiceGender_FEMALE
	case repositories.VoiceGenderMale:
		return texttospeechpb.SsmlVoiceGender_MALE
	default:
		return texttospeechpb.SsmlVoiceGender_NEUTRAL
	}
}

func googleAudioEncoding(encoding repositories.AudioEncoding) (texttospeechpb.AudioEncoding, error) {
	switch encoding {
	case repositories.AudioEncodingMP3, "":
		return texttospeechpb.AudioEncoding_MP3, nil
	default:
		return texttospeechpb.AudioEncoding_AUDIO_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio encoding: %s", encoding)
	}
}
