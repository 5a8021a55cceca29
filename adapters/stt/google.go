package stt

import (
	"context"
	"fmt"
	"os"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"github.com/googleapis/gax-go/v2"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

const (
	googleProviderName = "google-stt"

	// Synchronous recognition stops at about one minute of audio, roughly 1 MiB of
	// 128 kbps MP3. Anything larger goes through the long-running API.
	syncRecognizeMaxBytes = 1 << 20
)

// recognizeClient is the subset of the Speech API used by GoogleSpeechToText
type recognizeClient interface {
	Recognize(ctx context.Context, req *speechpb.RecognizeRequest, opts ...gax.CallOption) (*speechpb.RecognizeResponse, error)
	LongRunningRecognize(ctx context.Context, req *speechpb.LongRunningRecognizeRequest, opts ...gax.CallOption) (*speechpb.LongRunningRecognizeResponse, error)
	Close() error
}

// speechClient waits on long-running operations so callers see a plain response
type speechClient struct {
	*speech.Client
}

func (c speechClient) LongRunningRecognize(ctx context.Context, req *speechpb.LongRunningRecognizeRequest, opts ...gax.CallOption) (*speechpb.LongRunningRecognizeResponse, error) {
	op, err := c.Client.LongRunningRecognize(ctx, req, opts...)
	if err != nil {
		return nil, err
	}
	return op.Wait(ctx)
}

// GoogleSpeechToText implements SpeechToText for Google Cloud.
// Credentials come from Application Default Credentials.
type GoogleSpeechToText struct {
	client recognizeClient
	logger *zap.Logger
}

// Ensure GoogleSpeechToText implements the SpeechToText interface
var _ repositories.SpeechToText = (*GoogleSpeechToText)(nil)

// NewGoogleSpeechToText creates a Google Cloud Speech client
func NewGoogleSpeechToText(ctx context.Context, logger *zap.Logger) (*GoogleSpeechToText, error) {
	client, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech client: %w", err)
	}

	return &GoogleSpeechToText{client: speechClient{Client: client}, logger: logger}, nil
}

// TranscribeFile sends short files to synchronous recognition and longer ones to
// long-running recognition, then joins the best alternative of every result.
func (g *GoogleSpeechToText) TranscribeFile(ctx context.Context, path string, config repositories.AudioConfig) (string, error) {
	encoding, err := getAudioEncoding(config.MimeType)
	if err != nil {
		return "", err
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return "", domain.StorageError("read audio file", err)
	}

	language := config.Language
	if language == "" {
		language = "en-US"
	}

	// Sample rate is read from the WAV header or MP3 frames
	recognitionConfig := &speechpb.RecognitionConfig{
		Encoding:                   encoding,
		LanguageCode:               language,
		EnableAutomaticPunctuation: true,
	}
	recognitionAudio := &speechpb.RecognitionAudio{
		AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
	}

	longRunning := len(audio) > syncRecognizeMaxBytes
	g.logger.Info("Transcribing audio",
		zap.Int("audioSize", len(audio)),
		zap.String("encoding", encoding.String()),
		zap.String("language", language),
		zap.Bool("longRunning", longRunning))

	var results []*speechpb.SpeechRecognitionResult
	if longRunning {
		resp, err := g.client.LongRunningRecognize(ctx, &speechpb.LongRunningRecognizeRequest{
			Config: recognitionConfig,
			Audio:  recognitionAudio,
		})
		if err != nil {
			return "", domain.UpstreamError(googleProviderName, fmt.Errorf("failed to run long-running recognition: %w", err))
		}
		results = resp.GetResults()
	} else {
		resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
			Config: recognitionConfig,
			Audio:  recognitionAudio,
		})
		if err != nil {
			return "", domain.UpstreamError(googleProviderName, fmt.Errorf("failed to recognize speech: %w", err))
		}
		results = resp.GetResults()
	}

	transcript := joinTranscript(results)
	g.logger.Info("Transcription completed", zap.Int("results", len(results)), zap.Int("chars", len(transcript)))
	return transcript, nil
}

// joinTranscript takes the best alternative of each result
func joinTranscript(results []*speechpb.SpeechRecognitionResult) string {
	var parts []string
	for _, result := range results {
		if alternatives := result.GetAlternatives(); len(alternatives) > 0 {
			parts = append(parts, strings.TrimSpace(alternatives[0].GetTranscript()))
		}
	}
	return strings.Join(parts, " ")
}

// Close releases the underlying gRPC connection
func (g *GoogleSpeechToText) Close() error {
	return g.client.Close()
}

// getAudioEncoding maps the declared upload type to a Google Speech API enum.
// WAV stays unspecified so the API reads the sample format from the header.
func getAudioEncoding(mimeType string) (speechpb.RecognitionConfig_AudioEncoding, error) {
	switch mimeType {
	case domain.MimeTypeAudioWAV:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, nil
	case domain.MimeTypeAudioMPEG:
		return speechpb.RecognitionConfig_MP3, nil
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED, fmt.Errorf("unsupported audio type: %s", mimeType)
	}
}
