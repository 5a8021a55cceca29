package repositories

import "context"

// SpeechToText abstracts speech recognition services
type SpeechToText interface {
	// TranscribeFile converts the audio file at path to text
	TranscribeFile(ctx context.Context, path string, config AudioConfig) (string, error)
}

// AudioConfig represents audio configuration for speech recognition
type AudioConfig struct {
	// MimeType is the declared type of the upload, e.g. audio/mpeg or audio/wav
	MimeType string `json:"mime_type"`
	Language string `json:"language"`
}
