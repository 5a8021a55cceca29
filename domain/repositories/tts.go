package repositories

import "context"

// TextToSpeech abstracts speech synthesis providers
type TextToSpeech interface {
	// SynthesizeSpeech converts text to encoded audio bytes
	SynthesizeSpeech(ctx context.Context, text string, voice VoiceConfig) ([]byte, error)
}

// VoiceGender is the requested voice gender for synthesis
type VoiceGender string

const (
	VoiceGenderNeutral VoiceGender = "NEUTRAL"
	VoiceGenderFemale  VoiceGender = "FEMALE"
	VoiceGenderMale    VoiceGender = "MALE"
)

// AudioEncoding is the requested output encoding for synthesis
type AudioEncoding string

const (
	AudioEncodingMP3 AudioEncoding = "MP3"
)

// VoiceConfig represents voice selection and output encoding for synthesis
type VoiceConfig struct {
	LanguageCode string        `json:"language_code"`
	Gender       VoiceGender   `json:"gender"`
	Encoding     AudioEncoding `json:"encoding"`
}
