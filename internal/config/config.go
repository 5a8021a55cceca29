package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider names accepted by the *_PROVIDER variables
const (
	ProviderGoogle     = "google"
	ProviderElevenLabs = "elevenlabs"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

const (
	defaultPort               = "8000"
	defaultMaxUploadSize      = "50M"
	defaultShutdownTimeout    = 10 * time.Second
	defaultTranscriptionModel = "whisper-1"
	defaultCompletionModel    = "gpt-4"
	defaultNotesMaxTokens     = 500
	defaultGeminiModel        = "gemini-2.0-flash"
	defaultLanguageCode       = "en-US"
	defaultVoiceGender        = "NEUTRAL"
)

// Config is the process-wide configuration, read once at startup
type Config struct {
	Port            string
	Env             string
	TempDir         string
	MaxUploadSize   string
	ShutdownTimeout time.Duration
	UpstreamTimeout time.Duration

	TTSProvider string
	STTProvider string
	LLMProvider string

	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	ElevenLabs ElevenLabsConfig
	Voice      VoiceConfig

	STTLanguageCode string
	NotesMaxTokens  int
}

// OpenAIConfig holds the credential and models for the OpenAI provider
type OpenAIConfig struct {
	APIKey             string
	BaseURL            string
	TranscriptionModel string
	CompletionModel    string
}

// GeminiConfig holds the credential and model for the Gemini provider
type GeminiConfig struct {
	APIKey string
	Model  string
}

// ElevenLabsConfig holds the ElevenLabs synthesizer settings
type ElevenLabsConfig struct {
	APIKey     string
	APIBaseURL string
	VoiceID    string
	ModelID    string
}

// VoiceConfig selects the synthesis voice
type VoiceConfig struct {
	LanguageCode string
	Gender       string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", defaultShutdownTimeout)
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := durationEnv("UPSTREAM_TIMEOUT", 0)
	if err != nil {
		return nil, err
	}

	maxTokens, err := intEnv("NOTES_MAX_TOKENS", defaultNotesMaxTokens)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:            stringEnv("PORT", defaultPort),
		Env:             stringEnv("APP_ENV", "production"),
		TempDir:         stringEnv("TEMP_DIR", os.TempDir()),
		MaxUploadSize:   stringEnv("MAX_UPLOAD_SIZE", defaultMaxUploadSize),
		ShutdownTimeout: shutdownTimeout,
		UpstreamTimeout: upstreamTimeout,

		TTSProvider: strings.ToLower(stringEnv("TTS_PROVIDER", ProviderGoogle)),
		STTProvider: strings.ToLower(stringEnv("STT_PROVIDER", ProviderOpenAI)),
		LLMProvider: strings.ToLower(stringEnv("LLM_PROVIDER", ProviderOpenAI)),

		OpenAI: OpenAIConfig{
			APIKey:             os.Getenv("OPENAI_API_KEY"),
			BaseURL:            os.Getenv("OPENAI_BASE_URL"),
			TranscriptionModel: stringEnv("OPENAI_TRANSCRIPTION_MODEL", defaultTranscriptionModel),
			CompletionModel:    stringEnv("OPENAI_COMPLETION_MODEL", defaultCompletionModel),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  stringEnv("GEMINI_MODEL", defaultGeminiModel),
		},
		ElevenLabs: ElevenLabsConfig{
			APIKey:     os.Getenv("ELEVEN_LABS_API_KEY"),
			APIBaseURL: os.Getenv("ELEVEN_LABS_API_BASE_URL"),
			VoiceID:    os.Getenv("ELEVEN_LABS_VOICE_ID"),
			ModelID:    os.Getenv("ELEVEN_LABS_MODEL_ID"),
		},
		Voice: VoiceConfig{
			LanguageCode: stringEnv("TTS_LANGUAGE_CODE", defaultLanguageCode),
			Gender:       strings.ToUpper(stringEnv("TTS_VOICE_GENDER", defaultVoiceGender)),
		},

		STTLanguageCode: stringEnv("STT_LANGUAGE_CODE", defaultLanguageCode),
		NotesMaxTokens:  maxTokens,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks provider names and that the selected providers have credentials
func (c *Config) Validate() error {
	switch c.TTSProvider {
	case ProviderGoogle, ProviderMock:
	case ProviderElevenLabs:
		if c.ElevenLabs.APIKey == "" {
			return fmt.Errorf("ELEVEN_LABS_API_KEY is required when TTS_PROVIDER=%s", c.TTSProvider)
		}
	default:
		return fmt.Errorf("unsupported TTS_PROVIDER: %q", c.TTSProvider)
	}

	switch c.STTProvider {
	case ProviderGoogle, ProviderMock:
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when STT_PROVIDER=%s", c.STTProvider)
		}
	default:
		return fmt.Errorf("unsupported STT_PROVIDER: %q", c.STTProvider)
	}

	switch c.LLMProvider {
	case ProviderMock:
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when LLM_PROVIDER=%s", c.LLMProvider)
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=%s", c.LLMProvider)
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER: %q", c.LLMProvider)
	}

	switch c.Voice.Gender {
	case "NEUTRAL", "FEMALE", "MALE":
	default:
		return fmt.Errorf("unsupported TTS_VOICE_GENDER: %q", c.Voice.Gender)
	}

	if c.NotesMaxTokens <= 0 {
		return fmt.Errorf("NOTES_MAX_TOKENS must be positive, got %d", c.NotesMaxTokens)
	}

	if c.UpstreamTimeout < 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must not be negative, got %s", c.UpstreamTimeout)
	}

	return nil
}

// IsDevelopment reports whether the development logger should be used
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func stringEnv(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return value, nil
}
