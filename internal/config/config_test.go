package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"PORT", "APP_ENV", "TEMP_DIR", "MAX_UPLOAD_SIZE", "SHUTDOWN_TIMEOUT", "UPSTREAM_TIMEOUT",
	"TTS_PROVIDER", "STT_PROVIDER", "LLM_PROVIDER",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_TRANSCRIPTION_MODEL", "OPENAI_COMPLETION_MODEL",
	"GEMINI_API_KEY", "GEMINI_MODEL",
	"ELEVEN_LABS_API_KEY", "ELEVEN_LABS_API_BASE_URL", "ELEVEN_LABS_VOICE_ID", "ELEVEN_LABS_MODEL_ID",
	"TTS_LANGUAGE_CODE", "TTS_VOICE_GENDER", "STT_LANGUAGE_CODE", "NOTES_MAX_TOKENS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "50M", cfg.MaxUploadSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, time.Duration(0), cfg.UpstreamTimeout)
	assert.Equal(t, ProviderGoogle, cfg.TTSProvider)
	assert.Equal(t, ProviderOpenAI, cfg.STTProvider)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, "whisper-1", cfg.OpenAI.TranscriptionModel)
	assert.Equal(t, "gpt-4", cfg.OpenAI.CompletionModel)
	assert.Equal(t, 500, cfg.NotesMaxTokens)
	assert.Equal(t, "en-US", cfg.Voice.LanguageCode)
	assert.Equal(t, "NEUTRAL", cfg.Voice.Gender)
	assert.NotEmpty(t, cfg.TempDir)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "development")
	t.Setenv("UPSTREAM_TIMEOUT", "45s")
	t.Setenv("TTS_PROVIDER", "ElevenLabs")
	t.Setenv("ELEVEN_LABS_API_KEY", "xi-key")
	t.Setenv("STT_PROVIDER", "google")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gm-key")
	t.Setenv("NOTES_MAX_TOKENS", "800")
	t.Setenv("TTS_VOICE_GENDER", "female")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 45*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, ProviderElevenLabs, cfg.TTSProvider)
	assert.Equal(t, ProviderGoogle, cfg.STTProvider)
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "gm-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, 800, cfg.NotesMaxTokens)
	assert.Equal(t, "FEMALE", cfg.Voice.Gender)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing openai key", map[string]string{}},
		{"unknown tts provider", map[string]string{"OPENAI_API_KEY": "k", "TTS_PROVIDER": "polly"}},
		{"unknown stt provider", map[string]string{"OPENAI_API_KEY": "k", "STT_PROVIDER": "vosk"}},
		{"unknown llm provider", map[string]string{"OPENAI_API_KEY": "k", "LLM_PROVIDER": "llama"}},
		{"elevenlabs without key", map[string]string{"OPENAI_API_KEY": "k", "TTS_PROVIDER": "elevenlabs"}},
		{"gemini without key", map[string]string{"STT_PROVIDER": "mock", "LLM_PROVIDER": "gemini"}},
		{"bad gender", map[string]string{"OPENAI_API_KEY": "k", "TTS_VOICE_GENDER": "robot"}},
		{"bad max tokens", map[string]string{"OPENAI_API_KEY": "k", "NOTES_MAX_TOKENS": "lots"}},
		{"non-positive max tokens", map[string]string{"OPENAI_API_KEY": "k", "NOTES_MAX_TOKENS": "0"}},
		{"bad timeout", map[string]string{"OPENAI_API_KEY": "k", "UPSTREAM_TIMEOUT": "soon"}},
		{"negative timeout", map[string]string{"OPENAI_API_KEY": "k", "UPSTREAM_TIMEOUT": "-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_MockProvidersNeedNoCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("TTS_PROVIDER", "mock")
	t.Setenv("STT_PROVIDER", "mock")
	t.Setenv("LLM_PROVIDER", "mock")

	_, err := Load()
	assert.NoError(t, err)
}
