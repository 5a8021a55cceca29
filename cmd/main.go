package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/satriahrh/castnotes/adapters/llm"
	"github.com/satriahrh/castnotes/adapters/pdf"
	"github.com/satriahrh/castnotes/adapters/stt"
	"github.com/satriahrh/castnotes/adapters/tts"
	"github.com/satriahrh/castnotes/domain/repositories"
	"github.com/satriahrh/castnotes/internal/api"
	"github.com/satriahrh/castnotes/internal/config"
	"github.com/satriahrh/castnotes/internal/upload"
	"github.com/satriahrh/castnotes/usecase"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if envErr != nil {
		logger.Debug("No .env file loaded, using process environment", zap.Error(envErr))
	}

	ctx := context.Background()

	// Initialize adapters
	textToSpeech, err := newTextToSpeech(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create text-to-speech provider", zap.String("provider", cfg.TTSProvider), zap.Error(err))
	}

	speechToText, err := newSpeechToText(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create speech-to-text provider", zap.String("provider", cfg.STTProvider), zap.Error(err))
	}

	notesModel, err := newLargeLanguageModel(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create completion provider", zap.String("provider", cfg.LLMProvider), zap.Error(err))
	}

	store, err := upload.NewStore(cfg.TempDir, logger)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Initialize usecase services
	voice := repositories.VoiceConfig{
		LanguageCode: cfg.Voice.LanguageCode,
		Gender:       repositories.VoiceGender(cfg.Voice.Gender),
		Encoding:     repositories.AudioEncodingMP3,
	}
	audiobookService := usecase.NewAudiobookService(pdf.NewExtractor(logger), textToSpeech, voice, cfg.UpstreamTimeout, logger)
	showNotesService := usecase.NewShowNotesService(speechToText, notesModel, cfg.STTLanguageCode,
		cfg.NotesMaxTokens, cfg.UpstreamTimeout, logger)

	handler := api.NewHandler(store, audiobookService, showNotesService, logger)
	e := api.NewServer(handler, cfg.MaxUploadSize, logger)

	// Graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("ttsProvider", cfg.TTSProvider),
		zap.String("sttProvider", cfg.STTProvider),
		zap.String("llmProvider", cfg.LLMProvider),
		zap.String("tempDir", store.Dir()))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	closeProviders(logger, textToSpeech, speechToText)

	logger.Info("Server exited")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newTextToSpeech(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.TextToSpeech, error) {
	switch cfg.TTSProvider {
	case config.ProviderGoogle:
		return tts.NewGoogleTTS(ctx, logger)
	case config.ProviderElevenLabs:
		return tts.NewElevenLabsTTS(tts.ElevenLabsConfig{
			APIKey:     cfg.ElevenLabs.APIKey,
			APIBaseURL: cfg.ElevenLabs.APIBaseURL,
			VoiceID:    cfg.ElevenLabs.VoiceID,
			ModelID:    cfg.ElevenLabs.ModelID,
		}, logger)
	case config.ProviderMock:
		return tts.NewMockTextToSpeech(logger), nil
	default:
		return nil, fmt.Errorf("unsupported TTS provider: %s", cfg.TTSProvider)
	}
}

func newSpeechToText(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.SpeechToText, error) {
	switch cfg.STTProvider {
	case config.ProviderOpenAI:
		return stt.NewOpenAISpeechToText(stt.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.TranscriptionModel,
		}, logger)
	case config.ProviderGoogle:
		return stt.NewGoogleSpeechToText(ctx, logger)
	case config.ProviderMock:
		return stt.NewMockSpeechToText(logger), nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s", cfg.STTProvider)
	}
}

func newLargeLanguageModel(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repositories.LargeLanguageModel, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return llm.NewOpenAILLM(llm.OpenAIConfig{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Model:   cfg.OpenAI.CompletionModel,
		}, logger)
	case config.ProviderGemini:
		return llm.NewGeminiLLM(ctx, llm.GeminiConfig{
			APIKey: cfg.Gemini.APIKey,
			Model:  cfg.Gemini.Model,
		}, logger)
	case config.ProviderMock:
		return llm.NewMockLLM(logger), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.LLMProvider)
	}
}

// closeProviders releases gRPC connections held by the Google providers
func closeProviders(logger *zap.Logger, providers ...any) {
	for _, provider := range providers {
		closer, ok := provider.(io.Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close provider", zap.Error(err))
		}
	}
}
