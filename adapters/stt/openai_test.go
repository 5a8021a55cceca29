package stt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

func TestNewOpenAISpeechToText(t *testing.T) {
	_, err := NewOpenAISpeechToText(OpenAIConfig{}, zaptest.NewLogger(t))
	assert.Error(t, err)

	o, err := NewOpenAISpeechToText(OpenAIConfig{APIKey: "sk-test"}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "whisper-1", o.model)
}

func TestOpenAISpeechToText_TranscribeFile(t *testing.T) {
	var gotModel, gotFilename, gotAuth string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/audio/transcriptions" {
			http.NotFound(w, r)
			return
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		gotModel = r.FormValue("model")

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotFilename = header.Filename
		gotBody, _ = io.ReadAll(file)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"text": "Welcome to episode forty two."})
	}))
	defer server.Close()

	o, err := NewOpenAISpeechToText(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	path := writeAudio(t, "upload-1234.mp3", []byte("ID3 fake mp3"))
	transcript, err := o.TranscribeFile(context.Background(), path, repositories.AudioConfig{MimeType: domain.MimeTypeAudioMPEG})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to episode forty two.", transcript)
	assert.Equal(t, "whisper-1", gotModel)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, filepath.Base(path), gotFilename)
	assert.Equal(t, []byte("ID3 fake mp3"), gotBody)
}

func TestOpenAISpeechToText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":{"message":"upstream overloaded","type":"server_error"}}`))
	}))
	defer server.Close()

	o, err := NewOpenAISpeechToText(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = o.TranscribeFile(context.Background(), writeAudio(t, "a.wav", []byte("RIFF")),
		repositories.AudioConfig{MimeType: domain.MimeTypeAudioWAV})
	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
	assert.Contains(t, err.Error(), "upstream overloaded")
}
