package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"google.golang.org/genai"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

var (
	_ repositories.LargeLanguageModel = &OpenAILLM{}
	_ repositories.LargeLanguageModel = &GeminiLLM{}
	_ repositories.LargeLanguageModel = &MockLLM{}
)

type chatRequest struct {
	Model     string `json:"model"`
	MaxTokens int    `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAILLM_Generate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"model": "gpt-4",
			"choices": [{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "## Summary\nGreat episode."}}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 5, "total_tokens": 17}
		}`))
	}))
	defer server.Close()

	llm, err := NewOpenAILLM(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	notes, err := llm.Generate(context.Background(), "summarize this", 500)
	require.NoError(t, err)

	assert.Equal(t, "## Summary\nGreat episode.", notes)
	assert.Equal(t, "gpt-4", got.Model)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "summarize this", got.Messages[0].Content)
}

func TestOpenAILLM_Generate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "chatcmpl-2", "choices": []}`))
	}))
	defer server.Close()

	llm, err := NewOpenAILLM(OpenAIConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = llm.Generate(context.Background(), "summarize this", 500)
	require.Error(t, err)
	assert.Equal(t, domain.KindUpstreamProvider, domain.KindOf(err))
}

func TestOpenAILLM_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`))
	}))
	defer server.Close()

	llm, err := NewOpenAILLM(OpenAIConfig{APIKey: "sk-bad", BaseURL: server.URL + "/v1"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = llm.Generate(context.Background(), "summarize this", 500)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestNewOpenAILLM_RequiresKey(t *testing.T) {
	_, err := NewOpenAILLM(OpenAIConfig{}, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestValidateGeminiConfig(t *testing.T) {
	assert.Error(t, ValidateGeminiConfig(GeminiConfig{}))
	assert.Error(t, ValidateGeminiConfig(GeminiConfig{APIKey: "k", Temperature: 1.5}))
	assert.NoError(t, ValidateGeminiConfig(GeminiConfig{APIKey: "k", Temperature: 0.2}))
}

func TestCandidateText(t *testing.T) {
	assert.Empty(t, candidateText(nil))
	assert.Empty(t, candidateText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: "Summary. "}, {Text: "Quotes."}}},
		}},
	}
	assert.Equal(t, "Summary. Quotes.", candidateText(resp))
}

func TestMockLLM_Generate(t *testing.T) {
	notes, err := NewMockLLM(zaptest.NewLogger(t)).Generate(context.Background(), "prompt", 500)
	require.NoError(t, err)
	assert.Contains(t, notes, "Summary")
}
