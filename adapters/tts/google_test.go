package tts

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/texttospeech/apiv1/texttospeechpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/satriahrh/castnotes/domain"
	"github.com/satriahrh/castnotes/domain/repositories"
)

type fakeSynthesisClient struct {
	req    *texttospeechpb.SynthesizeSpeechRequest
	audio  []byte
	err    error
	closed bool
}

func (f *fakeSynthesisClient) SynthesizeSpeech(ctx context.Context, req *texttospeechpb.SynthesizeSpeechRequest, opts ...gax.CallOption) (*texttospeechpb.SynthesizeSpeechResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &texttospeechpb.SynthesizeSpeechResponse{AudioContent: f.audio}, nil
}

func (f *fakeSynthesisClient) Close() error {
	f.closed = true
	return nil
}

var neutralMP3 = repositories.VoiceConfig{
	LanguageCode: "en-US",
	Gender:       repositories.VoiceGenderNeutral,
	Encoding:     repositories.AudioEncodingMP3,
}

func TestGoogleTTS_SynthesizeSpeech(t *testing.T) {
	client := &fakeSynthesisClient{audio: []byte("ID3-mp3-bytes")}
	g := &GoogleTTS{client: client, logger: zaptest.NewLogger(t)}

	audio, err := g.SynthesizeSpeech(context.Background(), "Once upon a time", neutralMP3)
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3-mp3-bytes"), audio)

	require.NotNil(t, client.req)
	assert.Equal(t, "Once upon a time", client.req.GetInput().GetText())
	assert.Equal(t, "en-US", client.req.GetVoice().GetLanguageCode())
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_NEUTRAL, client.req.GetVoice().GetSsmlGender())
	assert.Equal(t, texttospeechpb.AudioEncoding_MP3, client.req.GetAudioConfig().GetAudioEncoding())

	require.NoError(t, g.Close())
	assert.True(t, client.closed)
}

func TestGoogleTTS_ProviderError(t *testing.T) {
	client := &fakeSynthesisClient{err: errors.New("rpc error: code = Unavailable")}
	g := &GoogleTTS{client: client, logger: zaptest.NewLogger(t)}

	_, err := g.SynthesizeSpeech(context.Background(), "hello", neutralMP3)
	require.Error(t, err)
	assert.True(t, domain.IsRetryable(err))
	assert.Contains(t, err.Error(), "Unavailable")
}

func TestGoogleTTS_EmptyText(t *testing.T) {
	client := &fakeSynthesisClient{}
	g := &GoogleTTS{client: client, logger: zaptest.NewLogger(t)}

	_, err := g.SynthesizeSpeech(context.Background(), "  \n ", neutralMP3)
	assert.Error(t, err)
	assert.Nil(t, client.req)
}

func TestGoogleVoiceGender(t *testing.T) {
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_FEMALE, googleVoiceGender(repositories.VoiceGenderFemale))
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_MALE, googleVoiceGender(repositories.VoiceGenderMale))
	assert.Equal(t, texttospeechpb.SsmlVoiceGender_NEUTRAL, googleVoiceGender(""))
}

func TestGoogleAudioEncoding_Unsupported(t *testing.T) {
	_, err := googleAudioEncoding("OGG_OPUS")
	assert.Error(t, err)
}
