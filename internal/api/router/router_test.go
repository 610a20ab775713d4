package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/healbot/medconsult/internal/audio"
	"github.com/healbot/medconsult/internal/conversation"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/internal/patients"
	"github.com/healbot/medconsult/internal/stt"
	"github.com/healbot/medconsult/internal/tts"
	"github.com/healbot/medconsult/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct{}

func (stubChat) Chat(ctx context.Context, req conversation.ChatRequest) (conversation.ChatResponse, error) {
	return conversation.ChatResponse{Reply: "hello"}, nil
}

type stubSTT struct{}

func (stubSTT) Available() bool { return false }
func (stubSTT) Recognize(wav *audio.WAV, lang language.Code) (stt.Result, error) {
	return stt.Result{}, nil
}

type stubTranscoder struct{}

func (stubTranscoder) Transcode(ctx context.Context, raw []byte) (*audio.WAV, error) {
	return nil, nil
}

type stubSynth struct{}

func (stubSynth) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	return []byte("mp3"), nil
}

func (stubSynth) Voices(ctx context.Context) ([]tts.Voice, error) {
	return nil, nil
}

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.Default()
	store, err := patients.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	return New(&Config{
		Logger:          logger,
		ChatHandler:     conversation.NewHandler(stubChat{}, nil, logger),
		PatientsHandler: patients.NewHandler(store, logger),
		STTHandler:      stt.NewHandler(stubTranscoder{}, stubSTT{}, nil, logger),
		TTSHandler:      tts.NewHandler(stubSynth{}, tts.NewVoiceMap("", ""), nil, logger),
	})
}

func TestRoutesAreWired(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api-info", "", http.StatusOK},
		{http.MethodGet, "/patients", "", http.StatusOK},
		{http.MethodGet, "/patient/ghost", "", http.StatusNotFound},
		{http.MethodGet, "/chat-history/ghost", "", http.StatusOK},
		{http.MethodPost, "/chat", `{"message":"hi"}`, http.StatusOK},
		{http.MethodPost, "/stt", "", http.StatusServiceUnavailable},
		{http.MethodPost, "/tts", `{"text":"hi","language_code":"auto"}`, http.StatusOK},
		{http.MethodGet, "/tts/voices", "", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		if tc.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, tc.status, rec.Code, "%s %s", tc.method, tc.path)
	}
}

func TestHealthPayload(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestAudioRateLimitApplies(t *testing.T) {
	logger := logging.Default()
	store, err := patients.NewStore(t.TempDir(), logger)
	require.NoError(t, err)

	r := New(&Config{
		Logger:          logger,
		ChatHandler:     conversation.NewHandler(stubChat{}, nil, logger),
		PatientsHandler: patients.NewHandler(store, logger),
		STTHandler:      stt.NewHandler(stubTranscoder{}, stubSTT{}, nil, logger),
		TTSHandler:      tts.NewHandler(stubSynth{}, tts.NewVoiceMap("", ""), nil, logger),
		AudioRateLimit:  0.0001,
		AudioRateBurst:  1,
	})

	for i, want := range []int{http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/tts", strings.NewReader(`{"text":"hi"}`))
		req.RemoteAddr = "10.1.2.3:4567"
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		assert.Equal(t, want, rec.Code, "request %d", i)
	}
}
