package stt

import (
	"testing"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/audio"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRecognizer struct {
	chunks [][]byte
	final  string
	freed  bool
}

func (s *stubRecognizer) AcceptWaveform(buffer []byte) int {
	chunk := make([]byte, len(buffer))
	copy(chunk, buffer)
	s.chunks = append(s.chunks, chunk)
	return 0
}

func (s *stubRecognizer) FinalResult() string { return s.final }
func (s *stubRecognizer) Free()               { s.freed = true }

func testEngine(rec *stubRecognizer) (*Engine, *language.Code) {
	var gotLang language.Code
	e := &Engine{
		available: true,
		logger:    logging.Default(),
	}
	e.factory = func(lang language.Code, sampleRate float64) (waveRecognizer, error) {
		gotLang = lang
		return rec, nil
	}
	return e, &gotLang
}

func testWAV(t *testing.T, samples int) *audio.WAV {
	t.Helper()
	wav, err := audio.ParseWAV(audio.EncodeWAV(make([]int16, samples), 16000))
	require.NoError(t, err)
	return wav
}

func TestRecognizeChunksAndTranscribes(t *testing.T) {
	rec := &stubRecognizer{final: `{"text": " hello world "}`}
	engine, gotLang := testEngine(rec)

	// 10000 frames: two full 4000-frame chunks plus a 2000-frame tail.
	result, err := engine.Recognize(testWAV(t, 10000), language.English)
	require.NoError(t, err)

	require.Len(t, rec.chunks, 3)
	assert.Len(t, rec.chunks[0], chunkBytes)
	assert.Len(t, rec.chunks[1], chunkBytes)
	assert.Len(t, rec.chunks[2], 2000*2)
	assert.True(t, rec.freed)

	assert.Equal(t, "hello world", result.Transcript)
	assert.Equal(t, "en", result.DetectedLanguage)
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, language.English, *gotLang)
}

func TestRecognizeArabicSelectsArabicModel(t *testing.T) {
	rec := &stubRecognizer{final: `{"text": "مرحبا"}`}
	engine, gotLang := testEngine(rec)

	result, err := engine.Recognize(testWAV(t, 100), language.Arabic)
	require.NoError(t, err)
	assert.Equal(t, language.Arabic, *gotLang)
	assert.Equal(t, "ar", result.DetectedLanguage)
}

func TestRecognizeEmptyTranscriptIsNoSpeech(t *testing.T) {
	for _, final := range []string{`{"text": ""}`, `{"text": "   "}`, `not json`} {
		rec := &stubRecognizer{final: final}
		engine, _ := testEngine(rec)

		result, err := engine.Recognize(testWAV(t, 100), language.English)
		require.NoError(t, err)
		assert.Equal(t, StatusNoSpeech, result.Status)
		assert.Empty(t, result.Transcript)
	}
}

func TestRecognizeUnavailableFailsFast(t *testing.T) {
	engine := NewEngine("/nonexistent/en", "/nonexistent/ar", logging.Default())
	require.False(t, engine.Available())

	_, err := engine.Recognize(testWAV(t, 100), language.English)
	require.Error(t, err)
	assert.Equal(t, apierr.KindUnavailable, apierr.KindOf(err))
}
