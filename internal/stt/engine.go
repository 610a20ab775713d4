// Package stt bridges PCM audio to the Vosk recognition engine.
package stt

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	vosk "github.com/alphacep/vosk-api/go"
	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/audio"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/pkg/logging"
)

// The recognizer consumes PCM in fixed chunks of 4000 frames
// (16-bit samples, so 8000 bytes per chunk).
const (
	chunkFrames = 4000
	chunkBytes  = chunkFrames * 2
)

// Result is the outcome of one recognition run.
type Result struct {
	Transcript       string `json:"transcript"`
	DetectedLanguage string `json:"detected_language"`
	Status           string `json:"status"`
}

const (
	StatusSuccess  = "success"
	StatusNoSpeech = "no_speech"
)

// waveRecognizer is the per-call recognizer lifecycle. *vosk.VoskRecognizer
// satisfies it; tests substitute their own.
type waveRecognizer interface {
	AcceptWaveform(buffer []byte) int
	FinalResult() string
	Free()
}

// Engine holds the two recognition models, loaded once at startup and
// shared read-only across concurrent calls. A missing model bundle
// leaves the engine constructed but unavailable; every recognition
// attempt then fails fast.
type Engine struct {
	modelEN   *vosk.VoskModel
	modelAR   *vosk.VoskModel
	available bool
	factory   func(lang language.Code, sampleRate float64) (waveRecognizer, error)
	logger    *logging.Logger
}

// NewEngine loads the English and Arabic model bundles. Load failures
// degrade to an unavailable engine rather than aborting startup,
// matching a deployment where the bundles simply are not present.
func NewEngine(pathEN, pathAR string, logger *logging.Logger) *Engine {
	e := &Engine{logger: logger}
	e.factory = e.newRecognizer

	if _, err := os.Stat(pathEN); err != nil {
		logger.Warn("english recognition model not found", "path", pathEN)
		return e
	}
	if _, err := os.Stat(pathAR); err != nil {
		logger.Warn("arabic recognition model not found", "path", pathAR)
		return e
	}

	modelEN, err := vosk.NewModel(pathEN)
	if err != nil {
		logger.Warn("failed to load english recognition model", "error", err)
		return e
	}
	modelAR, err := vosk.NewModel(pathAR)
	if err != nil {
		logger.Warn("failed to load arabic recognition model", "error", err)
		modelEN.Free()
		return e
	}

	e.modelEN = modelEN
	e.modelAR = modelAR
	e.available = true
	logger.Info("recognition models loaded", "en", pathEN, "ar", pathAR)
	return e
}

// Available reports whether both recognition models loaded.
func (e *Engine) Available() bool {
	return e.available
}

// Recognize feeds the PCM data to the language-appropriate model in
// fixed-size chunks and extracts the final aggregated transcript.
// Intermediate partial results are accepted but never consumed. An
// empty transcript is a no_speech result, not an error.
func (e *Engine) Recognize(wav *audio.WAV, lang language.Code) (Result, error) {
	if !e.Available() {
		return Result{}, apierr.New(apierr.KindUnavailable,
			"Speech-to-text not available. Recognition models not found.")
	}

	rec, err := e.factory(lang, float64(wav.SampleRate))
	if err != nil {
		return Result{}, apierr.Wrap(apierr.KindInternal, "failed to create recognizer", err)
	}
	defer rec.Free()

	data := wav.Data()
	for start := 0; start < len(data); start += chunkBytes {
		end := start + chunkBytes
		if end > len(data) {
			end = len(data)
		}
		rec.AcceptWaveform(data[start:end])
	}

	var final struct {
		Text string `json:"text"`
	}
	// A malformed final result reads as an empty transcript.
	_ = json.Unmarshal([]byte(rec.FinalResult()), &final)

	transcript := strings.TrimSpace(final.Text)
	status := StatusSuccess
	if transcript == "" {
		status = StatusNoSpeech
	}
	return Result{
		Transcript:       transcript,
		DetectedLanguage: string(lang),
		Status:           status,
	}, nil
}

func (e *Engine) newRecognizer(lang language.Code, sampleRate float64) (waveRecognizer, error) {
	model := e.modelEN
	if lang == language.Arabic {
		model = e.modelAR
	}
	rec, err := vosk.NewRecognizer(model, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("stt: recognizer init failed: %w", err)
	}
	return rec, nil
}
