package stt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/audio"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/internal/observability/metrics"
	"github.com/healbot/medconsult/pkg/logging"
)

// maxUploadBytes bounds multipart parsing memory.
const maxUploadBytes = 32 << 20

// Recognizer is the engine boundary the handler depends on.
type Recognizer interface {
	Available() bool
	Recognize(wav *audio.WAV, lang language.Code) (Result, error)
}

// Transcoder converts uploaded container bytes to recognizer PCM.
type Transcoder interface {
	Transcode(ctx context.Context, raw []byte) (*audio.WAV, error)
}

// Handler wires multipart audio uploads to the recognition pipeline.
type Handler struct {
	transcoder Transcoder
	engine     Recognizer
	metrics    *metrics.APIMetrics
	logger     *logging.Logger
}

// NewHandler creates an STT handler.
func NewHandler(transcoder Transcoder, engine Recognizer, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	return &Handler{transcoder: transcoder, engine: engine, metrics: m, logger: logger}
}

// Transcribe handles POST /stt.
func (h *Handler) Transcribe(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Available() {
		h.metrics.ObserveSTT("unavailable")
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"error": "Speech-to-text not available. Recognition models not found.",
		})
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeError(w, apierr.Wrap(apierr.KindInvalidInput, "invalid multipart upload", err))
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, apierr.Wrap(apierr.KindInvalidInput, "audio file is required", err))
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, apierr.Wrap(apierr.KindInvalidInput, "failed to read audio upload", err))
		return
	}

	// The caller-declared language picks the model; "auto" and invalid
	// values fail open to English. No runtime detection happens here.
	lang := language.English
	if r.FormValue("language") == string(language.Arabic) {
		lang = language.Arabic
	}

	wav, err := h.transcoder.Transcode(r.Context(), raw)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.engine.Recognize(wav, lang)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.metrics.ObserveSTT(result.Status)
	h.writeJSON(w, http.StatusOK, result)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	kind := apierr.KindOf(err)
	h.logger.Error("stt request failed", "error", err, "kind", kind)
	h.metrics.ObserveSTT("error")
	h.writeJSON(w, kind.HTTPStatus(), map[string]string{"error": apierr.Message(err)})
}
