package tts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/internal/observability/metrics"
	"github.com/healbot/medconsult/pkg/logging"
)

// Synthesizer is the engine boundary the handler depends on.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Voices(ctx context.Context) ([]Voice, error)
}

// Request is the POST /tts body.
type Request struct {
	Text         string `json:"text"`
	LanguageCode string `json:"language_code"`
	Voice        string `json:"voice,omitempty"`
}

// Handler serves the synthesis and voice-catalog endpoints.
type Handler struct {
	synth    Synthesizer
	voiceMap VoiceMap
	metrics  *metrics.APIMetrics
	logger   *logging.Logger
}

// NewHandler creates a TTS handler.
func NewHandler(synth Synthesizer, voiceMap VoiceMap, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	return &Handler{synth: synth, voiceMap: voiceMap, metrics: m, logger: logger}
}

// Synthesize handles POST /tts. The response body is the MP3 payload;
// the resolved language and voice travel in response headers.
func (h *Handler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apierr.Wrap(apierr.KindInvalidInput, "invalid request body", err))
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		h.writeError(w, apierr.New(apierr.KindInvalidInput, "Text is required"))
		return
	}

	lang := language.Resolve(req.LanguageCode, req.Text)
	// Arabic script in the text always wins over the requested tag.
	if language.ContainsArabic(req.Text) {
		lang = language.Arabic
	}
	voice := h.voiceMap.Resolve(lang, req.Voice)

	h.logger.Info("synthesis request", "language", lang, "voice", voice, "chars", len(text))

	audio, err := h.synth.Synthesize(r.Context(), text, voice)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.metrics.ObserveTTS("success", len(audio))
	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Disposition", "inline; filename=speech.mp3")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Language", string(lang))
	w.Header().Set("X-Voice", voice)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		h.logger.Error("failed to write audio response", "error", err)
	}
}

// ListVoices handles GET /tts/voices, filtering the catalog down to
// the English and Arabic families.
func (h *Handler) ListVoices(w http.ResponseWriter, r *http.Request) {
	voices, err := h.synth.Voices(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	english := make([]map[string]string, 0)
	arabic := make([]map[string]string, 0)
	for _, v := range voices {
		entry := map[string]string{
			"name":         v.ShortName,
			"gender":       v.Gender,
			"locale":       v.Locale,
			"display_name": displayName(v),
		}
		switch {
		case strings.HasPrefix(v.Locale, "en-"):
			english = append(english, entry)
		case strings.HasPrefix(v.Locale, "ar-"):
			arabic = append(arabic, entry)
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"default_voices": h.voiceMap.Defaults(),
		"available_voices": map[string]any{
			"english": english,
			"arabic":  arabic,
		},
		"total_en": len(english),
		"total_ar": len(arabic),
	})
}

func displayName(v Voice) string {
	name := v.LocalName
	if name == "" {
		name = v.ShortName
	}
	return fmt.Sprintf("%s (%s)", name, v.Gender)
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
	h.logger.Error("tts request failed", "error", err, "kind", kind)
	h.metrics.ObserveTTS("error", 0)
	h.writeJSON(w, kind.HTTPStatus(), map[string]string{"error": apierr.Message(err)})
}
