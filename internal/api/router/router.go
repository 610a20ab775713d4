// Package router assembles the HTTP surface of the consultation API.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/healbot/medconsult/internal/conversation"
	httpmiddleware "github.com/healbot/medconsult/internal/http/middleware"
	"github.com/healbot/medconsult/internal/patients"
	"github.com/healbot/medconsult/internal/stt"
	"github.com/healbot/medconsult/internal/tts"
	"github.com/healbot/medconsult/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *conversation.Handler
	PatientsHandler    *patients.Handler
	STTHandler         *stt.Handler
	TTSHandler         *tts.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// Requests/sec and burst applied to the audio endpoints. Zero
	// disables rate limiting.
	AudioRateLimit float64
	AudioRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	r.Get("/api-info", apiInfo)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Post("/chat", cfg.ChatHandler.Chat)

	r.Get("/patients", cfg.PatientsHandler.List)
	r.Get("/patient/{name}", cfg.PatientsHandler.Get)
	r.Get("/chat-history/{name}", cfg.PatientsHandler.GetHistory)
	r.Post("/chat-history", cfg.PatientsHandler.SaveHistory)
	r.Delete("/chat-history/{name}", cfg.PatientsHandler.DeleteHistory)

	r.Group(func(audio chi.Router) {
		if cfg.AudioRateLimit > 0 {
			audio.Use(httpmiddleware.RateLimit(cfg.AudioRateLimit, cfg.AudioRateBurst))
		}
		audio.Post("/stt", cfg.STTHandler.Transcribe)
		audio.Post("/tts", cfg.TTSHandler.Synthesize)
	})
	r.Get("/tts/voices", cfg.TTSHandler.ListVoices)

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "healthy"})
}

func apiInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"message": "Dr. HealBot Stateless API",
		"version": "4.1",
		"features": []string{
			"Stateless chat (frontend manages history)",
			"Patient data loading from files",
			"Bilingual support (English/Arabic)",
			"Biomarker analysis integration",
			"Speech-to-text (Vosk)",
			"Text-to-speech (Edge neural voices)",
		},
		"endpoints": map[string]string{
			"chat":                "POST /chat - Send message with history",
			"patients":            "GET /patients - List all patients",
			"patient":             "GET /patient/{name} - Get patient data",
			"chat_history_get":    "GET /chat-history/{name} - Get chat history",
			"chat_history_save":   "POST /chat-history - Save chat history",
			"chat_history_delete": "DELETE /chat-history/{name} - Delete chat history",
			"stt":                 "POST /stt - Speech to text",
			"tts":                 "POST /tts - Text to speech",
			"tts_voices":          "GET /tts/voices - Get available voices",
		},
	})
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
