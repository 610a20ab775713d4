package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// Patient record and chat history storage.
	PatientDataFolder string

	// Gemini LLM oracle.
	GoogleAPIKey  string
	GeminiModelID string

	// Vosk recognition model bundles.
	VoskModelEN string
	VoskModelAR string

	// Edge synthesis voices.
	EdgeTTSVoiceEN string
	EdgeTTSVoiceAR string

	// Biomarker analysis collaborator. Empty disables the integration.
	BiomarkerAPIURL string

	FFmpegPath    string
	FFmpegTimeout time.Duration

	CORSAllowedOrigins []string
	AudioRateLimit     float64
	AudioRateBurst     int
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8002"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("PUBLIC_BASE_URL", ""),

		PatientDataFolder: getEnv("PATIENT_DATA_FOLDER", "patients_data"),

		GoogleAPIKey:  getEnv("GOOGLE_API_KEY", ""),
		GeminiModelID: getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),

		VoskModelEN: getEnv("VOSK_MODEL_EN", "vosk-model-small-en-us-0.15"),
		VoskModelAR: getEnv("VOSK_MODEL_AR", "vosk-model-ar-0.22-linto-1.1.0"),

		EdgeTTSVoiceEN: getEnv("EDGE_TTS_VOICE_EN", "en-US-AriaNeural"),
		EdgeTTSVoiceAR: getEnv("EDGE_TTS_VOICE_AR", "ar-SA-ZariyahNeural"),

		BiomarkerAPIURL: getEnv("BIOMARKER_API_URL", ""),

		FFmpegPath:    getEnv("FFMPEG_PATH", "ffmpeg"),
		FFmpegTimeout: getEnvAsDuration("FFMPEG_TIMEOUT", 30*time.Second),

		CORSAllowedOrigins: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		AudioRateLimit:     getEnvAsFloat("AUDIO_RATE_LIMIT", 0),
		AudioRateBurst:     getEnvAsInt("AUDIO_RATE_BURST", 5),
	}
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
