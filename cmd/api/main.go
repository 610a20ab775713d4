package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healbot/medconsult/internal/api/router"
	"github.com/healbot/medconsult/internal/audio"
	"github.com/healbot/medconsult/internal/biomarker"
	appconfig "github.com/healbot/medconsult/internal/config"
	"github.com/healbot/medconsult/internal/conversation"
	"github.com/healbot/medconsult/internal/observability/metrics"
	"github.com/healbot/medconsult/internal/patients"
	"github.com/healbot/medconsult/internal/stt"
	"github.com/healbot/medconsult/internal/tts"
	"github.com/healbot/medconsult/pkg/logging"
)

func main() {
	// .env is optional; real deployments inject the environment.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medconsult API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	store, err := patients.NewStore(cfg.PatientDataFolder, logger)
	if err != nil {
		logger.Error("failed to open patient data folder", "error", err)
		os.Exit(1)
	}

	llm, err := conversation.NewGeminiLLMClient(context.Background(), cfg.GoogleAPIKey, cfg.GeminiModelID)
	if err != nil {
		logger.Error("failed to create Gemini client", "error", err)
		os.Exit(1)
	}
	defer llm.Close()

	var analyzer biomarker.Analyzer
	if cfg.BiomarkerAPIURL != "" {
		analyzer = biomarker.NewHTTPClient(cfg.BiomarkerAPIURL, logger)
	} else {
		logger.Info("biomarker analysis disabled, no API URL configured")
	}

	apiMetrics := metrics.NewAPIMetrics(nil)

	chatService := conversation.NewService(llm, analyzer, logger)
	chatHandler := conversation.NewHandler(chatService, apiMetrics, logger)
	patientsHandler := patients.NewHandler(store, logger)

	transcoder := audio.NewTranscoder(cfg.FFmpegPath, cfg.FFmpegTimeout, logger)
	engine := stt.NewEngine(cfg.VoskModelEN, cfg.VoskModelAR, logger)
	sttHandler := stt.NewHandler(transcoder, engine, apiMetrics, logger)

	voices := tts.NewVoiceMap(cfg.EdgeTTSVoiceEN, cfg.EdgeTTSVoiceAR)
	ttsHandler := tts.NewHandler(tts.NewEdgeClient(logger), voices, apiMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		ChatHandler:        chatHandler,
		PatientsHandler:    patientsHandler,
		STTHandler:         sttHandler,
		TTSHandler:         ttsHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		AudioRateLimit:     cfg.AudioRateLimit,
		AudioRateBurst:     cfg.AudioRateBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
