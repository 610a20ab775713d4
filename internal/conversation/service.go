package conversation

import (
	"context"
	"strings"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/biomarker"
	"github.com/healbot/medconsult/internal/language"
	"github.com/healbot/medconsult/internal/prompt"
	"github.com/healbot/medconsult/pkg/logging"
)

// Service runs the stateless chat pipeline: language resolution, system
// prompt composition, turn assembly, one oracle call.
type Service struct {
	llm      LLMClient
	analyzer biomarker.Analyzer
	logger   *logging.Logger
}

// NewService creates a chat service. The analyzer may be nil when no
// biomarker collaborator is configured.
func NewService(llm LLMClient, analyzer biomarker.Analyzer, logger *logging.Logger) *Service {
	return &Service{llm: llm, analyzer: analyzer, logger: logger}
}

// Chat handles one consultation exchange.
func (s *Service) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return ChatResponse{}, apierr.New(apierr.KindInvalidInput, "message is required")
	}

	lang := language.Resolve(req.Language, message)
	s.logger.Info("chat request", "language", lang, "history_turns", len(req.ChatHistory))

	// A precomputed report wins; the analyzer runs only when raw input
	// arrived without one. Analyzer failure degrades to an unenriched
	// prompt rather than failing the request.
	report := req.BiomarkerAnalysis
	if report == nil && len(req.BiomarkerData) > 0 && s.analyzer != nil {
		analyzed, err := s.analyzer.Analyze(ctx, req.BiomarkerData)
		if err != nil {
			s.logger.Warn("biomarker analysis failed, continuing without it", "error", err)
		} else {
			report = analyzed
		}
	}

	systemPrompt := prompt.Compose(lang, req.PatientData, report)
	turns := Assemble(systemPrompt, req.ChatHistory, message)

	resp, err := s.llm.Complete(ctx, turns)
	if err != nil {
		return ChatResponse{}, apierr.Wrap(apierr.KindExternalService, "chat completion failed", err)
	}
	reply := strings.TrimSpace(resp.Text)
	if resp.Usage.TotalTokens > 0 {
		s.logger.Debug("oracle usage",
			"input_tokens", resp.Usage.InputTokens,
			"output_tokens", resp.Usage.OutputTokens,
		)
	}

	return ChatResponse{
		Reply:              reply,
		DetectedLanguage:   string(lang),
		ResponseLanguage:   string(language.Detect(reply)),
		HasPatientData:     req.PatientData != nil,
		HasBiomarkerReport: report != nil,
	}, nil
}
