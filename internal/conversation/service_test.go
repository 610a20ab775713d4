package conversation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/biomarker"
	"github.com/healbot/medconsult/internal/patients"
	"github.com/healbot/medconsult/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	lastTurns []Turn
	reply     string
	err       error
}

func (s *stubLLM) Complete(_ context.Context, turns []Turn) (LLMResponse, error) {
	s.lastTurns = turns
	if s.err != nil {
		return LLMResponse{}, s.err
	}
	return LLMResponse{Text: s.reply}, nil
}

type stubAnalyzer struct {
	called bool
	report *biomarker.Report
	err    error
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ map[string]any) (*biomarker.Report, error) {
	s.called = true
	return s.report, s.err
}

func TestChatEnglishAutoDetect(t *testing.T) {
	llm := &stubLLM{reply: "You likely have a common cold."}
	svc := NewService(llm, nil, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{
		Message:  "I have a fever and headache",
		Language: "auto",
	})
	require.NoError(t, err)

	assert.Equal(t, "en", resp.DetectedLanguage)
	assert.NotEmpty(t, resp.Reply)
	assert.False(t, resp.HasPatientData)
	assert.False(t, resp.HasBiomarkerReport)

	// The oracle receives the system prompt first and the message last.
	require.Len(t, llm.lastTurns, 2)
	assert.Contains(t, llm.lastTurns[0].Text, "Dr. HealBot")
	assert.Equal(t, "I have a fever and headache", llm.lastTurns[1].Text)
}

func TestChatArabicAutoDetect(t *testing.T) {
	llm := &stubLLM{reply: "تفضل بوصف الأعراض"}
	svc := NewService(llm, nil, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{Message: "عندي صداع", Language: "auto"})
	require.NoError(t, err)

	assert.Equal(t, "ar", resp.DetectedLanguage)
	assert.Equal(t, "ar", resp.ResponseLanguage)
	assert.Contains(t, llm.lastTurns[0].Text, "هيل بوت")
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	svc := NewService(&stubLLM{}, nil, logging.Default())

	for _, msg := range []string{"", "   ", "\n\t"} {
		_, err := svc.Chat(context.Background(), ChatRequest{Message: msg})
		require.Error(t, err)
		assert.Equal(t, apierr.KindInvalidInput, apierr.KindOf(err))
	}
}

func TestChatReplaysHistory(t *testing.T) {
	llm := &stubLLM{reply: "ok"}
	svc := NewService(llm, nil, logging.Default())

	history := []Turn{
		{Role: "user", Text: "I have a cough"},
		{Role: "model", Text: "Dry or wet?"},
	}
	_, err := svc.Chat(context.Background(), ChatRequest{
		Message:     "Dry",
		Language:    "en",
		ChatHistory: history,
	})
	require.NoError(t, err)

	require.Len(t, llm.lastTurns, 4)
	assert.Equal(t, history[0].Text, llm.lastTurns[1].Text)
	assert.Equal(t, history[1].Text, llm.lastTurns[2].Text)
	assert.Equal(t, "Dry", llm.lastTurns[3].Text)
}

func TestChatPatientContextEnrichesPrompt(t *testing.T) {
	llm := &stubLLM{reply: "noted"}
	svc := NewService(llm, nil, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{
		Message:  "my stomach hurts",
		Language: "en",
		PatientData: &patients.Record{
			Allergies: []string{"ibuprofen"},
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.HasPatientData)
	assert.Contains(t, llm.lastTurns[0].Text, "ibuprofen")
}

func TestChatPrefersPrecomputedReport(t *testing.T) {
	llm := &stubLLM{reply: "noted"}
	analyzer := &stubAnalyzer{}
	svc := NewService(llm, analyzer, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{
		Message:       "how are my labs?",
		Language:      "en",
		BiomarkerData: map[string]any{"glucose": 5.0},
		BiomarkerAnalysis: &biomarker.Report{
			ExecutiveSummary: &biomarker.ExecutiveSummary{TopPriorities: []string{"Hydrate more"}},
		},
	})
	require.NoError(t, err)

	assert.False(t, analyzer.called, "analyzer must not run when a report was supplied")
	assert.True(t, resp.HasBiomarkerReport)
	assert.Contains(t, llm.lastTurns[0].Text, "Hydrate more")
}

func TestChatInvokesAnalyzerForRawInput(t *testing.T) {
	llm := &stubLLM{reply: "noted"}
	analyzer := &stubAnalyzer{
		report: &biomarker.Report{
			ExecutiveSummary: &biomarker.ExecutiveSummary{TopPriorities: []string{"Check iron"}},
		},
	}
	svc := NewService(llm, analyzer, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{
		Message:       "how are my labs?",
		Language:      "en",
		BiomarkerData: map[string]any{"ferritin": 8},
	})
	require.NoError(t, err)

	assert.True(t, analyzer.called)
	assert.True(t, resp.HasBiomarkerReport)
	assert.Contains(t, llm.lastTurns[0].Text, "Check iron")
}

func TestChatDegradesOnAnalyzerFailure(t *testing.T) {
	llm := &stubLLM{reply: "noted"}
	analyzer := &stubAnalyzer{err: errors.New("scoring service down")}
	svc := NewService(llm, analyzer, logging.Default())

	resp, err := svc.Chat(context.Background(), ChatRequest{
		Message:       "how are my labs?",
		Language:      "en",
		BiomarkerData: map[string]any{"ferritin": 8},
	})
	require.NoError(t, err)

	assert.False(t, resp.HasBiomarkerReport)
	assert.False(t, strings.Contains(llm.lastTurns[0].Text, "LAB REPORT INFORMATION"))
}

func TestChatClassifiesOracleFailure(t *testing.T) {
	llm := &stubLLM{err: errors.New("quota exceeded")}
	svc := NewService(llm, nil, logging.Default())

	_, err := svc.Chat(context.Background(), ChatRequest{Message: "hello", Language: "en"})
	require.Error(t, err)
	assert.Equal(t, apierr.KindExternalService, apierr.KindOf(err))
}
