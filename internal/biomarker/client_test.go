package biomarker

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeDecodesReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)

		var input map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, 5.5, input["glucose"])

		json.NewEncoder(w).Encode(Report{
			ExecutiveSummary: &ExecutiveSummary{
				TopPriorities: []string{"Improve vitamin D levels", "Monitor fasting glucose"},
			},
		})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, logging.Default())
	report, err := client.Analyze(context.Background(), map[string]any{"glucose": 5.5})
	require.NoError(t, err)
	require.NotNil(t, report.ExecutiveSummary)
	assert.Len(t, report.ExecutiveSummary.TopPriorities, 2)
}

func TestAnalyzeClassifiesFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, logging.Default())
	_, err := client.Analyze(context.Background(), map[string]any{"glucose": 5.5})
	require.Error(t, err)
	assert.Equal(t, apierr.KindExternalService, apierr.KindOf(err))
}

func TestAnalyzeBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, logging.Default())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Analyze(ctx, map[string]any{"glucose": 1})
		require.Error(t, err)
	}

	// Breaker is open now; the request must fail fast without reaching
	// the server.
	srv.Close()
	_, err := client.Analyze(ctx, map[string]any{"glucose": 1})
	require.Error(t, err)
	assert.Equal(t, apierr.KindExternalService, apierr.KindOf(err))
}
