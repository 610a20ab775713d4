package biomarker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
	"github.com/sony/gobreaker"
)

// HTTPClient calls the biomarker scoring service over HTTP. A circuit
// breaker keeps a failing collaborator from stalling every chat request
// that carries raw biomarker input.
type HTTPClient struct {
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewHTTPClient creates a biomarker client for the given base URL.
func NewHTTPClient(baseURL string, logger *logging.Logger) *HTTPClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "biomarker",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("biomarker breaker state change", "from", from.String(), "to", to.String())
		},
	})
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
		breaker: breaker,
		logger:  logger,
	}
}

// Analyze posts raw biomarker input to the scoring service and decodes
// the report.
func (c *HTTPClient) Analyze(ctx context.Context, input map[string]any) (*Report, error) {
	body, err := json.Marshal(input)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindInvalidInput, "invalid biomarker input", err)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			return nil, fmt.Errorf("biomarker service returned %d: %s", resp.StatusCode, payload)
		}

		var report Report
		if err := json.NewDecoder(resp.Body).Decode(&report); err != nil {
			return nil, fmt.Errorf("failed to decode biomarker report: %w", err)
		}
		return &report, nil
	})
	if err != nil {
		return nil, apierr.Wrap(apierr.KindExternalService, "biomarker analysis failed", err)
	}
	return result.(*Report), nil
}
