package conversation

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/internal/observability/metrics"
	"github.com/healbot/medconsult/pkg/logging"
)

// Chatter is the service boundary the handler depends on.
type Chatter interface {
	Chat(ctx context.Context, req ChatRequest) (ChatResponse, error)
}

// Handler wires HTTP requests to the chat service.
type Handler struct {
	service Chatter
	metrics *metrics.APIMetrics
	logger  *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(service Chatter, m *metrics.APIMetrics, logger *logging.Logger) *Handler {
	return &Handler{service: service, metrics: m, logger: logger}
}

// Chat handles POST /chat.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode chat request", "error", err)
		h.metrics.ObserveChat("unknown", "invalid", time.Since(start).Seconds())
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	resp, err := h.service.Chat(r.Context(), req)
	if err != nil {
		kind := apierr.KindOf(err)
		h.logger.Error("chat request failed", "error", err, "kind", kind)
		h.metrics.ObserveChat("unknown", "error", time.Since(start).Seconds())
		h.writeJSON(w, kind.HTTPStatus(), map[string]string{"error": apierr.Message(err)})
		return
	}

	h.metrics.ObserveChat(resp.DetectedLanguage, "success", time.Since(start).Seconds())
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}
