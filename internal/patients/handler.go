package patients

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
)

// Handler wires HTTP requests to the patient store.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a patients handler.
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// List handles GET /patients.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.List()
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"patients": names,
		"count":    len(names),
		"folder":   h.store.Dir(),
	})
}

// Get handles GET /patient/{name}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	record, err := h.store.Get(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, record)
}

// GetHistory handles GET /chat-history/{name}.
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	history, err := h.store.LoadHistory(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, history)
}

// SaveHistoryRequest is the body of POST /chat-history.
type SaveHistoryRequest struct {
	PatientName string    `json:"patient_name"`
	ChatHistory []Message `json:"chat_history"`
}

// SaveHistory handles POST /chat-history.
func (h *Handler) SaveHistory(w http.ResponseWriter, r *http.Request) {
	var req SaveHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apierr.Wrap(apierr.KindInvalidInput, "invalid request body", err))
		return
	}
	history, err := h.store.SaveHistory(req.PatientName, req.ChatHistory)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":       true,
		"patient_name":  history.PatientName,
		"message_count": history.MessageCount,
		"file":          filepath.Join(h.store.Dir(), history.PatientName+chatSuffix+".json"),
	})
}

// DeleteHistory handles DELETE /chat-history/{name}.
func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	existed, err := h.store.DeleteHistory(name)
	if err != nil {
		h.writeError(w, err)
		return
	}
	message := "No chat history found"
	if existed {
		message = "Chat history deleted for " + name
	}
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": message,
	})
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
	h.logger.Error("patients request failed", "error", err, "kind", kind)
	h.writeJSON(w, kind.HTTPStatus(), map[string]string{"error": apierr.Message(err)})
}
