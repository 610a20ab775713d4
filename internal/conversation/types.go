package conversation

import (
	"github.com/healbot/medconsult/internal/biomarker"
	"github.com/healbot/medconsult/internal/patients"
)

// Turn roles as the model oracle expects them. Anything that is not a
// user turn maps to the model role.
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Turn is one message in a conversation. Ordering is chronological and
// significant; the caller supplies the full history on every request.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatRequest is the body of POST /chat. The service holds no session:
// history, patient data, and biomarker context all arrive with the
// request.
type ChatRequest struct {
	Message           string            `json:"message"`
	Language          string            `json:"language,omitempty"`
	ChatHistory       []Turn            `json:"chat_history,omitempty"`
	PatientData       *patients.Record  `json:"patient_data,omitempty"`
	BiomarkerData     map[string]any    `json:"biomarker_data,omitempty"`
	BiomarkerAnalysis *biomarker.Report `json:"biomarker_analysis,omitempty"`
}

// ChatResponse carries the oracle reply plus language and
// context-presence metadata.
type ChatResponse struct {
	Reply              string `json:"reply"`
	DetectedLanguage   string `json:"detected_language"`
	ResponseLanguage   string `json:"response_language"`
	HasPatientData     bool   `json:"has_patient_data"`
	HasBiomarkerReport bool   `json:"has_biomarker_report"`
}
