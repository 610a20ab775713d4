package patients

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Age tolerates whatever value a patient file carries: number, string,
// or absent. Hand-edited records mix these freely.
type Age string

func (a *Age) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Age(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*a = Age(n.String())
		return nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v == nil {
		*a = ""
		return nil
	}
	*a = Age(fmt.Sprint(v))
	return nil
}

// MarshalJSON writes numeric ages back as numbers so a loaded record
// round-trips in its original shape.
func (a Age) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseFloat(string(a), 64); err == nil && a != "" {
		return []byte(a), nil
	}
	return json.Marshal(string(a))
}

func (a Age) String() string { return string(a) }

// PersonalInfo is the identity block of a patient record.
type PersonalInfo struct {
	Name   string `json:"name,omitempty"`
	Age    Age    `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Record is a patient history file. Every field is optional; callers
// must tolerate partial records.
type Record struct {
	PersonalInfo   *PersonalInfo     `json:"personal_info,omitempty"`
	MedicalHistory []string          `json:"medical_history,omitempty"`
	Medications    []string          `json:"medications,omitempty"`
	Allergies      []string          `json:"allergies,omitempty"`
	PreviousVisits []string          `json:"previous_visits,omitempty"`
	VitalSigns     map[string]string `json:"vital_signs,omitempty"`
}

// Message is one persisted transcript entry. Role is "user" or "model".
type Message struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// ChatHistory is the on-disk transcript document for one patient.
type ChatHistory struct {
	PatientName  string    `json:"patient_name"`
	ChatHistory  []Message `json:"chat_history"`
	MessageCount int       `json:"message_count"`
	LastUpdated  string    `json:"last_updated,omitempty"`
}
