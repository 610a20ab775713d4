package patients

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/healbot/medconsult/internal/apierr"
	"github.com/healbot/medconsult/pkg/logging"
)

// chatSuffix distinguishes transcript files from patient records
// co-located in the same directory.
const chatSuffix = "_chat"

// Store persists patient records and chat transcripts as one JSON file
// per document in a flat directory. Records are read-only; transcripts
// support save and delete.
type Store struct {
	dir    string
	logger *logging.Logger
}

// NewStore creates the data directory if needed and returns a store.
func NewStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to create patient data folder", err)
	}
	return &Store{dir: dir, logger: logger}, nil
}

// Dir returns the configured data directory.
func (s *Store) Dir() string { return s.dir }

// List returns the patient identifiers present in the store, excluding
// transcript files.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to list patient data folder", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		stem := strings.TrimSuffix(entry.Name(), ".json")
		if strings.HasSuffix(stem, chatSuffix) {
			continue
		}
		names = append(names, stem)
	}
	return names, nil
}

// Get loads one patient record.
func (s *Store) Get(name string) (*Record, error) {
	path, err := s.recordPath(name, "")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, apierr.New(apierr.KindNotFound, fmt.Sprintf("Patient %s not found", name))
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to read patient record", err)
	}
	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to parse patient record", err)
	}
	return &record, nil
}

// LoadHistory loads the saved transcript for a patient. A missing file
// is not an error: it yields an empty transcript.
func (s *Store) LoadHistory(name string) (*ChatHistory, error) {
	path, err := s.recordPath(name, chatSuffix)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &ChatHistory{PatientName: name, ChatHistory: []Message{}}, nil
	}
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to read chat history", err)
	}
	var history ChatHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to parse chat history", err)
	}
	if history.ChatHistory == nil {
		history.ChatHistory = []Message{}
	}
	return &history, nil
}

// SaveHistory persists the transcript for a patient, stamping it with
// the current time in RFC 3339 form.
func (s *Store) SaveHistory(name string, messages []Message) (*ChatHistory, error) {
	path, err := s.recordPath(name, chatSuffix)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		messages = []Message{}
	}
	history := &ChatHistory{
		PatientName:  name,
		ChatHistory:  messages,
		MessageCount: len(messages),
		LastUpdated:  time.Now().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to encode chat history", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, apierr.Wrap(apierr.KindPersistence, "failed to save chat history", err)
	}
	s.logger.Info("chat history saved", "patient", name, "messages", len(messages))
	return history, nil
}

// DeleteHistory removes a saved transcript. It reports whether a file
// existed; deleting an absent transcript is not an error.
func (s *Store) DeleteHistory(name string) (bool, error) {
	path, err := s.recordPath(name, chatSuffix)
	if err != nil {
		return false, err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, apierr.Wrap(apierr.KindPersistence, "failed to delete chat history", err)
	}
	s.logger.Info("chat history deleted", "patient", name)
	return true, nil
}

// recordPath validates the patient identifier and builds the file path.
// Identifiers must not escape the data directory.
func (s *Store) recordPath(name, suffix string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apierr.New(apierr.KindInvalidInput, "patient name is required")
	}
	if trimmed != filepath.Base(trimmed) || strings.Contains(trimmed, "..") {
		return "", apierr.New(apierr.KindInvalidInput, "invalid patient name")
	}
	return filepath.Join(s.dir, trimmed+suffix+".json"), nil
}
