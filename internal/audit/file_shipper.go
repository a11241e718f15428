package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// eventJSON is the wire shape of an Event (spec §6 Audit event JSON).
type eventJSON struct {
	Timestamp    string         `json:"timestamp"`
	EventID      string         `json:"event_id"`
	SessionID    string         `json:"session_id"`
	Channel      string         `json:"channel"`
	ToolName     string         `json:"tool_name"`
	ArgsHash     string         `json:"args_hash"`
	Outcome      string         `json:"outcome"`
	Severity     string         `json:"severity"`
	UserID       string         `json:"user_id,omitempty"`
	PreviousHash string         `json:"previous_hash,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	DurationMs   int64          `json:"duration_ms,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
}

func toEventJSON(e Event) eventJSON {
	return eventJSON{
		Timestamp:    e.Timestamp.UTC().Format("2006-01-02T15:04:05.000Z"),
		EventID:      e.EventID,
		SessionID:    e.SessionID,
		Channel:      e.Channel,
		ToolName:     e.ToolName,
		ArgsHash:     e.ArgsHash,
		Outcome:      string(e.Outcome),
		Severity:     string(e.Severity),
		UserID:       e.UserID,
		PreviousHash: e.PreviousHash,
		Metadata:     e.Metadata,
		DurationMs:   e.DurationMs,
		ErrorMessage: e.ErrorMessage,
	}
}

// FileShipper writes newline-delimited JSON, auto-creating the target
// directory, generalizing LogWriter's zap-console output to a durable
// file sink.
type FileShipper struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// NewFileShipper opens (or creates) path for append, creating parent
// directories as needed.
func NewFileShipper(path string) (*FileShipper, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("audit: creating log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: opening log file: %w", err)
	}
	return &FileShipper{f: f, path: path}, nil
}

func (s *FileShipper) Ship(e Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, err := json.Marshal(toEventJSON(e))
	if err != nil {
		return fmt.Errorf("audit: marshaling event: %w", err)
	}
	b = append(b, '\n')
	_, err = s.f.Write(b)
	return err
}

func (s *FileShipper) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Sync()
}

func (s *FileShipper) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.f.Close()
}
