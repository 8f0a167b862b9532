package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jonathan/career-readiness/internal/readiness"
)

// SSE event names
const (
	EventProgress = "progress"
	EventError    = "error"
	EventComplete = "complete"
)

// SSEWriter helps write Server-Sent Events
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter creates a new SSE writer
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteEvent sends an SSE event
func (s *SSEWriter) WriteEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteProgress forwards a report progress event.
func (s *SSEWriter) WriteProgress(event readiness.ProgressEvent) error {
	return s.WriteEvent(EventProgress, event)
}

// WriteFailure sends an error event carrying the user-facing failure.
func (s *SSEWriter) WriteFailure(failure *readiness.Failure) {
	s.WriteEvent(EventError, map[string]any{ //nolint:errcheck
		"error":   failure.Message,
		"failure": failure,
	})
}

// WriteComplete sends the finished report.
func (s *SSEWriter) WriteComplete(report *readiness.Report) {
	s.WriteEvent(EventComplete, report) //nolint:errcheck
}
