package server

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// SSEWriter streams data-only Server-Sent Events frames. Every frame is
// flushed immediately; proxy buffering is disabled so progress reaches the
// client as it happens. Exactly one terminal frame is written per stream.
type SSEWriter struct {
	w        http.ResponseWriter
	flusher  http.Flusher
	finished bool
}

// NewSSEWriter sets the stream headers. It fails when the underlying writer
// cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("streaming not supported")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// WriteFrame sends one data-only frame.
func (s *SSEWriter) WriteFrame(data any) error {
	if s.finished {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// WriteResult sends the successful terminal frame and seals the stream.
func (s *SSEWriter) WriteResult(payload map[string]any) {
	frame := map[string]any{
		"complete": true,
		"success":  true,
	}
	for k, v := range payload {
		frame[k] = v
	}
	s.WriteFrame(frame) //nolint:errcheck
	s.finished = true
}

// WriteFailure sends the failing terminal frame and seals the stream.
// Failure frames carry only the error flag and message; `complete` belongs
// to the success shape.
func (s *SSEWriter) WriteFailure(message string) {
	s.WriteFrame(map[string]any{ //nolint:errcheck
		"error":   true,
		"message": message,
	})
	s.finished = true
}
