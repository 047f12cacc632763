package hub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// SSESink writes events as a one-way text/event-stream push. The writer
// must support flushing; gin's ResponseWriter does.
type SSESink struct {
	mu      sync.Mutex
	w       http.ResponseWriter
	flusher http.Flusher
	closed  bool
}

func NewSSESink(w http.ResponseWriter) (*SSESink, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}
	return &SSESink{w: w, flusher: flusher}, nil
}

func (s *SSESink) Send(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("sink closed")
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("could not encode event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}
	s.flusher.Flush()
	return nil
}

// Close marks the sink dead. The underlying response lifecycle belongs to
// the HTTP handler, so there is nothing to tear down here.
func (s *SSESink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
