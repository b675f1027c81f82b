package chat

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"
	"sync"

	"github.com/jrsteele09/go-legal-client/internal/errors"
)

// Stream is a live conversation feed of newline-delimited JSON messages.
type Stream struct {
	body    io.ReadCloser
	scanner *bufio.Scanner

	closeOnce sync.Once
	closeErr  error
}

// Next blocks until the next message arrives. It returns io.EOF when the
// server ends the stream.
func (s *Stream) Next() (*Message, error) {
	for s.scanner.Scan() {
		line := strings.TrimSpace(s.scanner.Text())
		if line == "" {
			continue // keep-alive
		}
		var msg Message
		if err := json.Unmarshal([]byte(line), &msg); err != nil {
			return nil, errors.Wrapf(err, "[chat Stream] decode message")
		}
		return &msg, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "[chat Stream] read")
	}
	return nil, io.EOF
}

// Close stops the stream. It is safe to call more than once.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
