// Package ui — stream.go provides the live-output sink for streamed model
// answers. The stream consumer pushes content fragments into it as they
// arrive; the silent alternative is simply passing no sink at all.
package ui

import (
	"fmt"
	"io"
)

// Stream renders answer fragments to w in real time. It prepends prefix
// to the first fragment (e.g. "  ") for indentation and remembers what was
// written so Finish can close the line cleanly.
type Stream struct {
	w      io.Writer
	prefix string
	wrote  bool
	last   byte
}

// NewStream creates a live sink writing to w.
func NewStream(w io.Writer, prefix string) *Stream {
	return &Stream{w: w, prefix: prefix}
}

// Write implements io.Writer. Empty writes are ignored.
func (s *Stream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if !s.wrote {
		if _, err := fmt.Fprint(s.w, s.prefix); err != nil {
			return 0, err
		}
		s.wrote = true
	}
	n, err := s.w.Write(p)
	if n > 0 {
		s.last = p[n-1]
	}
	return n, err
}

// Flush forwards to the underlying writer when it buffers.
func (s *Stream) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Wrote reports whether any fragment reached the terminal.
func (s *Stream) Wrote() bool {
	return s.wrote
}

// Finish terminates the streamed block with a newline, unless nothing was
// written or the stream already ended on one.
func (s *Stream) Finish() {
	if s.wrote && s.last != '\n' {
		fmt.Fprintln(s.w)
	}
}
