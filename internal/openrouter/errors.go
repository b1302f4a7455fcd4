package openrouter

import "fmt"

// RequestError reports a non-2xx response. The body is captured best-effort
// for diagnostics before any streaming is attempted.
type RequestError struct {
	Phase  string
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s request failed (status %d): %s", e.Phase, e.Status, e.Body)
}

// EncodingError reports a response chunk that was not valid UTF-8 on its
// own. Chunks are decoded independently, so a multi-byte character split
// across a chunk boundary also lands here.
type EncodingError struct {
	Phase string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s stream contained an invalid UTF-8 chunk", e.Phase)
}

// ChunkReadError reports a transport-level failure while reading the
// response body mid-stream, e.g. a connection reset.
type ChunkReadError struct {
	Phase string
	Err   error
}

func (e *ChunkReadError) Error() string {
	return fmt.Sprintf("error reading chunk from %s stream: %v", e.Phase, e.Err)
}

func (e *ChunkReadError) Unwrap() error { return e.Err }
