// Package openrouter — stream.go consumes a streaming chat-completion
// response. The body is an event stream of newline-delimited lines; only
// lines prefixed "data: " carry events, and the literal payload "[DONE]"
// marks the end of the stream.
package openrouter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"
)

const (
	dataPrefix   = "data: "
	doneSentinel = "[DONE]"

	// readBufferSize bounds how much of the body is held at once; the
	// consumer never buffers more than one in-flight chunk.
	readBufferSize = 32 * 1024
)

// Outcome is the final result of consuming one full response stream.
type Outcome struct {
	// Text is the concatenation of all content fragments in arrival order.
	Text string
	// Usage is the last usage report seen, or nil if the provider never
	// sent one.
	Usage *Usage
}

// flusher is implemented by sinks that buffer output.
type flusher interface {
	Flush() error
}

// consumer drains one streaming response. A consumer is single-use: its
// accumulator and usage state belong to exactly one call to consume.
type consumer struct {
	phase string    // label for diagnostics, e.g. "keyword generation"
	sink  io.Writer // live echo destination; nil means silent
	diag  io.Writer // warning destination; nil discards warnings

	text  strings.Builder
	usage *Usage
}

// consume reads the response to exhaustion and returns the accumulated
// text plus the last usage report. A non-2xx status, an unreadable chunk,
// or an invalid UTF-8 chunk is fatal; malformed event payloads are warned
// about and skipped.
func (c *consumer) consume(resp *http.Response) (*Outcome, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := "unable to read response body"
		if b, err := io.ReadAll(resp.Body); err == nil {
			body = string(b)
		}
		return nil, &RequestError{Phase: c.phase, Status: resp.StatusCode, Body: body}
	}

	buf := make([]byte, readBufferSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if cerr := c.consumeChunk(buf[:n]); cerr != nil {
				return nil, cerr
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ChunkReadError{Phase: c.phase, Err: err}
		}
	}

	return &Outcome{Text: c.text.String(), Usage: c.usage}, nil
}

// consumeChunk splits one chunk into lines and applies each event line.
// Chunks are line-split independently: a logical line that straddles a
// chunk boundary is not reassembled, and both halves fall through as
// non-events.
func (c *consumer) consumeChunk(chunk []byte) error {
	if !utf8.Valid(chunk) {
		return &EncodingError{Phase: c.phase}
	}

	for _, line := range strings.Split(string(chunk), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if !strings.HasPrefix(line, dataPrefix) {
			continue
		}
		payload := line[len(dataPrefix):]
		if strings.TrimSpace(payload) == doneSentinel {
			// End of stream: skip the remaining lines of this chunk.
			break
		}

		event, err := decodeChunk(payload)
		if err != nil {
			if trimmed := strings.TrimSpace(payload); trimmed != "" {
				c.warnf("failed to parse stream data from %s: %v (payload: %q)", c.phase, err, trimmed)
			}
			continue
		}
		if aerr := c.apply(event); aerr != nil {
			return aerr
		}
	}
	return nil
}

// apply folds one decoded event into the accumulator. A provider-embedded
// error object is reported but does not stop extraction of usage or
// content from the same event.
func (c *consumer) apply(event *streamChunk) error {
	if event.Error != nil {
		c.warnf("%s: provider reported an error mid-stream: %s", c.phase, event.Error.Message)
	}
	if event.Usage != nil {
		u := *event.Usage
		c.usage = &u
	}
	for _, choice := range event.Choices {
		if choice.Delta.Content == nil {
			continue
		}
		fragment := *choice.Delta.Content
		c.text.WriteString(fragment)
		if c.sink == nil {
			continue
		}
		if _, err := io.WriteString(c.sink, fragment); err != nil {
			return fmt.Errorf("failed to write to output sink: %w", err)
		}
		if f, ok := c.sink.(flusher); ok {
			if err := f.Flush(); err != nil {
				return fmt.Errorf("failed to flush output sink: %w", err)
			}
		}
	}
	return nil
}

func (c *consumer) warnf(format string, args ...any) {
	if c.diag == nil {
		return
	}
	fmt.Fprintf(c.diag, "Warning: "+format+"\n", args...)
}

// decodeChunk parses one event payload. Failure is non-fatal to the
// consumer; the caller decides whether to log it.
func decodeChunk(payload string) (*streamChunk, error) {
	var event streamChunk
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		return nil, err
	}
	return &event, nil
}
