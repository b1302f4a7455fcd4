// Package openrouter provides types for the OpenRouter chat-completion API.
package openrouter

// chatRequest is the request body sent to the chat-completions endpoint.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream,omitempty"`
}

// chatMessage is a single message in the chat-completion format.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage is the token accounting reported by the provider, usually on the
// last event of a stream. CompletionTokens is a pointer because early
// events may omit it.
type Usage struct {
	PromptTokens     uint  `json:"prompt_tokens"`
	CompletionTokens *uint `json:"completion_tokens,omitempty"`
	TotalTokens      uint  `json:"total_tokens"`
}

// streamChunk is one decoded event payload from the response stream.
type streamChunk struct {
	ID      string         `json:"id,omitempty"`
	Model   string         `json:"model,omitempty"`
	Choices []streamChoice `json:"choices"`
	Usage   *Usage         `json:"usage,omitempty"`
	Error   *apiError      `json:"error,omitempty"`
}

// streamChoice is a single choice entry within a stream event.
type streamChoice struct {
	Index        int          `json:"index"`
	Delta        streamDelta  `json:"delta"`
	FinishReason *string      `json:"finish_reason"`
}

// streamDelta carries the incremental updates for one choice.
type streamDelta struct {
	Content *string `json:"content"`
}

// apiError is an error object the provider may embed mid-stream.
type apiError struct {
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}
