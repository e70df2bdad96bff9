// Package llm defines the Provider interface the Section Producer uses
// for its single completion call: presentation + transcript text in,
// an ordered JSON section list out.
package llm

import "context"

// Message is one turn of a chat-style completion request.
type Message struct {
	Role    string // "system", "user", or "assistant"
	Content string
}

// CompletionRequest is the input to a single LLM call.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Temperature float64
}

// CompletionResponse is the output of a single LLM call.
type CompletionResponse struct {
	Content string
}

// Provider is the abstraction over any LLM completion backend. The
// Section Producer needs exactly one operation — a single non-streaming
// completion call — so no streaming, tool-call, or token-counting
// surface is exposed here.
type Provider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}
