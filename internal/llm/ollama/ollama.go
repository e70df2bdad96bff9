// Package ollama provides an llm.Provider backed by a local Ollama
// server's /api/chat endpoint, using only the standard library — the
// same stdlib-only style the teacher used for its own Ollama
// integration.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"moves/internal/llm"
)

// DefaultBaseURL is the default base URL for a locally running Ollama instance.
const DefaultBaseURL = "http://localhost:11434"

var _ llm.Provider = (*Provider)(nil)

// Provider implements llm.Provider using a local Ollama server.
type Provider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// New constructs a new Ollama llm.Provider for the given model.
func New(baseURL, model string) (*Provider, error) {
	if model == "" {
		return nil, fmt.Errorf("ollama llm: model must not be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	return &Provider{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
	}, nil
}

// Available checks the server's /api/tags endpoint to confirm it's
// reachable before a long-running completion call.
func (p *Provider) Available(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  chatOptions   `json:"options,omitempty"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
}

// Complete implements llm.Provider against Ollama's /api/chat endpoint.
func (p *Provider) Complete(ctx context.Context, req llm.CompletionRequest) (llm.CompletionResponse, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	messages := make([]chatMessage, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = chatMessage{Role: m.Role, Content: m.Content}
	}

	body, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: messages,
		Stream:   false,
		Options:  chatOptions{Temperature: req.Temperature},
	})
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("ollama llm: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("ollama llm: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("ollama llm: chat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return llm.CompletionResponse{}, fmt.Errorf("ollama llm: unexpected status %d", resp.StatusCode)
	}

	var result chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return llm.CompletionResponse{}, fmt.Errorf("ollama llm: decode response: %w", err)
	}
	return llm.CompletionResponse{Content: result.Message.Content}, nil
}
