package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ChatClient calls a hosted chat-completion service. Two endpoint styles
// are supported, selected by configuration:
//
//   - Azure OpenAI: endpoint + deployment + api-version, "api-key" header
//   - OpenAI-compatible: endpoint only, "Authorization: Bearer" header
//
// A client with no API key is unconfigured and never touches the network.
type ChatClient struct {
	APIKey     string
	Endpoint   string
	Deployment string // Azure deployment name; empty selects Bearer mode
	APIVersion string
	Model      string // model name for OpenAI-compatible endpoints

	Temperature float64
	MaxTokens   int

	client *http.Client
}

// NewChatClient builds a chat client. endpoint is the service base URL
// without a trailing path.
func NewChatClient(apiKey, endpoint, deployment, apiVersion, model string) *ChatClient {
	return &ChatClient{
		APIKey:      apiKey,
		Endpoint:    strings.TrimRight(endpoint, "/"),
		Deployment:  deployment,
		APIVersion:  apiVersion,
		Model:       model,
		Temperature: 0.7,
		MaxTokens:   500,
		client:      newHTTPClient(),
	}
}

// Configured reports whether the client has enough credentials to call out.
func (c *ChatClient) Configured() bool {
	return c != nil && c.APIKey != "" && c.Endpoint != ""
}

// Chat sends the conversation and returns the generated text plus the
// token usage the service reports. Usage of zero means the service did
// not report it; the caller decides how to estimate.
func (c *ChatClient) Chat(ctx context.Context, messages []Message) (*ChatResult, error) {
	if !c.Configured() {
		return nil, ErrUnconfigured
	}

	body := map[string]interface{}{
		"messages":    messages,
		"temperature": c.Temperature,
		"max_tokens":  c.MaxTokens,
	}
	url := c.Endpoint + "/v1/chat/completions"
	if c.Deployment != "" {
		url = fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
			c.Endpoint, c.Deployment, c.APIVersion)
	} else if c.Model != "" {
		body["model"] = c.Model
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Deployment != "" {
		req.Header.Set("api-key", c.APIKey)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: "chat", Code: resp.StatusCode, Body: string(raw)}
	}

	var payload struct {
		Model   string `json:"model"`
		Choices []struct {
			Message      Message `json:"message"`
			FinishReason string  `json:"finish_reason"`
		} `json:"choices"`
		Usage struct {
			TotalTokens int `json:"total_tokens"`
		} `json:"usage"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}
	if len(payload.Choices) == 0 {
		return nil, fmt.Errorf("chat: unexpected response format")
	}

	return &ChatResult{
		Text:         payload.Choices[0].Message.Content,
		TotalTokens:  payload.Usage.TotalTokens,
		Model:        payload.Model,
		FinishReason: payload.Choices[0].FinishReason,
	}, nil
}
