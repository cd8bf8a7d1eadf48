package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
	defaultTimeout = 30 * time.Second
)

// Client generates a strict-JSON completion for a system/user prompt pair.
// Implementations must honor the context deadline; the scheduling engine
// never waits on an AI call without a timeout.
type Client interface {
	GenerateJSON(ctx context.Context, system, user string) ([]byte, error)
}

// OpenAIClient calls the chat completions API. A missing API key is not an
// error at construction; calls return ErrUnavailable instead so the caller's
// fallback path kicks in.
type OpenAIClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client
}

func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		model:   defaultModel,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) GenerateJSON(ctx context.Context, system, user string) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrUnavailable
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.7,
		ResponseFormat: respFormat{Type: "json_object"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("assistant call failed", "error", err)
		return nil, ErrUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("assistant call rejected", "status", resp.StatusCode)
		return nil, ErrUnavailable
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrUnavailable
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil || len(parsed.Choices) == 0 {
		slog.Warn("assistant returned malformed response")
		return nil, ErrUnavailable
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	return []byte(content), nil
}
