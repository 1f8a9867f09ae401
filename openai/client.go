// Package openai provides a client for the chat completions API used to
// generate document summaries
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	systemPrompt = "You are a helpful assistant that summarizes text concisely."
	userPrompt   = "Please summarize the following document:\n\n"

	// Summaries are capped so a huge document can't produce a huge bill
	maxTokens   = 200
	temperature = 0.7
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds the single upstream handle from the openai.* config keys.
// It is constructed once at startup and passed to whoever needs it
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(viper.GetInt("openai.timeout_seconds")) * time.Second,
		},
		baseURL: strings.TrimRight(viper.GetString("openai.base_url"), "/"),
		apiKey:  viper.GetString("openai.api_key"),
		model:   viper.GetString("openai.model"),
	}
}

// Summarize sends text to the completions endpoint wrapped in a fixed
// summarization prompt and returns the completion. One call, no retries.
// Errors carry the upstream status and body but never the API key
func (c *Client) Summarize(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt + text},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completions request failed, %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completions endpoint returned %d: %s", resp.StatusCode, string(detail))
	}

	var data chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("failed to decode completions response, %w", err)
	}

	if len(data.Choices) == 0 {
		return "", errors.New("completions response contained no choices")
	}

	summary := strings.TrimSpace(data.Choices[0].Message.Content)
	if summary == "" {
		return "", errors.New("completions response contained an empty summary")
	}

	return summary, nil
}
