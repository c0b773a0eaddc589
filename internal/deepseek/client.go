// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package deepseek implements the DeepSeek chat-completion client and the
// background fetch worker used by the chat session.
package deepseek

import (
	"bytes"
	"context"
	"crypto/sha256"
	"crypto/tls"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// Configuration constants for the DeepSeek API.
const (
	// DefaultBaseURL is the base URL for the DeepSeek API.
	DefaultBaseURL = "https://api.deepseek.com/v1"

	// DefaultModel is the chat model requested when none is configured.
	DefaultModel = "deepseek-chat"

	// DefaultTemperature is the sampling temperature for simulation control
	// replies. Low so directive lines come back consistently.
	DefaultTemperature = 0.2

	// MaxResponseSize is the maximum allowed response body size.
	// SECURITY: Response size limit prevents memory exhaustion attacks.
	MaxResponseSize = 10 * 1024 * 1024 // 10MB limit
)

// sharedHTTPClient is used for all DeepSeek requests. It carries no overall
// timeout: a completion call runs until the server answers or the connection
// drops, and cancellation is left to the request context.
// PERFORMANCE: Connection pooling reduces TCP handshake overhead.
var sharedHTTPClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	},
}

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`    // "user", "assistant", or "system"
	Content string `json:"content"` // The message content
}

// NewUserMessage creates a new user message.
func NewUserMessage(content string) ChatMessage {
	return ChatMessage{Role: "user", Content: content}
}

// NewAssistantMessage creates a new assistant message.
func NewAssistantMessage(content string) ChatMessage {
	return ChatMessage{Role: "assistant", Content: content}
}

// NewSystemMessage creates a new system message.
func NewSystemMessage(content string) ChatMessage {
	return ChatMessage{Role: "system", Content: content}
}

// ChatRequest represents a request to the chat completions endpoint.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	Stream      bool          `json:"stream"`
	Temperature float64       `json:"temperature"`
}

// ChatResponse represents a response from the chat completions endpoint.
type ChatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message      ChatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// GetContent returns the content of the first choice, or empty string if none.
func (r *ChatResponse) GetContent() string {
	if len(r.Choices) > 0 {
		return r.Choices[0].Message.Content
	}
	return ""
}

// apiErrorResponse represents an error response from the API.
type apiErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client is a client for the DeepSeek chat-completion API.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewClient creates a DeepSeek client with the given API key.
//
// If the API key is empty the client can still be created, but Chat requests
// will fail with ErrMissingCredential.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      strings.TrimSpace(apiKey),
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		httpClient:  sharedHTTPClient,
		// Client-side throttle: 2 requests/sec with burst of 4. A chat
		// surface never needs more, and it keeps rapid resubmits from
		// hammering the endpoint.
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

// WithBaseURL sets a custom base URL for the API. A trailing slash is
// trimmed so endpoint paths join cleanly.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// WithModel sets the model requested for chat completions.
func (c *Client) WithModel(model string) *Client {
	if model != "" {
		c.model = model
	}
	return c
}

// WithTemperature sets the sampling temperature for chat completions.
func (c *Client) WithTemperature(temperature float64) *Client {
	c.temperature = temperature
	return c
}

// Model returns the current model.
func (c *Client) Model() string {
	return c.model
}

// IsConfigured returns true if the client has an API key configured.
func (c *Client) IsConfigured() bool {
	return c.apiKey != ""
}

// APIKeyMasked returns a masked description of the API key for display.
// SECURITY: Never exposes key fragments, only a length and fingerprint.
func (c *Client) APIKeyMasked() string {
	if c.apiKey == "" {
		return "[not set]"
	}
	return fmt.Sprintf("[REDACTED, length=%d, fingerprint=%s]", len(c.apiKey), c.KeyFingerprint())
}

// KeyFingerprint returns a short SHA-256 fingerprint of the API key, safe
// for logs and confirmation output.
func (c *Client) KeyFingerprint() string {
	if c.apiKey == "" {
		return "none"
	}
	h := sha256.Sum256([]byte(c.apiKey))
	return hex.EncodeToString(h[:4])
}

// setHeaders sets the required headers for DeepSeek API requests.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "simchat/0.1.0")
}

// Chat performs a single chat completion request with the given messages.
//
// There is no retry: the caller shows whatever happened, and the user decides
// whether to ask again. Cancellation comes from ctx only.
func (c *Client) Chat(ctx context.Context, messages []ChatMessage) (*ChatResponse, error) {
	if !c.IsConfigured() {
		return nil, ErrMissingCredential
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, transportErr("rate limit wait interrupted", err)
	}

	reqBody := ChatRequest{
		Model:       c.model,
		Messages:    messages,
		Stream:      false,
		Temperature: c.temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, protocolErr("failed to marshal request", err)
	}

	url := c.baseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, transportErr("failed to create request", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)

	// SECURITY: Clear Authorization header immediately after the request to
	// keep the credential out of any downstream logging.
	req.Header.Del("Authorization")

	if err != nil {
		return nil, transportErr("request failed", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, handleErrorResponse(resp.StatusCode, body)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, protocolErr("failed to parse response", err)
	}
	return &chatResp, nil
}

// readResponse reads the response body with a size limit.
//
// SECURITY: Response size limit prevents memory exhaustion attacks.
func readResponse(resp *http.Response) ([]byte, error) {
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize)
	body, err := io.ReadAll(limitedReader)
	if err != nil {
		return nil, transportErr("failed to read response", err)
	}
	if int64(len(body)) == MaxResponseSize {
		return nil, protocolErr(fmt.Sprintf("response exceeded maximum size of %d bytes", MaxResponseSize), nil)
	}
	return body, nil
}

// handleErrorResponse converts HTTP error responses to an APIError.
func handleErrorResponse(statusCode int, body []byte) error {
	var apiErr apiErrorResponse
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
		return &APIError{
			Code:    apiErr.Error.Code,
			Message: apiErr.Error.Message,
			Status:  statusCode,
		}
	}
	return &APIError{
		Message: strings.TrimSpace(string(body)),
		Status:  statusCode,
	}
}
