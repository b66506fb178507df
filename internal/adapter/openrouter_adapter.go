package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Rachiee-x/farmassist-backend/internal/domain"
)

const (
	// DefaultOpenRouterBaseURL is the default OpenRouter API endpoint.
	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// DefaultTimeout is the default HTTP client timeout for provider calls.
	DefaultTimeout = 30 * time.Second

	// Fixed generation knobs for the translation path. Low temperature keeps
	// translations close to the source text.
	completionTemperature = 0.3
	completionMaxTokens   = 1024
)

// OpenRouterAdapter implements Provider for the chat-completions text API
// used by the translation endpoint.
type OpenRouterAdapter struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// OpenRouterOption is a functional option for configuring OpenRouterAdapter.
type OpenRouterOption func(*OpenRouterAdapter)

// WithOpenRouterBaseURL sets a custom base URL for the OpenRouter API.
func WithOpenRouterBaseURL(url string) OpenRouterOption {
	return func(a *OpenRouterAdapter) {
		a.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithOpenRouterHTTPClient sets a custom HTTP client.
func WithOpenRouterHTTPClient(client *http.Client) OpenRouterOption {
	return func(a *OpenRouterAdapter) {
		a.httpClient = client
	}
}

// NewOpenRouterAdapter creates a new OpenRouterAdapter for the given key and
// model identifier.
func NewOpenRouterAdapter(apiKey, model string, opts ...OpenRouterOption) *OpenRouterAdapter {
	a := &OpenRouterAdapter{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultOpenRouterBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Name returns the provider identifier.
func (a *OpenRouterAdapter) Name() string {
	return "openrouter"
}

// chatCompletionRequest is the chat-completions wire format.
type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Generate performs a single chat completion call. A non-success status maps
// to *APIError carrying the response body; transport failures are returned
// as plain errors.
func (a *OpenRouterAdapter) Generate(ctx context.Context, req domain.Request) (*domain.ProviderResponse, error) {
	payload := chatCompletionRequest{
		Model:       a.model,
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	}

	if req.SystemInstruction != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	for _, turn := range req.History {
		payload.Messages = append(payload.Messages, chatMessage{Role: turn.Role, Content: turn.Content})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: textContent(req.Parts)})

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	url := a.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute completion request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read completion response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var out domain.ProviderResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal completion response: %w", err)
	}

	return &out, nil
}

// textContent returns the text of the last text part. The text provider
// cannot carry image parts; any present are ignored.
func textContent(parts []domain.Part) string {
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i].Text != "" {
			return parts[i].Text
		}
	}
	return ""
}
