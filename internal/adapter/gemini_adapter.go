package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Rachiee-x/farmassist-backend/internal/domain"
)

const (
	// DefaultGeminiBaseURL is the default Gemini API endpoint.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultGeminiModel is used when no model is configured.
	DefaultGeminiModel = "gemini-1.5-flash"
)

// GeminiAdapter implements Provider for the Google Gemini generateContent
// API. It is the multimodal path: content may mix inline image data and text,
// with an optional system instruction.
//
// Unlike the text-provider adapter, every failure here (network, non-2xx,
// decode) surfaces as a plain error. Handlers treat them uniformly as
// transport failures.
type GeminiAdapter struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// GeminiOption is a functional option for configuring GeminiAdapter.
type GeminiOption func(*GeminiAdapter)

// WithGeminiBaseURL sets a custom base URL for the Gemini API.
func WithGeminiBaseURL(url string) GeminiOption {
	return func(g *GeminiAdapter) {
		g.baseURL = strings.TrimSuffix(url, "/")
	}
}

// WithGeminiHTTPClient sets a custom HTTP client.
func WithGeminiHTTPClient(client *http.Client) GeminiOption {
	return func(g *GeminiAdapter) {
		g.httpClient = client
	}
}

// NewGeminiAdapter creates a new GeminiAdapter with the given API key and
// model identifier.
func NewGeminiAdapter(apiKey, model string, opts ...GeminiOption) *GeminiAdapter {
	if model == "" {
		model = DefaultGeminiModel
	}

	g := &GeminiAdapter{
		apiKey:  apiKey,
		model:   model,
		baseURL: DefaultGeminiBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Name returns the provider identifier.
func (g *GeminiAdapter) Name() string {
	return "gemini"
}

// Generate performs a single generateContent call.
func (g *GeminiAdapter) Generate(ctx context.Context, req domain.Request) (*domain.ProviderResponse, error) {
	geminiReq := g.mapRequest(req)

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)

	body, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var geminiErr geminiErrorResponse
		if err := json.Unmarshal(respBody, &geminiErr); err == nil && geminiErr.Error.Message != "" {
			return nil, fmt.Errorf("gemini API error [%d]: %s", resp.StatusCode, geminiErr.Error.Message)
		}
		return nil, fmt.Errorf("gemini API error [%d]: %s", resp.StatusCode, string(respBody))
	}

	var out domain.ProviderResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal gemini response: %w", err)
	}

	return &out, nil
}

// mapRequest converts a canonical request to Gemini wire format. History
// turns become alternating contents ("assistant" maps to Gemini's "model"
// role) and the final user content carries the request parts in order.
func (g *GeminiAdapter) mapRequest(req domain.Request) geminiRequest {
	geminiReq := geminiRequest{
		Contents: make([]geminiContent, 0, len(req.History)+1),
	}

	if req.SystemInstruction != "" {
		geminiReq.SystemInstruction = &geminiContent{
			Parts: []geminiPart{{Text: req.SystemInstruction}},
		}
	}

	for _, turn := range req.History {
		role := "user"
		if turn.Role == "assistant" || turn.Role == "model" {
			role = "model"
		}
		geminiReq.Contents = append(geminiReq.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: turn.Content}},
		})
	}

	parts := make([]geminiPart, 0, len(req.Parts))
	for _, part := range req.Parts {
		if part.Image != nil {
			parts = append(parts, geminiPart{
				InlineData: &inlineData{
					MimeType: part.Image.MimeType,
					Data:     part.Image.Data,
				},
			})
			continue
		}
		parts = append(parts, geminiPart{Text: part.Text})
	}

	geminiReq.Contents = append(geminiReq.Contents, geminiContent{
		Role:  "user",
		Parts: parts,
	})

	return geminiReq
}

// ============================================================================
// Gemini API Types
// ============================================================================

// geminiRequest represents a Gemini generateContent request.
type geminiRequest struct {
	Contents          []geminiContent `json:"contents"`
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
}

// geminiContent represents a content block in Gemini format.
type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

// geminiPart is one part of a content block: text or inline binary data.
type geminiPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

// inlineData carries base64-encoded binary content such as images.
type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// geminiErrorResponse represents an error response from the Gemini API.
type geminiErrorResponse struct {
	Error geminiErrorDetail `json:"error"`
}

// geminiErrorDetail contains error details.
type geminiErrorDetail struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
