package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rachiee-x/farmassist-backend/internal/domain"
)

func TestGeminiAdapter_mapRequest(t *testing.T) {
	g := NewGeminiAdapter("test-api-key", "gemini-1.5-flash")

	tests := []struct {
		name     string
		input    domain.Request
		validate func(*testing.T, geminiRequest)
	}{
		{
			name: "single text part",
			input: domain.Request{
				Parts: []domain.Part{domain.TextPart("hello")},
			},
			validate: func(t *testing.T, req geminiRequest) {
				if len(req.Contents) != 1 {
					t.Fatalf("len(Contents) = %d, want 1", len(req.Contents))
				}
				if req.Contents[0].Role != "user" {
					t.Errorf("Contents[0].Role = %s, want user", req.Contents[0].Role)
				}
				if req.Contents[0].Parts[0].Text != "hello" {
					t.Errorf("Contents[0].Parts[0].Text = %s, want hello", req.Contents[0].Parts[0].Text)
				}
				if req.SystemInstruction != nil {
					t.Error("SystemInstruction set, want nil")
				}
			},
		},
		{
			name: "system instruction is split out of contents",
			input: domain.Request{
				SystemInstruction: "you are an agricultural advisor",
				Parts:             []domain.Part{domain.TextPart("hi")},
			},
			validate: func(t *testing.T, req geminiRequest) {
				if req.SystemInstruction == nil {
					t.Fatal("SystemInstruction is nil")
				}
				if req.SystemInstruction.Parts[0].Text != "you are an agricultural advisor" {
					t.Errorf("SystemInstruction text = %s", req.SystemInstruction.Parts[0].Text)
				}
				if len(req.Contents) != 1 {
					t.Errorf("len(Contents) = %d, want 1 (instruction not in contents)", len(req.Contents))
				}
			},
		},
		{
			name: "history roles map assistant to model",
			input: domain.Request{
				History: []domain.Turn{
					{Role: "user", Content: "hi"},
					{Role: "assistant", Content: "hello"},
				},
				Parts: []domain.Part{domain.TextPart("how are you?")},
			},
			validate: func(t *testing.T, req geminiRequest) {
				if len(req.Contents) != 3 {
					t.Fatalf("len(Contents) = %d, want 3", len(req.Contents))
				}
				if req.Contents[1].Role != "model" {
					t.Errorf("Contents[1].Role = %s, want model", req.Contents[1].Role)
				}
				if req.Contents[2].Role != "user" || req.Contents[2].Parts[0].Text != "how are you?" {
					t.Errorf("final content = %+v, want current user message", req.Contents[2])
				}
			},
		},
		{
			name: "image part precedes text in the final content",
			input: domain.Request{
				Parts: []domain.Part{
					domain.ImagePart("image/jpeg", "QUJDRA=="),
					domain.TextPart("identify the disease"),
				},
			},
			validate: func(t *testing.T, req geminiRequest) {
				parts := req.Contents[0].Parts
				if len(parts) != 2 {
					t.Fatalf("len(parts) = %d, want 2", len(parts))
				}
				if parts[0].InlineData == nil {
					t.Fatal("parts[0].InlineData is nil, image must come first")
				}
				if parts[0].InlineData.MimeType != "image/jpeg" || parts[0].InlineData.Data != "QUJDRA==" {
					t.Errorf("InlineData = %+v", parts[0].InlineData)
				}
				if parts[1].Text != "identify the disease" {
					t.Errorf("parts[1].Text = %s", parts[1].Text)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, g.mapRequest(tt.input))
		})
	}
}

func TestGeminiAdapter_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("path = %s, want generateContent call", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-api-key" {
			t.Errorf("key = %s, want test-api-key", r.URL.Query().Get("key"))
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]any{{"text": "spray copper fungicide"}}}},
			},
		})
	}))
	defer srv.Close()

	g := NewGeminiAdapter("test-api-key", "gemini-1.5-flash", WithGeminiBaseURL(srv.URL))

	resp, err := g.Generate(context.Background(), domain.Request{
		Parts: []domain.Part{domain.TextPart("give remedy for leaf blight")},
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if answer, ok := domain.Extract(resp); !ok || answer != "spray copper fungicide" {
		t.Errorf("Extract() = %q, %v", answer, ok)
	}
}

func TestGeminiAdapter_Generate_FailureIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{
				"code":    429,
				"message": "Resource has been exhausted (e.g. check quota).",
				"status":  "RESOURCE_EXHAUSTED",
			},
		})
	}))
	defer srv.Close()

	g := NewGeminiAdapter("test-api-key", "gemini-1.5-flash", WithGeminiBaseURL(srv.URL))

	_, err := g.Generate(context.Background(), domain.Request{
		Parts: []domain.Part{domain.TextPart("hi")},
	})
	if err == nil {
		t.Fatal("Generate() error = nil, want error")
	}

	// Non-2xx on this path is NOT an APIError; handlers treat it as
	// a transport failure.
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Errorf("error = %v, want plain error on the multimodal path", err)
	}
	if !strings.Contains(err.Error(), "exhausted") {
		t.Errorf("error = %v, want provider message for the log", err)
	}
}
