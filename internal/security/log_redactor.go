// Package security provides data leakage prevention utilities for logging.
package security

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

// RedactedPlaceholder replaces sensitive data in log output.
const RedactedPlaceholder = "[REDACTED]"

// maxLoggedPayload caps logged free-form values so base64 image payloads
// never land in the log stream whole.
const maxLoggedPayload = 256

// sensitivePatterns contains regex patterns for the provider key formats
// this gateway handles.
var sensitivePatterns = []*regexp.Regexp{
	// Google AI keys: AIza...
	regexp.MustCompile(`AIza[a-zA-Z0-9_-]{30,}`),
	// OpenRouter / OpenAI-style keys: sk-...
	regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
	// Bearer tokens embedded in strings
	regexp.MustCompile(`Bearer\s+[a-zA-Z0-9_-]{20,}`),
	// Keys in query params: key=...
	regexp.MustCompile(`key=[a-zA-Z0-9_-]{20,}`),
}

// Redact scans a string for key material and replaces it.
func Redact(s string) string {
	result := s
	for _, pattern := range sensitivePatterns {
		result = pattern.ReplaceAllString(result, RedactedPlaceholder)
	}
	return result
}

// Truncate shortens a string for logging. Remedy requests carry whole base64
// images; logging them verbatim would drown the log sink.
func Truncate(s string) string {
	if len(s) <= maxLoggedPayload {
		return s
	}
	return s[:maxLoggedPayload] + "...(truncated)"
}

// RedactedHandler wraps an slog.Handler and redacts key material from every
// log record passing through it.
type RedactedHandler struct {
	inner slog.Handler
}

// NewRedactedHandler creates a handler that wraps an existing handler and
// redacts sensitive data from all log output.
func NewRedactedHandler(inner slog.Handler) *RedactedHandler {
	return &RedactedHandler{inner: inner}
}

// Enabled reports whether the handler handles records at the given level.
func (h *RedactedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle processes a log record, redacting sensitive data.
func (h *RedactedHandler) Handle(ctx context.Context, r slog.Record) error {
	clean := slog.Record{
		Time:    r.Time,
		Message: Redact(r.Message),
		Level:   r.Level,
		PC:      r.PC,
	}

	attrs := make([]slog.Attr, 0)
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, redactAttr(a))
		return true
	})
	clean.AddAttrs(attrs...)

	return h.inner.Handle(ctx, clean)
}

// WithAttrs returns a new handler with the given attributes added.
func (h *RedactedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	redacted := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		redacted[i] = redactAttr(a)
	}
	return &RedactedHandler{inner: h.inner.WithAttrs(redacted)}
}

// WithGroup returns a new handler with the given group name.
func (h *RedactedHandler) WithGroup(name string) slog.Handler {
	return &RedactedHandler{inner: h.inner.WithGroup(name)}
}

// redactAttr redacts sensitive data from a single attribute.
func redactAttr(a slog.Attr) slog.Attr {
	if isSensitiveKey(strings.ToLower(a.Key)) {
		return slog.String(a.Key, RedactedPlaceholder)
	}

	if v, ok := a.Value.Any().(string); ok {
		return slog.String(a.Key, Redact(v))
	}

	return a
}

// isSensitiveKey checks if an attribute key is known to contain sensitive data.
func isSensitiveKey(key string) bool {
	sensitiveKeys := []string{
		"authorization",
		"api_key",
		"apikey",
		"api-key",
		"secret",
		"token",
		"bearer",
		"credential",
	}

	for _, k := range sensitiveKeys {
		if strings.Contains(key, k) {
			return true
		}
	}
	return false
}
