// Package adapter provides clients for the external generative providers.
// It uses the Adapter pattern to hide each provider's wire format behind a
// common interface; every adapter performs exactly one outbound call per
// invocation, with no retries.
package adapter

import (
	"context"

	"github.com/Rachiee-x/farmassist-backend/internal/domain"
)

// Provider is the common surface for the text and multimodal providers.
type Provider interface {
	// Generate performs one completion call for the given canonical request
	// and returns the raw provider response for extraction.
	Generate(ctx context.Context, req domain.Request) (*domain.ProviderResponse, error)

	// Name returns the provider's identifier string.
	Name() string
}
