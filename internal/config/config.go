// Package config provides configuration management for the gateway.
// It loads configuration from environment variables and an optional
// config.yaml using Viper.
package config

import "fmt"

// Configuration holds all application configuration values. It is built once
// at startup and passed explicitly to every handler; nothing reads ambient
// globals after load.
type Configuration struct {
	// Server configuration
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Providers configuration
	Providers ProvidersConfig `json:"providers" mapstructure:"providers"`

	// Logging configuration
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `json:"host" mapstructure:"host"`

	// Port is the server port number.
	Port int `json:"port" mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeoutSeconds int `json:"write_timeout_seconds" mapstructure:"write_timeout_seconds"`

	// ShutdownTimeout is the maximum duration to wait for active connections to finish.
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// ProvidersConfig holds configuration for both upstream providers.
type ProvidersConfig struct {
	// Text is the chat-completions provider used for translation.
	Text ProviderConfig `json:"text" mapstructure:"text"`

	// Multimodal is the generative provider used for chat and remedy.
	Multimodal ProviderConfig `json:"multimodal" mapstructure:"multimodal"`
}

// ProviderConfig holds the settings for one upstream provider.
type ProviderConfig struct {
	// APIKey is the provider secret. It comes from a dedicated environment
	// variable, never from the config file, and is allowed to be empty:
	// the endpoints that need it reject requests until it is set.
	APIKey string `json:"-" mapstructure:"-"`

	// BaseURL is the provider API endpoint.
	BaseURL string `json:"base_url" mapstructure:"base_url"`

	// Model is the model identifier sent with every call.
	Model string `json:"model" mapstructure:"model"`
}

// Configured reports whether the provider has a credential.
func (p ProviderConfig) Configured() bool {
	return p.APIKey != ""
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" mapstructure:"level"`

	// Format is the log format (json, text).
	Format string `json:"format" mapstructure:"format"`
}

// Validate validates the configuration and returns an error if values are out
// of range. Note that provider secrets are deliberately not validated here:
// a missing secret disables its endpoints per-request instead of failing
// startup.
func (c *Configuration) Validate() error {
	var validationErrors []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		validationErrors = append(validationErrors, "server.port must be between 1 and 65535")
	}

	if c.Providers.Text.BaseURL == "" {
		validationErrors = append(validationErrors, "providers.text.base_url is required")
	}
	if c.Providers.Text.Model == "" {
		validationErrors = append(validationErrors, "providers.text.model is required")
	}
	if c.Providers.Multimodal.BaseURL == "" {
		validationErrors = append(validationErrors, "providers.multimodal.base_url is required")
	}
	if c.Providers.Multimodal.Model == "" {
		validationErrors = append(validationErrors, "providers.multimodal.model is required")
	}

	if c.Logging.Level != "" && !isValidLogLevel(c.Logging.Level) {
		validationErrors = append(validationErrors, fmt.Sprintf(
			"logging.level '%s' is invalid, must be one of: debug, info, warn, error",
			c.Logging.Level,
		))
	}

	if len(validationErrors) > 0 {
		return &ValidationError{Errors: validationErrors}
	}

	return nil
}

// isValidLogLevel checks if the log level is valid.
func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}
