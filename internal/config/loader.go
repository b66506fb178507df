package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigName = "config"
	defaultConfigType = "yaml"
	envPrefix         = "FARMASSIST"

	// EnvTextProviderKey is the secret for the chat-completions text provider
	// used by the translation endpoint.
	EnvTextProviderKey = "TEXT_PROVIDER_KEY"

	// EnvMultimodalProviderKey is the secret for the multimodal provider used
	// by the chat and remedy endpoints.
	EnvMultimodalProviderKey = "MULTIMODAL_PROVIDER_KEY"
)

// Load loads the configuration from environment variables and an optional
// config file. Priority order (highest to lowest):
// 1. Provider secrets from their dedicated env vars
// 2. Environment variables (prefixed with FARMASSIST_)
// 3. config.yaml
// 4. Default values
func Load(configPath string) (*Configuration, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName(defaultConfigName)
	v.SetConfigType(defaultConfigType)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/farmassist")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, &ConfigError{
				Op:  "read",
				Err: fmt.Errorf("failed to read config file: %w", err),
			}
		}
		// Config file not found is fine; env vars and defaults cover everything.
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &ConfigError{
			Op:  "unmarshal",
			Err: fmt.Errorf("failed to unmarshal config: %w", err),
		}
	}

	// Secrets come only from their dedicated env vars. Either may be absent:
	// the dependent endpoints reject requests until the key appears, but the
	// process itself starts.
	cfg.Providers.Text.APIKey = os.Getenv(EnvTextProviderKey)
	cfg.Providers.Multimodal.APIKey = os.Getenv(EnvMultimodalProviderKey)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout_seconds", 30)
	v.SetDefault("server.write_timeout_seconds", 60)
	v.SetDefault("server.shutdown_timeout_seconds", 15)

	// Provider defaults
	v.SetDefault("providers.text.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("providers.text.model", "mistralai/mistral-7b-instruct")
	v.SetDefault("providers.multimodal.base_url", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("providers.multimodal.model", "gemini-1.5-flash")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}
