package nanobanana

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvProvider         = "NANO_BANANA_PROVIDER"
	EnvGeminiAPIKey     = "GEMINI_API_KEY"
	EnvOpenRouterAPIKey = "OPENROUTER_API_KEY"
)

// Config is the environment configuration for a run. It is read once by the
// caller and passed into NewManager.
type Config struct {
	Provider          string        `env:"NANO_BANANA_PROVIDER" env-default:"google" env-description:"Provider to use: google or openrouter"`
	GeminiAPIKey      string        `env:"GEMINI_API_KEY" env-description:"API key for the google provider (https://aistudio.google.com)"`
	OpenRouterAPIKey  string        `env:"OPENROUTER_API_KEY" env-description:"API key for the openrouter provider (https://openrouter.ai)"`
	OpenRouterBaseURL string        `env:"OPENROUTER_BASE_URL" env-default:"https://openrouter.ai/api/v1" env-description:"OpenRouter API base URL"`
	Timeout           time.Duration `env:"NANO_BANANA_TIMEOUT" env-default:"2m" env-description:"Timeout for the provider request"`
}

// LoadConfig reads the configuration from the environment. The given env
// files (".env" when none) are loaded first without overriding variables
// that are already set; missing files are ignored.
func LoadConfig(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		desc, _ := cleanenv.GetDescription(cfg, nil)
		return nil, fmt.Errorf("config: %w; %s", err, desc)
	}
	return cfg, nil
}

// EnvironmentHelp describes every environment variable the configuration reads.
func EnvironmentHelp() string {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return desc
}

// CredentialVariable returns the environment variable holding the provider's API key.
func CredentialVariable(provider ProviderName) string {
	switch provider {
	case ProviderGoogle:
		return EnvGeminiAPIKey
	case ProviderOpenRouter:
		return EnvOpenRouterAPIKey
	default:
		return ""
	}
}

// APIKey returns the credential for provider, or a ConfigurationError when it is not set.
func (c *Config) APIKey(provider ProviderName) (string, error) {
	var key string
	if c != nil {
		switch provider {
		case ProviderGoogle:
			key = c.GeminiAPIKey
		case ProviderOpenRouter:
			key = c.OpenRouterAPIKey
		default:
			return "", &ConfigurationError{Provider: provider, Err: ErrUnknownProvider}
		}
	}
	if key == "" {
		return "", &ConfigurationError{
			Provider: provider,
			Variable: CredentialVariable(provider),
			Err:      ErrMissingCredential,
		}
	}
	return key, nil
}

// timeout returns the configured timeout or DefaultTimeout.
func (c *Config) timeout() time.Duration {
	if c == nil || c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
