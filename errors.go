package nanobanana

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredential is returned when the selected provider has no API key configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrProviderNotConfigured is returned when no generator or factory is registered for a provider.
	ErrProviderNotConfigured = errors.New("provider not configured")

	// ErrUnknownProvider is returned when an explicitly requested provider is not supported.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrStorageNotConfigured is returned when storage operations are attempted
	// without a configured storage backend.
	ErrStorageNotConfigured = errors.New("storage not configured")

	// ErrNoImage reports a well-formed reply that carried no image.
	// Generate never returns it; callers use it to report a result without an image.
	ErrNoImage = errors.New("no image was generated")
)

// ConfigurationError is returned before any network attempt when the selected
// provider cannot be used with the current configuration.
type ConfigurationError struct {
	Provider ProviderName
	Variable string // Environment variable that should hold the credential
	Err      error
}

func (e *ConfigurationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("configuration error: %v", e.Err)
	}
	if e.Variable != "" {
		return fmt.Sprintf("configuration error for %s: %v (set %s)", e.Provider, e.Err, e.Variable)
	}
	return fmt.Sprintf("configuration error for %s: %v", e.Provider, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a network, transport or API fault raised while
// invoking a provider. It is distinct from a reply without an image.
type ProviderError struct {
	Provider ProviderName
	Model    string
	Err      error // Underlying error from the provider
}

func (e *ProviderError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("%s provider error (model %s): %v", e.Provider, e.Model, e.Err)
	}
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}

// IsProviderError checks if an error is a ProviderError.
func IsProviderError(err error) bool {
	var pErr *ProviderError
	return errors.As(err, &pErr)
}
