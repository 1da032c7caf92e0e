package nanobanana

import (
	"log/slog"
	"time"
)

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithLogger sets a structured logger for the manager.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStorage sets a storage backend for persisting generated images.
func WithStorage(storage Storage) ManagerOption {
	return func(m *Manager) {
		m.storage = storage
	}
}

// WithTimeout bounds each provider exchange, overriding Config.Timeout.
func WithTimeout(d time.Duration) ManagerOption {
	return func(m *Manager) {
		m.timeout = d
	}
}

// WithProvider registers a factory that builds the generator for provider
// once its credential has been resolved from the configuration.
func WithProvider(provider ProviderName, factory ProviderFactory) ManagerOption {
	return func(m *Manager) {
		m.factories[provider] = factory
	}
}

// WithGenerator registers a ready generator, bypassing credential lookup.
func WithGenerator(gen ImageGenerator) ManagerOption {
	return func(m *Manager) {
		m.providers[gen.Provider()] = gen
	}
}

// NewManager creates a Manager from the configuration and options.
//
// Example:
//
//	cfg, err := nanobanana.LoadConfig()
//	if err != nil {
//	    return err
//	}
//	manager := nanobanana.NewManager(*cfg,
//	    nanobanana.WithProvider(nanobanana.ProviderGoogle, gemini.Factory()),
//	    nanobanana.WithProvider(nanobanana.ProviderOpenRouter, openrouter.Factory(openrouter.Config{})),
//	    nanobanana.WithLogger(slog.Default()),
//	)
func NewManager(cfg Config, opts ...ManagerOption) *Manager {
	m := New(cfg)

	for _, opt := range opts {
		opt(m)
	}

	return m
}
