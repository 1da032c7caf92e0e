package nanobanana

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/42apps/nanobanana/internal/sl"
)

// ProviderName identifies a remote image generation backend.
type ProviderName string

const (
	ProviderGoogle     ProviderName = "google"
	ProviderOpenRouter ProviderName = "openrouter"

	DefaultProvider = ProviderGoogle
)

// SupportedProviders lists every provider the manager can route to.
var SupportedProviders = []ProviderName{ProviderGoogle, ProviderOpenRouter}

// String returns the provider identifier.
func (p ProviderName) String() string {
	return string(p)
}

// Manager validates generation parameters, selects the provider, loads the
// reference images and runs one exchange with the provider's generator.
type Manager struct {
	config Config

	// Provider instances, created lazily from factories
	providers map[ProviderName]ImageGenerator

	// Factories build a provider once its credential is resolved
	factories map[ProviderName]ProviderFactory

	// Timeout for a single exchange; falls back to config, then DefaultTimeout
	timeout time.Duration

	// Logger for structured logging
	logger *slog.Logger

	// Storage for persisting generated images
	storage Storage

	mu sync.RWMutex
}

// New creates a Manager with the given configuration and no providers.
func New(cfg Config) *Manager {
	return &Manager{
		config:    cfg,
		logger:    slog.Default(),
		providers: make(map[ProviderName]ImageGenerator),
		factories: make(map[ProviderName]ProviderFactory),
		storage:   &LocalStorage{},
	}
}

// RegisterGenerator registers a ready generator for its provider.
// A registered generator is used as is; no credential lookup happens for it.
func (m *Manager) RegisterGenerator(gen ImageGenerator) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.providers[gen.Provider()] = gen
	return m
}

// RegisterFactory registers a factory that builds the generator for provider
// the first time it is needed.
func (m *Manager) RegisterFactory(provider ProviderName, factory ProviderFactory) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.factories[provider] = factory
	return m
}

// SetLogger sets a structured logger for the manager.
func (m *Manager) SetLogger(logger *slog.Logger) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger = logger
	return m
}

// SetStorage sets a storage backend for persisting generated images.
func (m *Manager) SetStorage(storage Storage) *Manager {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.storage = storage
	return m
}

// Storage returns the configured storage backend, or nil if not set.
func (m *Manager) Storage() Storage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.storage
}

// Config returns a copy of the manager's configuration.
func (m *Manager) Config() Config {
	return m.config
}

// SaveResult saves the image of a GenerateResult to the configured storage.
// If no storage is configured, returns ErrStorageNotConfigured.
func (m *Manager) SaveResult(ctx context.Context, result *GenerateResult, opts OutputOptions) (*StorageResult, error) {
	m.mu.RLock()
	storage := m.storage
	logger := m.logger
	m.mu.RUnlock()

	saved, err := SaveToStorage(ctx, storage, result, opts)
	if err != nil {
		return nil, err
	}

	logger.Info("image saved",
		"path", saved.Path,
		"bytes", saved.Size,
	)
	return saved, nil
}

// Generate runs one generation: it normalizes params, resolves the provider
// and its credential, loads reference images and performs a single exchange.
//
// A reply without an image is returned as a result whose HasImage is false.
// Configuration problems are returned as *ConfigurationError before any
// network attempt; faults during the exchange are returned as *ProviderError.
func (m *Manager) Generate(ctx context.Context, params GenerateParams) (*GenerateResult, error) {
	logger := m.getLogger()

	req, warnings, err := NormalizeParams(params, m.config.Provider)
	for _, w := range warnings {
		logger.Warn("input corrected",
			"kind", string(w.Kind),
			"warning", w.Message,
		)
	}
	if err != nil {
		logger.Error("invalid generation parameters", sl.Err(err))
		return nil, err
	}

	gen, err := m.generatorFor(ctx, req.Provider)
	if err != nil {
		logger.Error("failed to get generator",
			"provider", req.Provider.String(),
			sl.Err(err),
		)
		return nil, err
	}

	refs, refWarnings := EncodeReferences(req.ReferenceImages)
	for _, w := range refWarnings {
		logger.Warn("skipping reference image",
			"path", w.Path,
			"warning", w.Message,
		)
	}
	for _, ref := range refs {
		logger.Debug("loaded reference",
			"path", ref.Path,
			"mime_type", ref.MIMEType,
			"bytes", len(ref.Data),
		)
	}
	warnings = append(warnings, refWarnings...)
	if len(req.ReferenceImages) > 0 {
		logger.Info("using reference images",
			"count", len(refs),
			"requested", len(req.ReferenceImages),
		)
	}

	logger.Debug("starting image generation",
		"provider", req.Provider.String(),
		"aspect_ratio", req.AspectRatio.String(),
		"resolution", req.Resolution.String(),
		"prompt_length", len(req.Prompt),
	)

	ctx, cancel := context.WithTimeout(ctx, m.getTimeout())
	defer cancel()

	start := time.Now()
	result, err := gen.Generate(ctx, req, refs)
	duration := time.Since(start)

	if err != nil {
		logger.Error("generation failed",
			"provider", req.Provider.String(),
			"duration_ms", duration.Milliseconds(),
			sl.Err(err),
		)

		var pErr *ProviderError
		if !errors.As(err, &pErr) {
			err = &ProviderError{Provider: req.Provider, Err: err}
		}
		return nil, err
	}
	if result == nil {
		result = &GenerateResult{}
	}

	if result.Provider == "" {
		result.Provider = req.Provider
	}
	result.ReferenceCount = len(refs)
	result.Warnings = append(warnings, result.Warnings...)

	logAttrs := []any{
		"provider", req.Provider.String(),
		"model", result.Model,
		"duration_ms", duration.Milliseconds(),
		"has_image", result.HasImage(),
	}
	if result.UsageMetadata != nil {
		logAttrs = append(logAttrs,
			"prompt_tokens", result.UsageMetadata.PromptTokens,
			"response_tokens", result.UsageMetadata.CandidatesTokens,
			"total_tokens", result.UsageMetadata.TotalTokens,
		)
	}
	if !result.HasImage() && result.Reason != "" {
		logAttrs = append(logAttrs, "reason", result.Reason)
	}
	logger.Info("generation completed", logAttrs...)

	return result, nil
}

// Models returns the model definitions of all instantiated generators.
func (m *Manager) Models() []ModelInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var models []ModelInfo
	for _, p := range SupportedProviders {
		if gen, ok := m.providers[p]; ok {
			models = append(models, gen.Models()...)
		}
	}
	return models
}

// Close releases all provider resources.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for provider, gen := range m.providers {
		if err := gen.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing %s: %w", provider, err))
		}
	}
	m.providers = make(map[ProviderName]ImageGenerator)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// generatorFor returns the generator for provider, building it from its
// factory after the credential has been resolved.
func (m *Manager) generatorFor(ctx context.Context, provider ProviderName) (ImageGenerator, error) {
	m.mu.RLock()
	gen, ok := m.providers[provider]
	factory := m.factories[provider]
	m.mu.RUnlock()

	if ok {
		return gen, nil
	}
	if factory == nil {
		return nil, &ConfigurationError{Provider: provider, Err: ErrProviderNotConfigured}
	}

	apiKey, err := m.config.APIKey(provider)
	if err != nil {
		return nil, err
	}

	m.getLogger().Debug("creating provider",
		"provider", provider.String(),
		sl.Secret(apiKey),
	)

	gen, err = factory(ctx, apiKey)
	if err != nil {
		return nil, &ConfigurationError{Provider: provider, Err: err}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.providers[provider]; ok {
		_ = gen.Close()
		return existing, nil
	}
	m.providers[provider] = gen
	return gen, nil
}

func (m *Manager) getLogger() *slog.Logger {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.logger
}

func (m *Manager) getTimeout() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.timeout > 0 {
		return m.timeout
	}
	return m.config.timeout()
}
