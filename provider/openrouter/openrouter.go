// Package openrouter provides the "openrouter" ImageGenerator using the
// OpenRouter chat completions API with image output modalities.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/42apps/nanobanana"
	"github.com/42apps/nanobanana/internal/sl"
)

const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "google/gemini-3-pro-image-preview"
	DefaultReferer = "https://github.com/42apps/nano-banana"
	DefaultTitle   = "Nano Banana Pro"

	chatCompletionsPath = "/chat/completions"

	// Display limits for text returned by the model
	blockTextLimit  = 200
	stringTextLimit = 500

	// Bytes of an error body kept in the error message
	errorBodyLimit = 1000
)

// Config holds the settings of an OpenRouter generator.
type Config struct {
	APIKey string

	// BaseURL defaults to DefaultBaseURL
	BaseURL string

	// Model defaults to DefaultModel
	Model string

	// Attribution headers, defaulting to DefaultReferer and DefaultTitle
	Referer string
	Title   string

	// HTTPClient defaults to a client without its own timeout; the caller's
	// context bounds each exchange.
	HTTPClient *http.Client

	Logger *slog.Logger
}

// Generator implements nanobanana.ImageGenerator for the openrouter provider.
type Generator struct {
	cfg    Config
	client *http.Client
	logger *slog.Logger
}

// Ensure Generator implements the interface.
var _ nanobanana.ImageGenerator = (*Generator)(nil)

// New creates a Generator, filling unset fields of cfg with defaults.
func New(cfg Config) *Generator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Referer == "" {
		cfg.Referer = DefaultReferer
	}
	if cfg.Title == "" {
		cfg.Title = DefaultTitle
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		cfg:    cfg,
		client: client,
		logger: logger.With(sl.Module("provider.openrouter")),
	}
}

// Factory returns a nanobanana.ProviderFactory building a Generator from an
// API key. The key overrides cfg.APIKey.
func Factory(cfg Config) nanobanana.ProviderFactory {
	return func(_ context.Context, apiKey string) (nanobanana.ImageGenerator, error) {
		c := cfg
		c.APIKey = apiKey
		return New(c), nil
	}
}

// Provider returns nanobanana.ProviderOpenRouter.
func (g *Generator) Provider() nanobanana.ProviderName {
	return nanobanana.ProviderOpenRouter
}

// Models returns the model definitions supported by this provider.
func (g *Generator) Models() []nanobanana.ModelInfo {
	info := NanoBananaProInfo
	info.APIModelName = g.cfg.Model
	return []nanobanana.ModelInfo{info}
}

// Close releases idle connections of the HTTP client.
func (g *Generator) Close() error {
	g.client.CloseIdleConnections()
	return nil
}

// Generate posts one chat completion request and extracts the first image
// of the reply.
func (g *Generator) Generate(ctx context.Context, req *nanobanana.GenerationRequest, refs []nanobanana.EncodedImage) (*nanobanana.GenerateResult, error) {
	if err := nanobanana.ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(BuildRequest(g.cfg.Model, req, refs))
	if err != nil {
		return nil, g.providerError(fmt.Errorf("failed to encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.BaseURL+chatCompletionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, g.providerError(fmt.Errorf("failed to create request: %w", err))
	}
	g.setHeaders(httpReq)

	g.logger.Info("generating with OpenRouter API",
		"model", g.cfg.Model,
		"references", len(refs),
		"image_size", ImageSizeFor(req.Resolution),
	)

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, g.providerError(fmt.Errorf("request failed: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, g.providerError(fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, g.providerError(&StatusError{
			StatusCode: resp.StatusCode,
			Body:       sl.Truncate(string(body), errorBodyLimit),
		})
	}

	reply, err := DecodeReply(body)
	if err != nil {
		return nil, g.providerError(err)
	}

	result := ExtractImage(reply)
	if result.Model == "" {
		result.Model = g.cfg.Model
	}

	limit := blockTextLimit
	if reply.Content.IsString {
		limit = stringTextLimit
	}
	for _, text := range result.Text {
		g.logger.Info("model response", "text", sl.Truncate(text, limit))
	}
	return result, nil
}

func (g *Generator) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("HTTP-Referer", g.cfg.Referer)
	req.Header.Set("X-Title", g.cfg.Title)
}

func (g *Generator) providerError(err error) *nanobanana.ProviderError {
	return &nanobanana.ProviderError{
		Provider: nanobanana.ProviderOpenRouter,
		Model:    g.cfg.Model,
		Err:      err,
	}
}

// StatusError is returned for a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}
