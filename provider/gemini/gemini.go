// Package gemini provides the "google" ImageGenerator using Google's Gemini API.
//
// This provider uses the Gemini API backend via the official Go SDK:
// https://github.com/googleapis/go-genai
package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/42apps/nanobanana"
	"github.com/42apps/nanobanana/internal/sl"
	"google.golang.org/genai"
)

// APIModelNanoBananaPro is the actual API name for Gemini 3 Pro Image.
const APIModelNanoBananaPro = "gemini-3-pro-image-preview"

// ContentGenerator performs a single generateContent exchange.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implements nanobanana.ImageGenerator for the google provider.
type Generator struct {
	models ContentGenerator
	model  string
	logger *slog.Logger
}

// Ensure Generator implements the interface.
var _ nanobanana.ImageGenerator = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithModel overrides the API model name.
func WithModel(model string) Option {
	return func(g *Generator) {
		g.model = model
	}
}

// WithLogger sets the logger used for model text and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a Generator backed by a Gemini API client.
func New(ctx context.Context, clientCfg *genai.ClientConfig, opts ...Option) (*Generator, error) {
	if clientCfg == nil {
		clientCfg = &genai.ClientConfig{}
	}
	if clientCfg.Backend == genai.BackendUnspecified {
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return NewWithContentGenerator(client.Models, opts...), nil
}

// NewWithAPIKey creates a generator with an API key for the Gemini API.
func NewWithAPIKey(ctx context.Context, apiKey string, opts ...Option) (*Generator, error) {
	return New(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  apiKey,
	}, opts...)
}

// NewWithContentGenerator creates a Generator over an existing transport.
func NewWithContentGenerator(models ContentGenerator, opts ...Option) *Generator {
	g := &Generator{
		models: models,
		model:  APIModelNanoBananaPro,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.With(sl.Module("provider.gemini"))
	return g
}

// Factory returns a nanobanana.ProviderFactory building a Generator from an API key.
func Factory(opts ...Option) nanobanana.ProviderFactory {
	return func(ctx context.Context, apiKey string) (nanobanana.ImageGenerator, error) {
		return NewWithAPIKey(ctx, apiKey, opts...)
	}
}

// Provider returns nanobanana.ProviderGoogle.
func (g *Generator) Provider() nanobanana.ProviderName {
	return nanobanana.ProviderGoogle
}

// Models returns the model definitions supported by this provider.
func (g *Generator) Models() []nanobanana.ModelInfo {
	info := NanoBananaProInfo
	info.APIModelName = g.model
	return []nanobanana.ModelInfo{info}
}

// Close releases any resources held by the generator.
func (g *Generator) Close() error {
	// The genai.Client doesn't require explicit closing in the current SDK
	return nil
}

// Generate builds the request, calls generateContent once and extracts the first image.
func (g *Generator) Generate(ctx context.Context, req *nanobanana.GenerationRequest, refs []nanobanana.EncodedImage) (*nanobanana.GenerateResult, error) {
	if err := nanobanana.ValidatePrompt(req.Prompt); err != nil {
		return nil, err
	}

	contents, genConfig := BuildRequest(req, refs)

	g.logger.Info("generating with Google API",
		"model", g.model,
		"references", len(refs),
	)

	resp, err := g.models.GenerateContent(ctx, g.model, contents, genConfig)
	if err != nil {
		return nil, &nanobanana.ProviderError{
			Provider: nanobanana.ProviderGoogle,
			Model:    g.model,
			Err:      fmt.Errorf("generation failed: %w", err),
		}
	}

	result := ExtractImage(resp)
	result.Model = g.model
	for _, text := range result.Text {
		g.logger.Info("model response", "text", text)
	}
	return result, nil
}
