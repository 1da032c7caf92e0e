package nanobanana

import "context"

// ImageGenerator is the interface every provider backend implements.
// Implement this interface to add support for new providers.
//
// A generator builds its own request from the normalized GenerationRequest,
// performs exactly one exchange with its endpoint and extracts the image
// from the reply. Transport faults are returned as errors; a reply without
// an image is a GenerateResult with a nil Image.
type ImageGenerator interface {
	// Generate creates an image from the request and the already encoded reference images.
	Generate(ctx context.Context, req *GenerationRequest, refs []EncodedImage) (*GenerateResult, error)

	// Provider identifies the backend served by this generator.
	Provider() ProviderName

	// Models returns the model definitions supported by this provider.
	// The first model in the list is the default.
	Models() []ModelInfo

	// Close releases any resources held by the generator.
	Close() error
}

// ProviderFactory creates a generator once the credential for its provider is known.
type ProviderFactory func(ctx context.Context, apiKey string) (ImageGenerator, error)
