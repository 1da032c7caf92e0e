package nanobanana

import (
	"context"
)

// MockImageGenerator is a mock implementation of ImageGenerator.
type MockImageGenerator struct {
	ProviderName ProviderName
	GenerateFunc func(ctx context.Context, req *GenerationRequest, refs []EncodedImage) (*GenerateResult, error)
	ModelsFunc   func() []ModelInfo
	CloseFunc    func() error

	calls int
	req   *GenerationRequest
	refs  []EncodedImage
}

func (m *MockImageGenerator) Generate(ctx context.Context, req *GenerationRequest, refs []EncodedImage) (*GenerateResult, error) {
	m.calls++
	m.req = req
	m.refs = refs
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req, refs)
	}
	return &GenerateResult{}, nil
}

func (m *MockImageGenerator) Provider() ProviderName {
	if m.ProviderName == "" {
		return ProviderGoogle
	}
	return m.ProviderName
}

func (m *MockImageGenerator) Models() []ModelInfo {
	if m.ModelsFunc != nil {
		return m.ModelsFunc()
	}
	return []ModelInfo{}
}

func (m *MockImageGenerator) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// mockFactory returns a factory handing out gen and counting its calls.
func mockFactory(gen ImageGenerator, calls *int, gotKey *string) ProviderFactory {
	return func(ctx context.Context, apiKey string) (ImageGenerator, error) {
		*calls++
		*gotKey = apiKey
		return gen, nil
	}
}
