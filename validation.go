package nanobanana

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors
var (
	ErrEmptyPrompt   = errors.New("prompt cannot be empty")
	ErrTooManyImages = errors.New("too many reference images")
)

// MaxReferenceImages is the maximum number of reference images per request.
const MaxReferenceImages = 14

// ValidatePrompt validates a text prompt.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

// ValidateReferenceCount rejects more reference images than a request can carry.
func ValidateReferenceCount(paths []string) error {
	if len(paths) > MaxReferenceImages {
		return fmt.Errorf("%w: %d (max %d)", ErrTooManyImages, len(paths), MaxReferenceImages)
	}
	return nil
}

// NormalizeAspectRatio returns the aspect ratio for value. An empty value
// yields the default; an unsupported value yields the default and a warning.
func NormalizeAspectRatio(value string) (AspectRatio, *Warning) {
	if value == "" {
		return DefaultAspectRatio, nil
	}
	for _, ar := range SupportedAspectRatios {
		if string(ar) == value {
			return ar, nil
		}
	}
	return DefaultAspectRatio, &Warning{
		Kind:    WarningAspectRatio,
		Message: fmt.Sprintf("invalid aspect ratio %q, using %q", value, DefaultAspectRatio),
	}
}

// NormalizeResolution returns the image size for value. An empty value yields
// the default; an unsupported value yields the default and a warning.
func NormalizeResolution(value string) (ImageSize, *Warning) {
	if value == "" {
		return DefaultImageSize, nil
	}
	for _, size := range SupportedImageSizes {
		if string(size) == value {
			return size, nil
		}
	}
	return DefaultImageSize, &Warning{
		Kind:    WarningResolution,
		Message: fmt.Sprintf("invalid resolution %q, using %q", value, DefaultImageSize),
	}
}

// ParseProvider parses a provider identifier, ignoring case and surrounding space.
func ParseProvider(value string) (ProviderName, bool) {
	p := ProviderName(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range SupportedProviders {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// ResolveProvider picks the effective provider: an explicit value wins, then
// the configured value, then the default. An unknown explicit value is an
// error; an unknown configured value falls back to the default with a warning.
func ResolveProvider(explicit, configured string) (ProviderName, *Warning, error) {
	if strings.TrimSpace(explicit) != "" {
		p, ok := ParseProvider(explicit)
		if !ok {
			return "", nil, fmt.Errorf("%w: %q", ErrUnknownProvider, explicit)
		}
		return p, nil, nil
	}

	if strings.TrimSpace(configured) == "" {
		return DefaultProvider, nil, nil
	}

	p, ok := ParseProvider(configured)
	if !ok {
		return DefaultProvider, &Warning{
			Kind:    WarningProvider,
			Message: fmt.Sprintf("unknown provider %q, using %q", configured, DefaultProvider),
		}, nil
	}
	return p, nil, nil
}

// NormalizeParams validates params and converts them into a GenerationRequest.
// Invalid aspect ratios, resolutions and configured providers are corrected
// and reported as warnings; an empty prompt, too many references or an
// unknown explicit provider are errors.
func NormalizeParams(params GenerateParams, configuredProvider string) (*GenerationRequest, []Warning, error) {
	if err := ValidatePrompt(params.Prompt); err != nil {
		return nil, nil, err
	}
	if err := ValidateReferenceCount(params.ReferenceImages); err != nil {
		return nil, nil, err
	}

	var warnings []Warning

	ar, w := NormalizeAspectRatio(params.AspectRatio)
	if w != nil {
		warnings = append(warnings, *w)
	}

	size, w := NormalizeResolution(params.Resolution)
	if w != nil {
		warnings = append(warnings, *w)
	}

	provider, w, err := ResolveProvider(params.Provider, configuredProvider)
	if err != nil {
		return nil, warnings, err
	}
	if w != nil {
		warnings = append(warnings, *w)
	}

	refs := make([]string, len(params.ReferenceImages))
	copy(refs, params.ReferenceImages)

	return &GenerationRequest{
		Prompt:          params.Prompt,
		ReferenceImages: refs,
		AspectRatio:     ar,
		Resolution:      size,
		Provider:        provider,
	}, warnings, nil
}
