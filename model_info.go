package nanobanana

// ModelCapabilities describes what features a model supports.
type ModelCapabilities struct {
	SupportsTextToImage  bool
	SupportsImageEditing bool
	SupportsMultiImage   bool // Multiple reference images per request

	// Limits
	MaxInputImages int // Max reference images per request (e.g., 14 for Gemini)
}

// ImageConstraints defines supported image configurations for a model.
type ImageConstraints struct {
	SupportedAspectRatios []AspectRatio
	SupportedSizes        []ImageSize
}

// ModelInfo contains metadata for a model.
type ModelInfo struct {
	// Identity
	Name         string       // Public model name (e.g., "nano-banana-pro")
	Provider     ProviderName // Which provider serves this model
	APIModelName string       // Actual API name (e.g., "gemini-3-pro-image-preview")

	Capabilities ModelCapabilities

	ImageConstraints ImageConstraints
}

// SupportsAspectRatio reports whether the model accepts the aspect ratio.
func (m ModelInfo) SupportsAspectRatio(ar AspectRatio) bool {
	for _, a := range m.ImageConstraints.SupportedAspectRatios {
		if a == ar {
			return true
		}
	}
	return false
}

// SupportsSize reports whether the model accepts the resolution.
func (m ModelInfo) SupportsSize(size ImageSize) bool {
	for _, s := range m.ImageConstraints.SupportedSizes {
		if s == size {
			return true
		}
	}
	return false
}
