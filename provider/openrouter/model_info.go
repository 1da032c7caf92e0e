package openrouter

import "github.com/42apps/nanobanana"

// NanoBananaProInfo is Gemini 3 Pro Image as routed by OpenRouter.
var NanoBananaProInfo = nanobanana.ModelInfo{
	Name:         "nano-banana-pro",
	Provider:     nanobanana.ProviderOpenRouter,
	APIModelName: DefaultModel,

	Capabilities: nanobanana.ModelCapabilities{
		SupportsTextToImage:  true,
		SupportsImageEditing: true,
		SupportsMultiImage:   true,
		MaxInputImages:       nanobanana.MaxReferenceImages,
	},

	ImageConstraints: nanobanana.ImageConstraints{
		SupportedAspectRatios: nanobanana.SupportedAspectRatios,
		SupportedSizes:        nanobanana.SupportedImageSizes,
	},
}
