package gemini

import "github.com/42apps/nanobanana"

// NanoBananaProInfo is the model info for Gemini 3 Pro Image (Nano Banana Pro).
//
// Nano Banana Pro (official name: Gemini 3 Pro Image) is Google DeepMind's
// image generation and editing model, built on Gemini 3 Pro.
var NanoBananaProInfo = nanobanana.ModelInfo{
	Name:         "nano-banana-pro",
	Provider:     nanobanana.ProviderGoogle,
	APIModelName: APIModelNanoBananaPro,

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
