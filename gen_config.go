package nanobanana

import (
	"encoding/base64"
	"time"
)

// ImageSize represents the output resolution for generated images.
type ImageSize string

const (
	ImageSize1K ImageSize = "1K"
	ImageSize2K ImageSize = "2K"
	ImageSize4K ImageSize = "4K"

	DefaultImageSize = ImageSize2K
)

// AspectRatio represents the aspect ratio for generated images.
type AspectRatio string

const (
	AspectRatio1x1  AspectRatio = "1:1"
	AspectRatio16x9 AspectRatio = "16:9"
	AspectRatio9x16 AspectRatio = "9:16"
	AspectRatio4x3  AspectRatio = "4:3"
	AspectRatio3x4  AspectRatio = "3:4"
	AspectRatio3x2  AspectRatio = "3:2"  // Photo landscape (35mm film ratio)
	AspectRatio2x3  AspectRatio = "2:3"  // Photo portrait
	AspectRatio21x9 AspectRatio = "21:9" // Ultrawide/cinematic

	DefaultAspectRatio = AspectRatio1x1
)

// SupportedAspectRatios lists every aspect ratio accepted by both providers, in display order.
var SupportedAspectRatios = []AspectRatio{
	AspectRatio1x1,
	AspectRatio16x9,
	AspectRatio9x16,
	AspectRatio4x3,
	AspectRatio3x4,
	AspectRatio3x2,
	AspectRatio2x3,
	AspectRatio21x9,
}

// SupportedImageSizes lists every accepted resolution.
var SupportedImageSizes = []ImageSize{
	ImageSize1K,
	ImageSize2K,
	ImageSize4K,
}

// DefaultTimeout bounds a single provider exchange when no other timeout is configured.
const DefaultTimeout = 2 * time.Minute

// GenerateParams is the raw, unvalidated input for a generation run,
// typically filled straight from command-line flags.
type GenerateParams struct {
	// Prompt describing the image to generate (required)
	Prompt string

	// ReferenceImages are local file paths used as style/content hints
	ReferenceImages []string

	// AspectRatio such as "16:9"; invalid or empty values fall back to 1:1
	AspectRatio string

	// Resolution such as "4K"; invalid or empty values fall back to 2K
	Resolution string

	// Provider overrides the configured provider when non-empty
	Provider string
}

// GenerationRequest is the normalized form of GenerateParams. AspectRatio and
// Resolution always hold one of the supported values.
type GenerationRequest struct {
	Prompt          string
	ReferenceImages []string
	AspectRatio     AspectRatio
	Resolution      ImageSize
	Provider        ProviderName
}

// EncodedImage is a reference image ready to embed in a provider request.
type EncodedImage struct {
	// Data is the encoded image bytes
	Data []byte

	// MIMEType of Data (e.g., "image/jpeg", "image/png")
	MIMEType string

	// Path the image was loaded from
	Path string
}

// Base64 returns Data in standard base64.
func (e EncodedImage) Base64() string {
	return base64.StdEncoding.EncodeToString(e.Data)
}

// DataURI returns the image as a data URI, e.g. "data:image/png;base64,...".
func (e EncodedImage) DataURI() string {
	return "data:" + e.MIMEType + ";base64," + e.Base64()
}

// String returns the string representation for API calls.
func (s ImageSize) String() string {
	return string(s)
}

// String returns the string representation for API calls.
func (a AspectRatio) String() string {
	return string(a)
}
